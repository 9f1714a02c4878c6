package services

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"ratehubBack/internal/models"
)

type RatingRepo interface {
	UpsertRating(ctx context.Context, rating models.UserRating) (models.UserRating, error)
	GetRating(ctx context.Context, itemID, userID int) (models.UserRating, error)
	ListRatingsForItem(ctx context.Context, itemID int) ([]models.UserRating, error)
	ListRatingsForUser(ctx context.Context, userID int) ([]models.UserRating, error)
}

type ItemChecker interface {
	ItemExists(ctx context.Context, id int) (bool, error)
}

type UserChecker interface {
	UserExists(ctx context.Context, id int) (bool, error)
}

type RatingService struct {
	RatingRepo RatingRepo
	Items      ItemChecker
	Users      UserChecker
}

// roundToTenth keeps ratings and averages at one decimal of precision.
func roundToTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// RateItem upserts the caller's rating for an item. A user holds at most
// one live rating per item; rating again replaces it in place.
func (s *RatingService) RateItem(ctx context.Context, userID int, req models.CreateRatingRequest) (models.UserRating, error) {
	if req.Rating < 0 || req.Rating > 10 {
		return models.UserRating{}, models.ErrInvalidRating
	}

	exists, err := s.Items.ItemExists(ctx, req.ItemID)
	if err != nil {
		return models.UserRating{}, err
	}
	if !exists {
		return models.UserRating{}, models.ErrItemNotFound
	}

	exists, err = s.Users.UserExists(ctx, userID)
	if err != nil {
		return models.UserRating{}, err
	}
	if !exists {
		return models.UserRating{}, models.ErrUserNotFound
	}

	return s.RatingRepo.UpsertRating(ctx, models.UserRating{
		ItemID:     req.ItemID,
		UserID:     userID,
		Rating:     roundToTenth(req.Rating),
		ReviewText: req.ReviewText,
	})
}

// GetRatingsForItem returns every rating on the item newest-first, with the
// aggregate recomputed from the rating rows themselves. The cached
// statistics row is deliberately not consulted, so the response is
// self-consistent even when the cache lags behind a concurrent write.
func (s *RatingService) GetRatingsForItem(ctx context.Context, itemID int) (models.ItemRatings, error) {
	exists, err := s.Items.ItemExists(ctx, itemID)
	if err != nil {
		return models.ItemRatings{}, err
	}
	if !exists {
		return models.ItemRatings{}, models.ErrItemNotFound
	}

	ratings, err := s.RatingRepo.ListRatingsForItem(ctx, itemID)
	if err != nil {
		return models.ItemRatings{}, err
	}

	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := 0.0
	if len(ratings) > 0 {
		avg = roundToTenth(sum / float64(len(ratings)))
	}

	return models.ItemRatings{
		AverageRating: avg,
		RatingsCount:  len(ratings),
		Ratings:       ratings,
	}, nil
}

// GetUserRating returns the caller's own rating for an item, or nil when
// the user has not rated it.
func (s *RatingService) GetUserRating(ctx context.Context, userID, itemID int) (*models.UserRating, error) {
	exists, err := s.Items.ItemExists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrItemNotFound
	}

	rating, err := s.RatingRepo.GetRating(ctx, itemID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
