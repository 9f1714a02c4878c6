package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"ratehubBack/internal/models"
)

type ratingKey struct {
	itemID int
	userID int
}

type fakeRatingRepo struct {
	nextID  int
	ratings map[ratingKey]models.UserRating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{nextID: 1, ratings: map[ratingKey]models.UserRating{}}
}

func (f *fakeRatingRepo) UpsertRating(ctx context.Context, rating models.UserRating) (models.UserRating, error) {
	key := ratingKey{itemID: rating.ItemID, userID: rating.UserID}
	if existing, ok := f.ratings[key]; ok {
		rating.ID = existing.ID
	} else {
		rating.ID = f.nextID
		f.nextID++
	}
	f.ratings[key] = rating
	return rating, nil
}

func (f *fakeRatingRepo) GetRating(ctx context.Context, itemID, userID int) (models.UserRating, error) {
	rating, ok := f.ratings[ratingKey{itemID: itemID, userID: userID}]
	if !ok {
		return models.UserRating{}, sql.ErrNoRows
	}
	return rating, nil
}

func (f *fakeRatingRepo) ListRatingsForItem(ctx context.Context, itemID int) ([]models.UserRating, error) {
	var out []models.UserRating
	for _, r := range f.ratings {
		if r.ItemID == itemID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRatingRepo) ListRatingsForUser(ctx context.Context, userID int) ([]models.UserRating, error) {
	var out []models.UserRating
	for _, r := range f.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeExistence struct {
	items map[int]bool
	users map[int]bool
}

func (f *fakeExistence) ItemExists(ctx context.Context, id int) (bool, error) {
	return f.items[id], nil
}

func (f *fakeExistence) UserExists(ctx context.Context, id int) (bool, error) {
	return f.users[id], nil
}

func newRatingService(repo *fakeRatingRepo) *RatingService {
	exists := &fakeExistence{
		items: map[int]bool{1: true},
		users: map[int]bool{10: true, 11: true, 12: true},
	}
	return &RatingService{RatingRepo: repo, Items: exists, Users: exists}
}

func TestRateItemUpsertKeepsOneRatingPerUser(t *testing.T) {
	repo := newFakeRatingRepo()
	svc := newRatingService(repo)

	first, err := svc.RateItem(context.Background(), 10, models.CreateRatingRequest{ItemID: 1, Rating: 6})
	if err != nil {
		t.Fatalf("first RateItem: %v", err)
	}
	second, err := svc.RateItem(context.Background(), 10, models.CreateRatingRequest{ItemID: 1, Rating: 9, ReviewText: "rewatch"})
	if err != nil {
		t.Fatalf("second RateItem: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("re-rating created a new row: id %d then %d", first.ID, second.ID)
	}
	if len(repo.ratings) != 1 {
		t.Fatalf("repository holds %d ratings, want 1", len(repo.ratings))
	}
	stored := repo.ratings[ratingKey{itemID: 1, userID: 10}]
	if stored.Rating != 9 {
		t.Errorf("stored rating = %v, want 9", stored.Rating)
	}
	if stored.ReviewText != "rewatch" {
		t.Errorf("stored review = %q, want %q", stored.ReviewText, "rewatch")
	}
}

func TestRateItemBounds(t *testing.T) {
	svc := newRatingService(newFakeRatingRepo())

	for _, rating := range []float64{-0.1, 10.1, 42} {
		_, err := svc.RateItem(context.Background(), 10, models.CreateRatingRequest{ItemID: 1, Rating: rating})
		if !errors.Is(err, models.ErrInvalidRating) {
			t.Errorf("rating %v: err = %v, want ErrInvalidRating", rating, err)
		}
	}
}

func TestRateItemUnknownItem(t *testing.T) {
	svc := newRatingService(newFakeRatingRepo())

	_, err := svc.RateItem(context.Background(), 10, models.CreateRatingRequest{ItemID: 99, Rating: 5})
	if !errors.Is(err, models.ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestGetRatingsForItemAggregate(t *testing.T) {
	repo := newFakeRatingRepo()
	svc := newRatingService(repo)

	for user, rating := range map[int]float64{10: 6, 11: 8, 12: 10} {
		if _, err := svc.RateItem(context.Background(), user, models.CreateRatingRequest{ItemID: 1, Rating: rating}); err != nil {
			t.Fatalf("RateItem user %d: %v", user, err)
		}
	}

	got, err := svc.GetRatingsForItem(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetRatingsForItem: %v", err)
	}
	if got.AverageRating != 8.0 {
		t.Errorf("average = %v, want 8.0", got.AverageRating)
	}
	if got.RatingsCount != 3 {
		t.Errorf("count = %d, want 3", got.RatingsCount)
	}
	if len(got.Ratings) != 3 {
		t.Errorf("listed %d ratings, want 3", len(got.Ratings))
	}
}

func TestGetRatingsForItemEmpty(t *testing.T) {
	svc := newRatingService(newFakeRatingRepo())

	got, err := svc.GetRatingsForItem(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetRatingsForItem: %v", err)
	}
	if got.AverageRating != 0 || got.RatingsCount != 0 {
		t.Errorf("empty item: average = %v count = %d, want 0 and 0", got.AverageRating, got.RatingsCount)
	}
}

func TestGetUserRatingAbsentIsNil(t *testing.T) {
	svc := newRatingService(newFakeRatingRepo())

	rating, err := svc.GetUserRating(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("GetUserRating: %v", err)
	}
	if rating != nil {
		t.Errorf("rating = %+v, want nil", rating)
	}
}

func TestRoundToTenth(t *testing.T) {
	cases := map[float64]float64{
		7.96: 8.0,
		7.94: 7.9,
		8.0:  8.0,
		0:    0,
	}
	for in, want := range cases {
		if got := roundToTenth(in); got != want {
			t.Errorf("roundToTenth(%v) = %v, want %v", in, got, want)
		}
	}
}
