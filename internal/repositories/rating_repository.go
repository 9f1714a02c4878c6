package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"ratehubBack/internal/models"
)

type RatingRepository struct {
	DB *sql.DB
}

// UpsertRating replaces the (item_id, user_id) rating row in place and
// recomputes the item's cached statistics, both inside one transaction.
// The recompute is a full aggregate over the item's ratings rather than an
// incremental update; concurrent raters may commit their recomputes out of
// order, in which case the cached row reflects the earlier full scan —
// still a consistent state, and an accepted trade-off of this strategy.
func (r *RatingRepository) UpsertRating(ctx context.Context, rating models.UserRating) (models.UserRating, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.UserRating{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_ratings (item_id, user_id, rating, review_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			rating = VALUES(rating),
			review_text = VALUES(review_text),
			updated_at = NOW()
	`, rating.ItemID, rating.UserID, rating.Rating, rating.ReviewText)
	if err != nil {
		return models.UserRating{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE item_statistics
		SET avg_rating = (SELECT ROUND(COALESCE(AVG(rating), 0), 1) FROM user_ratings WHERE item_id = ?),
		    ratings_count = (SELECT COUNT(*) FROM user_ratings WHERE item_id = ?)
		WHERE item_id = ?
	`, rating.ItemID, rating.ItemID, rating.ItemID)
	if err != nil {
		return models.UserRating{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return models.UserRating{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return r.GetRating(ctx, rating.ItemID, rating.UserID)
}

// GetRating returns the one live rating a user holds on an item.
// sql.ErrNoRows passes through so callers can treat absence as "not rated".
func (r *RatingRepository) GetRating(ctx context.Context, itemID, userID int) (models.UserRating, error) {
	query := `
		SELECT id, item_id, user_id, rating, review_text, created_at, updated_at
		FROM user_ratings
		WHERE item_id = ? AND user_id = ?
	`
	var rating models.UserRating
	var review sql.NullString
	err := r.DB.QueryRowContext(ctx, query, itemID, userID).Scan(
		&rating.ID, &rating.ItemID, &rating.UserID, &rating.Rating,
		&review, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		return models.UserRating{}, err
	}
	rating.ReviewText = review.String
	return rating, nil
}

func (r *RatingRepository) ListRatingsForItem(ctx context.Context, itemID int) ([]models.UserRating, error) {
	query := `
		SELECT r.id, r.item_id, r.user_id, r.rating, r.review_text,
		       u.id, u.username,
		       r.created_at, r.updated_at
		FROM user_ratings r
		JOIN users u ON r.user_id = u.id
		WHERE r.item_id = ?
		ORDER BY r.created_at DESC, r.id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []models.UserRating{}
	for rows.Next() {
		var rating models.UserRating
		var review sql.NullString
		err := rows.Scan(&rating.ID, &rating.ItemID, &rating.UserID, &rating.Rating,
			&review, &rating.User.ID, &rating.User.Username,
			&rating.CreatedAt, &rating.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rating.ReviewText = review.String
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func (r *RatingRepository) ListRatingsForUser(ctx context.Context, userID int) ([]models.UserRating, error) {
	query := `
		SELECT id, item_id, user_id, rating, review_text, created_at, updated_at
		FROM user_ratings
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []models.UserRating{}
	for rows.Next() {
		var rating models.UserRating
		var review sql.NullString
		err := rows.Scan(&rating.ID, &rating.ItemID, &rating.UserID, &rating.Rating,
			&review, &rating.CreatedAt, &rating.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rating.ReviewText = review.String
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
