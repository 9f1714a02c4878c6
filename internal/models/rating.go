package models

import (
	"time"
)

// ItemStatistics is the cached per-item aggregate, created zero-valued with
// the item and rewritten by the rating repository on every rating upsert.
type ItemStatistics struct {
	ItemID       int     `json:"item_id"`
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int     `json:"ratings_count"`
	ViewsCount   int     `json:"views_count"`
}

type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// UserRating is one user's live rating of one item, unique per
// (item_id, user_id). Re-rating replaces the row in place.
type UserRating struct {
	ID         int         `json:"id"`
	ItemID     int         `json:"item_id"`
	UserID     int         `json:"user_id"`
	Rating     float64     `json:"rating"`
	ReviewText string      `json:"review_text,omitempty"`
	User       UserSummary `json:"user,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  *time.Time  `json:"updated_at,omitempty"`
}

type CreateRatingRequest struct {
	ItemID     int     `json:"itemId"`
	Rating     float64 `json:"rating"`
	ReviewText string  `json:"reviewText,omitempty"`
}

// ItemRatings is the full rating view of one item, recomputed from the
// rating rows rather than read from the cached statistics.
type ItemRatings struct {
	AverageRating float64      `json:"averageRating"`
	RatingsCount  int          `json:"ratingsCount"`
	Ratings       []UserRating `json:"ratings"`
}

// RatedItem is one entry of a user's rating history, with the year and
// poster pulled out of the item's field values.
type RatedItem struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Year    int     `json:"year"`
	Poster  string  `json:"poster"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

// UserRatingsGroup groups a user's rating history by template.
type UserRatingsGroup struct {
	TemplateID          int         `json:"templateId"`
	TemplateName        string      `json:"templateName"`
	TemplateDisplayName string      `json:"templateDisplayName"`
	Ratings             []RatedItem `json:"ratings"`
}
