package models

import (
	"time"
)

// Sort orders accepted by item search.
const (
	SortDate       = "date"
	SortScore      = "score"
	SortPopularity = "popularity"
)

// FieldFilter restricts one template field to a set of accepted values.
// An empty FieldValue list means "no constraint" and the filter is dropped.
type FieldFilter struct {
	FieldID    int           `json:"fieldId"`
	FieldValue []interface{} `json:"fieldValue"`
}

type SearchRequest struct {
	TemplateID int           `json:"templateId"`
	Fields     []FieldFilter `json:"fields,omitempty"`
	Sort       string        `json:"sort,omitempty"`
	PageSize   int           `json:"pageSize,omitempty"`
	PageNo     int           `json:"pageNo,omitempty"`
}

// ItemSummary is the fixed projection search pages are built from.
type ItemSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Poster    string    `json:"poster"`
	CreatedAt time.Time `json:"createdAt"`
	AvgRating float64   `json:"avgRating"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes page metadata. An out-of-range page keeps the
// metadata correct; the item list alone comes back empty.
func NewPagination(total, page, pageSize int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

type SearchResult struct {
	Items      []ItemSummary `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
