package models

import (
	"time"
)

type Item struct {
	ID          int             `json:"id"`
	TemplateID  int             `json:"template_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	CreatedBy   int             `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	FieldValues []FieldValue    `json:"field_values,omitempty"`
	Statistics  *ItemStatistics `json:"statistics,omitempty"`
}

// FieldAssignment is one (fieldName, value) pair of a creation request.
// The value is untyped until the codec narrows it by the field's type.
type FieldAssignment struct {
	FieldName string      `json:"fieldName"`
	Value     interface{} `json:"value"`
}

type CreateItemRequest struct {
	TemplateID  int               `json:"templateId"`
	Title       string            `json:"title"`
	FieldValues []FieldAssignment `json:"fieldValues"`
}
