package models

import (
	"strings"
	"time"
)

// Field types a template field may declare. Anything else is rejected by the
// value codec with ErrUnsupportedFieldType.
const (
	FieldTypeText        = "text"
	FieldTypeTextarea    = "textarea"
	FieldTypeURL         = "url"
	FieldTypeImg         = "img"
	FieldTypeSelect      = "select"
	FieldTypeMultiselect = "multiselect"
	FieldTypeNumber      = "number"
	FieldTypeDate        = "date"
	FieldTypeBoolean     = "boolean"
	FieldTypeJSON        = "json"
)

type DataSourceOption struct {
	ID           int    `json:"id"`
	DataSourceID int    `json:"data_source_id"`
	Value        string `json:"value"`
	Label        string `json:"label"`
}

type DataSource struct {
	ID      int                `json:"id"`
	Name    string             `json:"name"`
	Options []DataSourceOption `json:"options,omitempty"`
}

type TemplateField struct {
	ID           int         `json:"id"`
	TemplateID   int         `json:"template_id"`
	Name         string      `json:"name"`
	DisplayName  string      `json:"display_name"`
	FieldType    string      `json:"field_type"`
	IsRequired   bool        `json:"is_required"`
	Position     int         `json:"position"`
	DataSourceID *int        `json:"data_source_id,omitempty"`
	DataSource   *DataSource `json:"data_source,omitempty"`
}

type Template struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description,omitempty"`
	IsPublished bool            `json:"is_published"`
	Fields      []TemplateField `json:"fields"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TemplateOption is the dropdown projection of a published template.
type TemplateOption struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// FieldByName resolves a field by its name within the template.
func (t Template) FieldByName(name string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return TemplateField{}, false
}

// FieldByID resolves a field by id within the template.
func (t Template) FieldByID(id int) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return TemplateField{}, false
}

// PosterField picks the field used for the search summary poster: the first
// field whose name contains "poster", case-insensitively. The second return
// is false when the template has no such field; summaries then carry an
// empty poster string.
func (t Template) PosterField() (TemplateField, bool) {
	for _, f := range t.Fields {
		if strings.Contains(strings.ToLower(f.Name), "poster") {
			return f, true
		}
	}
	return TemplateField{}, false
}
