package models

import (
	"encoding/json"
	"time"
)

// ValueKind tags which storage slot of a TypedValue is populated.
type ValueKind string

const (
	KindText   ValueKind = "text"
	KindNumber ValueKind = "number"
	KindDate   ValueKind = "date"
	KindBool   ValueKind = "boolean"
	KindJSON   ValueKind = "json"
)

// TypedValue is the tagged variant a field value is narrowed into exactly
// once, at the codec boundary. Downstream code switches on Kind instead of
// probing five nullable columns.
type TypedValue struct {
	Kind   ValueKind
	Text   string
	Number float64
	Date   time.Time
	Bool   bool
	JSON   json.RawMessage
}

// KindForFieldType maps a declared field type to the storage slot it
// populates. The second return is false for unknown field types.
func KindForFieldType(fieldType string) (ValueKind, bool) {
	switch fieldType {
	case FieldTypeText, FieldTypeTextarea, FieldTypeURL, FieldTypeImg, FieldTypeSelect:
		return KindText, true
	case FieldTypeNumber:
		return KindNumber, true
	case FieldTypeDate:
		return KindDate, true
	case FieldTypeBoolean:
		return KindBool, true
	case FieldTypeMultiselect, FieldTypeJSON:
		return KindJSON, true
	}
	return "", false
}

// Untyped maps the typed slot back to the external representation.
func (v TypedValue) Untyped() interface{} {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Number
	case KindDate:
		return v.Date
	case KindBool:
		return v.Bool
	case KindJSON:
		var out interface{}
		if err := json.Unmarshal(v.JSON, &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}

// FieldValue is one item's value for one template field.
type FieldValue struct {
	ItemID  int            `json:"item_id"`
	FieldID int            `json:"field_id"`
	Value   TypedValue     `json:"-"`
	Field   *TemplateField `json:"field,omitempty"`
}

// MarshalJSON flattens the typed slot into a plain "value" key so responses
// match the shape callers submitted at creation time.
func (fv FieldValue) MarshalJSON() ([]byte, error) {
	type alias struct {
		ItemID  int            `json:"item_id"`
		FieldID int            `json:"field_id"`
		Value   interface{}    `json:"value"`
		Field   *TemplateField `json:"field,omitempty"`
	}
	return json.Marshal(alias{
		ItemID:  fv.ItemID,
		FieldID: fv.FieldID,
		Value:   fv.Value.Untyped(),
		Field:   fv.Field,
	})
}
