package fieldcodec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ratehubBack/internal/models"
)

// Layouts accepted for date-typed field values.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

// EncodeFieldValue narrows an untyped external value into the storage slot
// declared by the field type. It is pure: no persistence, no side effects.
func EncodeFieldValue(fieldType string, value interface{}) (models.TypedValue, error) {
	switch fieldType {
	case models.FieldTypeText, models.FieldTypeTextarea, models.FieldTypeURL,
		models.FieldTypeImg, models.FieldTypeSelect:
		return models.TypedValue{Kind: models.KindText, Text: stringifyValue(value)}, nil

	case models.FieldTypeNumber:
		n, err := parseNumberValue(value)
		if err != nil {
			return models.TypedValue{}, fmt.Errorf("%w: %v is not a number", models.ErrInvalidFieldValue, value)
		}
		return models.TypedValue{Kind: models.KindNumber, Number: n}, nil

	case models.FieldTypeDate:
		t, err := parseDateValue(value)
		if err != nil {
			return models.TypedValue{}, fmt.Errorf("%w: %v is not a date", models.ErrInvalidFieldValue, value)
		}
		return models.TypedValue{Kind: models.KindDate, Date: t}, nil

	case models.FieldTypeBoolean:
		b, err := parseBoolValue(value)
		if err != nil {
			return models.TypedValue{}, fmt.Errorf("%w: %v is not a boolean", models.ErrInvalidFieldValue, value)
		}
		return models.TypedValue{Kind: models.KindBool, Bool: b}, nil

	case models.FieldTypeMultiselect:
		arr, ok := value.([]interface{})
		if !ok {
			arr = []interface{}{value}
		}
		raw, err := json.Marshal(arr)
		if err != nil {
			return models.TypedValue{}, fmt.Errorf("%w: %v", models.ErrInvalidFieldValue, err)
		}
		return models.TypedValue{Kind: models.KindJSON, JSON: raw}, nil

	case models.FieldTypeJSON:
		if s, ok := value.(string); ok {
			if !json.Valid([]byte(s)) {
				return models.TypedValue{}, fmt.Errorf("%w: malformed json string", models.ErrInvalidFieldValue)
			}
			return models.TypedValue{Kind: models.KindJSON, JSON: json.RawMessage(s)}, nil
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return models.TypedValue{}, fmt.Errorf("%w: %v", models.ErrInvalidFieldValue, err)
		}
		return models.TypedValue{Kind: models.KindJSON, JSON: raw}, nil
	}

	return models.TypedValue{}, fmt.Errorf("%w: %s", models.ErrUnsupportedFieldType, fieldType)
}

// DecodeFieldValue maps a stored typed value back to its external shape.
func DecodeFieldValue(v models.TypedValue) interface{} {
	return v.Untyped()
}

func stringifyValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseNumberValue(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("unsupported number shape %T", value)
}

func parseDateValue(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date format: %s", v)
	}
	return time.Time{}, fmt.Errorf("unsupported date shape %T", value)
}

// parseBoolValue is stricter than the loosest possible coercion: "false"
// must come out false, so arbitrary non-empty strings are not truthy.
func parseBoolValue(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(strings.ToLower(v)))
	}
	return false, fmt.Errorf("unsupported boolean shape %T", value)
}
