package repositories

import (
	"strings"
	"testing"

	"ratehubBack/internal/models"
)

func TestComparatorFor(t *testing.T) {
	cases := []struct {
		fieldType string
		want      comparator
	}{
		{models.FieldTypeText, compareEquals},
		{models.FieldTypeSelect, compareEquals},
		{models.FieldTypeNumber, compareEquals},
		{models.FieldTypeDate, compareEquals},
		{models.FieldTypeBoolean, compareEquals},
		{models.FieldTypeMultiselect, compareSetIntersects},
		{models.FieldTypeJSON, compareSetIntersects},
	}
	for _, tc := range cases {
		if got := comparatorFor(tc.fieldType); got != tc.want {
			t.Errorf("comparatorFor(%s) = %v, want %v", tc.fieldType, got, tc.want)
		}
	}
}

func TestBuildFieldPredicateSetIntersects(t *testing.T) {
	field := models.TemplateField{ID: 7, FieldType: models.FieldTypeMultiselect}
	cond, params, err := buildFieldPredicate(field, []interface{}{"Drama", "Comedy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cond != "(JSON_CONTAINS(fv.json_value, ?) OR JSON_CONTAINS(fv.json_value, ?))" {
		t.Fatalf("unexpected condition: %s", cond)
	}
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if params[0] != `"Drama"` || params[1] != `"Comedy"` {
		t.Fatalf("expected JSON-encoded values, got %v", params)
	}
}

func TestBuildFieldPredicateScalarUsesFirstValueOnly(t *testing.T) {
	field := models.TemplateField{ID: 3, FieldType: models.FieldTypeNumber}
	cond, params, err := buildFieldPredicate(field, []interface{}{float64(1999), float64(2001)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cond != "fv.numeric_value = ?" {
		t.Fatalf("unexpected condition: %s", cond)
	}
	if len(params) != 1 || params[0] != float64(1999) {
		t.Fatalf("expected only the first accepted value bound, got %v", params)
	}
}

func TestBuildFieldPredicateByType(t *testing.T) {
	cases := []struct {
		name      string
		fieldType string
		value     interface{}
		wantCond  string
		wantParam interface{}
	}{
		{"text", models.FieldTypeText, "USA", "fv.text_value = ?", "USA"},
		{"select", models.FieldTypeSelect, "Drama", "fv.text_value = ?", "Drama"},
		{"boolean", models.FieldTypeBoolean, true, "fv.boolean_value = ?", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field := models.TemplateField{FieldType: tc.fieldType}
			cond, params, err := buildFieldPredicate(field, []interface{}{tc.value})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cond != tc.wantCond {
				t.Fatalf("condition %q, want %q", cond, tc.wantCond)
			}
			if len(params) != 1 || params[0] != tc.wantParam {
				t.Fatalf("params %v, want [%v]", params, tc.wantParam)
			}
		})
	}
}

func TestBuildFieldPredicateInvalidScalarValue(t *testing.T) {
	field := models.TemplateField{FieldType: models.FieldTypeNumber}
	_, _, err := buildFieldPredicate(field, []interface{}{"not-a-number"})
	if err == nil || !strings.Contains(err.Error(), "not a number") {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}
