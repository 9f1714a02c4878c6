package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ratehubBack/internal/fieldcodec"
	"ratehubBack/internal/models"
)

// comparator is the closed set of filter behaviors a field type maps to.
// Adding a field type means extending comparatorFor, not touching call
// sites.
type comparator int

const (
	// compareEquals tests the typed column against the first accepted
	// value. Multi-value filtering is only meaningful for array-typed
	// fields; for scalar types the tail of the accepted list is ignored.
	compareEquals comparator = iota
	// compareSetIntersects matches when any stored array element equals
	// any accepted value.
	compareSetIntersects
)

func comparatorFor(fieldType string) comparator {
	switch fieldType {
	case models.FieldTypeMultiselect, models.FieldTypeJSON:
		return compareSetIntersects
	default:
		return compareEquals
	}
}

// buildFieldPredicate renders one field filter into a condition over an
// item_field_values row aliased fv, plus its bound parameters. The caller
// guarantees accepted is non-empty and the field belongs to the searched
// template.
func buildFieldPredicate(field models.TemplateField, accepted []interface{}) (string, []interface{}, error) {
	switch comparatorFor(field.FieldType) {
	case compareSetIntersects:
		conds := make([]string, 0, len(accepted))
		params := make([]interface{}, 0, len(accepted))
		for _, v := range accepted {
			encoded, err := json.Marshal(v)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", models.ErrInvalidFieldValue, err)
			}
			conds = append(conds, "JSON_CONTAINS(fv.json_value, ?)")
			params = append(params, string(encoded))
		}
		return "(" + strings.Join(conds, " OR ") + ")", params, nil

	default:
		tv, err := fieldcodec.EncodeFieldValue(field.FieldType, accepted[0])
		if err != nil {
			return "", nil, err
		}
		switch tv.Kind {
		case models.KindNumber:
			return "fv.numeric_value = ?", []interface{}{tv.Number}, nil
		case models.KindDate:
			return "fv.date_value = ?", []interface{}{tv.Date}, nil
		case models.KindBool:
			return "fv.boolean_value = ?", []interface{}{tv.Bool}, nil
		default:
			return "fv.text_value = ?", []interface{}{tv.Text}, nil
		}
	}
}

// SearchItems pages through a template's items, constraining each filtered
// field with an EXISTS subquery over its value row (AND across fields, OR
// within one field's accepted set). The template is passed in already
// resolved; filters are already validated against it.
func (r *ItemRepository) SearchItems(ctx context.Context, template models.Template, req models.SearchRequest) ([]models.ItemSummary, int, error) {
	conditions := []string{"i.template_id = ?"}
	params := []interface{}{template.ID}

	for _, filter := range req.Fields {
		field, ok := template.FieldByID(filter.FieldID)
		if !ok {
			return nil, 0, models.ErrInvalidFilterField
		}
		cond, condParams, err := buildFieldPredicate(field, filter.FieldValue)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, fmt.Sprintf(`
			EXISTS (SELECT 1 FROM item_field_values fv
			        WHERE fv.item_id = i.id AND fv.field_id = ? AND %s)`, cond))
		params = append(params, filter.FieldID)
		params = append(params, condParams...)
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM items i` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Poster column: the first template field whose name contains
	// "poster"; templates without one get an empty string.
	posterSelect := "''"
	if posterField, ok := template.PosterField(); ok {
		posterSelect = `COALESCE(
			(SELECT pv.text_value FROM item_field_values pv
			 WHERE pv.item_id = i.id AND pv.field_id = ` + fmt.Sprintf("%d", posterField.ID) + ` LIMIT 1), '')`
	}

	query := `
		SELECT i.id, i.title, i.slug, ` + posterSelect + ` AS poster, i.created_at, st.avg_rating
		FROM items i
		JOIN item_statistics st ON st.item_id = i.id
	` + where

	switch req.Sort {
	case models.SortScore:
		query += ` ORDER BY st.avg_rating DESC, i.id`
	case models.SortPopularity:
		query += ` ORDER BY st.views_count DESC, i.id`
	default:
		query += ` ORDER BY i.created_at DESC, i.id`
	}

	query += ` LIMIT ? OFFSET ?`
	params = append(params, req.PageSize, (req.PageNo-1)*req.PageSize)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.ItemSummary{}
	for rows.Next() {
		var s models.ItemSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Poster, &s.CreatedAt, &s.AvgRating); err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
