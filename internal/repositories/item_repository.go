package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ratehubBack/internal/models"
)

type ItemRepository struct {
	DB *sql.DB
}

// SlugExists reports whether an item with this slug already exists under the
// template. Slug uniqueness is scoped per template, not globally.
func (r *ItemRepository) SlugExists(ctx context.Context, templateID int, slug string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM items WHERE template_id = ? AND slug = ?`
	if err := r.DB.QueryRowContext(ctx, query, templateID, slug).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ItemRepository) ItemExists(ctx context.Context, id int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM items WHERE id = ?`
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateItem persists the item, its field value rows and a zero statistics
// row as one transaction. A failure at any step rolls the whole unit back;
// a partially created item is never observable.
func (r *ItemRepository) CreateItem(ctx context.Context, item models.Item, values []models.FieldValue) (models.Item, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO items (template_id, title, slug, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`, item.TemplateID, item.Title, item.Slug, item.CreatedBy)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	item.ID = int(id)

	for _, fv := range values {
		textVal, numVal, dateVal, boolVal, jsonVal := typedValueColumns(fv.Value)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO item_field_values
				(item_id, field_id, text_value, numeric_value, date_value, boolean_value, json_value)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, item.ID, fv.FieldID, textVal, numVal, dateVal, boolVal, jsonVal)
		if err != nil {
			return models.Item{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO item_statistics (item_id, avg_rating, ratings_count, views_count)
		VALUES (?, 0, 0, 0)
	`, item.ID)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	item.CreatedAt = time.Now()
	return item, nil
}

// typedValueColumns spreads the populated slot of a typed value over the
// five nullable EAV columns.
func typedValueColumns(v models.TypedValue) (interface{}, interface{}, interface{}, interface{}, interface{}) {
	var textVal, numVal, dateVal, boolVal, jsonVal interface{}
	switch v.Kind {
	case models.KindText:
		textVal = v.Text
	case models.KindNumber:
		numVal = v.Number
	case models.KindDate:
		dateVal = v.Date
	case models.KindBool:
		boolVal = v.Bool
	case models.KindJSON:
		jsonVal = string(v.JSON)
	}
	return textVal, numVal, dateVal, boolVal, jsonVal
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	return r.getItem(ctx, `WHERE i.id = ?`, id)
}

func (r *ItemRepository) GetItemBySlug(ctx context.Context, slug string) (models.Item, error) {
	return r.getItem(ctx, `WHERE i.slug = ?`, slug)
}

func (r *ItemRepository) getItem(ctx context.Context, where string, arg interface{}) (models.Item, error) {
	query := `
		SELECT i.id, i.template_id, i.title, i.slug, i.created_by, i.created_at, i.updated_at,
		       st.avg_rating, st.ratings_count, st.views_count
		FROM items i
		JOIN item_statistics st ON st.item_id = i.id
	` + where

	var item models.Item
	var stats models.ItemStatistics
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&item.ID, &item.TemplateID, &item.Title, &item.Slug, &item.CreatedBy,
		&item.CreatedAt, &item.UpdatedAt,
		&stats.AvgRating, &stats.RatingsCount, &stats.ViewsCount,
	)
	if err == sql.ErrNoRows {
		return models.Item{}, models.ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, err
	}
	stats.ItemID = item.ID
	item.Statistics = &stats

	values, err := r.getFieldValues(ctx, item.ID)
	if err != nil {
		return models.Item{}, err
	}
	item.FieldValues = values
	return item, nil
}

// getFieldValues loads an item's values annotated with their field
// definitions. The populated slot is chosen by the field's declared type,
// matching the codec, rather than by probing which column is non-null.
func (r *ItemRepository) getFieldValues(ctx context.Context, itemID int) ([]models.FieldValue, error) {
	query := `
		SELECT fv.item_id, fv.field_id,
		       fv.text_value, fv.numeric_value, fv.date_value, fv.boolean_value, fv.json_value,
		       f.id, f.template_id, f.name, f.display_name, f.field_type, f.is_required, f.position
		FROM item_field_values fv
		JOIN template_fields f ON fv.field_id = f.id
		WHERE fv.item_id = ?
		ORDER BY f.position, f.id
	`
	rows, err := r.DB.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []models.FieldValue{}
	for rows.Next() {
		var fv models.FieldValue
		var field models.TemplateField
		var textVal sql.NullString
		var numVal sql.NullFloat64
		var dateVal sql.NullTime
		var boolVal sql.NullBool
		var jsonVal sql.NullString
		err := rows.Scan(
			&fv.ItemID, &fv.FieldID,
			&textVal, &numVal, &dateVal, &boolVal, &jsonVal,
			&field.ID, &field.TemplateID, &field.Name, &field.DisplayName,
			&field.FieldType, &field.IsRequired, &field.Position,
		)
		if err != nil {
			return nil, err
		}
		fv.Field = &field
		fv.Value = typedValueFromColumns(field.FieldType, textVal, numVal, dateVal, boolVal, jsonVal)
		values = append(values, fv)
	}
	return values, rows.Err()
}

func typedValueFromColumns(fieldType string, textVal sql.NullString, numVal sql.NullFloat64,
	dateVal sql.NullTime, boolVal sql.NullBool, jsonVal sql.NullString) models.TypedValue {

	kind, ok := models.KindForFieldType(fieldType)
	if !ok {
		return models.TypedValue{}
	}
	switch kind {
	case models.KindText:
		return models.TypedValue{Kind: kind, Text: textVal.String}
	case models.KindNumber:
		return models.TypedValue{Kind: kind, Number: numVal.Float64}
	case models.KindDate:
		return models.TypedValue{Kind: kind, Date: dateVal.Time}
	case models.KindBool:
		return models.TypedValue{Kind: kind, Bool: boolVal.Bool}
	case models.KindJSON:
		return models.TypedValue{Kind: kind, JSON: json.RawMessage(jsonVal.String)}
	}
	return models.TypedValue{}
}
