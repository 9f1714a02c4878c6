package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ratehubBack/internal/models"
)

type TemplateRepository struct {
	DB *sql.DB
}

func (r *TemplateRepository) GetTemplateByID(ctx context.Context, id int) (models.Template, error) {
	query := `
		SELECT id, name, display_name, description, is_published, created_at
		FROM templates
		WHERE id = ?
	`
	var t models.Template
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.DisplayName, &t.Description, &t.IsPublished, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Template{}, models.ErrTemplateNotFound
	}
	if err != nil {
		return models.Template{}, err
	}

	fields, err := r.getTemplateFields(ctx, t.ID)
	if err != nil {
		return models.Template{}, err
	}
	t.Fields = fields
	return t, nil
}

func (r *TemplateRepository) getTemplateFields(ctx context.Context, templateID int) ([]models.TemplateField, error) {
	query := `
		SELECT f.id, f.template_id, f.name, f.display_name, f.field_type,
		       f.is_required, f.position, f.data_source_id, ds.name
		FROM template_fields f
		LEFT JOIN data_sources ds ON f.data_source_id = ds.id
		WHERE f.template_id = ?
		ORDER BY f.position, f.id
	`
	rows, err := r.DB.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []models.TemplateField{}
	sourceIDs := []int{}
	for rows.Next() {
		var f models.TemplateField
		var dsID sql.NullInt64
		var dsName sql.NullString
		err := rows.Scan(&f.ID, &f.TemplateID, &f.Name, &f.DisplayName, &f.FieldType,
			&f.IsRequired, &f.Position, &dsID, &dsName)
		if err != nil {
			return nil, err
		}
		if dsID.Valid {
			id := int(dsID.Int64)
			f.DataSourceID = &id
			f.DataSource = &models.DataSource{ID: id, Name: dsName.String}
			sourceIDs = append(sourceIDs, id)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(sourceIDs) > 0 {
		options, err := r.getOptionsForSources(ctx, sourceIDs)
		if err != nil {
			return nil, err
		}
		for i := range fields {
			if fields[i].DataSource != nil {
				fields[i].DataSource.Options = options[fields[i].DataSource.ID]
			}
		}
	}
	return fields, nil
}

func (r *TemplateRepository) getOptionsForSources(ctx context.Context, sourceIDs []int) (map[int][]models.DataSourceOption, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sourceIDs)), ",")
	query := fmt.Sprintf(`
		SELECT id, data_source_id, value, label
		FROM data_source_options
		WHERE data_source_id IN (%s)
		ORDER BY id
	`, placeholders)

	params := make([]interface{}, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		params = append(params, id)
	}
	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := map[int][]models.DataSourceOption{}
	for rows.Next() {
		var o models.DataSourceOption
		if err := rows.Scan(&o.ID, &o.DataSourceID, &o.Value, &o.Label); err != nil {
			return nil, err
		}
		options[o.DataSourceID] = append(options[o.DataSourceID], o)
	}
	return options, rows.Err()
}

// GetFieldByID resolves a field regardless of which template owns it, so
// callers can tell an unknown field id apart from one that belongs to a
// different template.
func (r *TemplateRepository) GetFieldByID(ctx context.Context, fieldID int) (models.TemplateField, error) {
	query := `
		SELECT id, template_id, name, display_name, field_type, is_required, position
		FROM template_fields
		WHERE id = ?
	`
	var f models.TemplateField
	err := r.DB.QueryRowContext(ctx, query, fieldID).Scan(
		&f.ID, &f.TemplateID, &f.Name, &f.DisplayName, &f.FieldType, &f.IsRequired, &f.Position,
	)
	if err == sql.ErrNoRows {
		return models.TemplateField{}, models.ErrFieldNotFound
	}
	if err != nil {
		return models.TemplateField{}, err
	}
	return f, nil
}

// GetPublishedTemplates lists the dropdown projection of every published
// template.
func (r *TemplateRepository) GetPublishedTemplates(ctx context.Context) ([]models.TemplateOption, error) {
	query := `
		SELECT id, name, display_name, description
		FROM templates
		WHERE is_published = TRUE
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []models.TemplateOption{}
	for rows.Next() {
		var t models.TemplateOption
		if err := rows.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
