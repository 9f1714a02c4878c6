package repositories

import (
	"context"
	"database/sql"

	"ratehubBack/internal/models"
)

type DataSourceRepository struct {
	DB *sql.DB
}

func (r *DataSourceRepository) GetDataSourceByID(ctx context.Context, id int) (models.DataSource, error) {
	var ds models.DataSource
	err := r.DB.QueryRowContext(ctx, `SELECT id, name FROM data_sources WHERE id = ?`, id).
		Scan(&ds.ID, &ds.Name)
	if err == sql.ErrNoRows {
		return models.DataSource{}, models.ErrDataSourceNotFound
	}
	if err != nil {
		return models.DataSource{}, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, data_source_id, value, label
		FROM data_source_options
		WHERE data_source_id = ?
		ORDER BY id
	`, id)
	if err != nil {
		return models.DataSource{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var o models.DataSourceOption
		if err := rows.Scan(&o.ID, &o.DataSourceID, &o.Value, &o.Label); err != nil {
			return models.DataSource{}, err
		}
		ds.Options = append(ds.Options, o)
	}
	return ds, rows.Err()
}

func (r *DataSourceRepository) GetDataSources(ctx context.Context) ([]models.DataSource, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM data_sources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sources := []models.DataSource{}
	for rows.Next() {
		var ds models.DataSource
		if err := rows.Scan(&ds.ID, &ds.Name); err != nil {
			return nil, err
		}
		sources = append(sources, ds)
	}
	return sources, rows.Err()
}
