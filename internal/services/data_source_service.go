package services

import (
	"context"

	"ratehubBack/internal/models"
)

type DataSourceRepo interface {
	GetDataSourceByID(ctx context.Context, id int) (models.DataSource, error)
	GetDataSources(ctx context.Context) ([]models.DataSource, error)
}

// DataSourceService serves the enumerated option lists backing select and
// multiselect fields.
type DataSourceService struct {
	DataSourceRepo DataSourceRepo
}

func (s *DataSourceService) GetDataSourceByID(ctx context.Context, id int) (models.DataSource, error) {
	return s.DataSourceRepo.GetDataSourceByID(ctx, id)
}

func (s *DataSourceService) GetDataSources(ctx context.Context) ([]models.DataSource, error) {
	return s.DataSourceRepo.GetDataSources(ctx)
}
