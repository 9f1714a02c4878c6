package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ratehubBack/internal/models"
)

type TemplateStore interface {
	GetTemplateByID(ctx context.Context, id int) (models.Template, error)
	GetFieldByID(ctx context.Context, fieldID int) (models.TemplateField, error)
	GetPublishedTemplates(ctx context.Context) ([]models.TemplateOption, error)
}

// TemplateService is the schema registry the rest of the core validates
// against. Reads go through a redis cache; templates are read-mostly and
// administrative edits during live traffic are unsupported, so the only
// defined invalidation is the explicit one below.
type TemplateService struct {
	TemplateRepo TemplateStore
	Cache        *redis.Client
	CacheTTL     time.Duration
}

func templateCacheKey(id int) string {
	return fmt.Sprintf("template:%d", id)
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id int) (models.Template, error) {
	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, templateCacheKey(id)).Result()
		if err == nil {
			var t models.Template
			if err := json.Unmarshal([]byte(data), &t); err == nil {
				return t, nil
			}
			// Unreadable cache entry: fall through to the repository.
		}
	}

	t, err := s.TemplateRepo.GetTemplateByID(ctx, id)
	if err != nil {
		return models.Template{}, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(t); err == nil {
			s.Cache.Set(ctx, templateCacheKey(id), data, s.CacheTTL)
		}
	}
	return t, nil
}

// InvalidateTemplate drops the cached copy after an administrative edit.
func (s *TemplateService) InvalidateTemplate(ctx context.Context, id int) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Del(ctx, templateCacheKey(id)).Err()
}

func (s *TemplateService) GetTemplatesForDropdown(ctx context.Context) ([]models.TemplateOption, error) {
	return s.TemplateRepo.GetPublishedTemplates(ctx)
}

// GetField resolves a field by id within a template. A field id that
// resolves under a different template is rejected, not silently served.
func (s *TemplateService) GetField(ctx context.Context, templateID, fieldID int) (models.TemplateField, error) {
	t, err := s.GetTemplateByID(ctx, templateID)
	if err != nil {
		return models.TemplateField{}, err
	}
	if field, ok := t.FieldByID(fieldID); ok {
		return field, nil
	}

	// Not among this template's fields. If the id exists under another
	// template the caller referenced the wrong template, which is a
	// different failure than an unknown field.
	if _, err := s.TemplateRepo.GetFieldByID(ctx, fieldID); err == nil {
		return models.TemplateField{}, models.ErrInvalidFieldReference
	}
	return models.TemplateField{}, models.ErrFieldNotFound
}

// GetFieldByName is the name-keyed variant used by item creation.
func (s *TemplateService) GetFieldByName(ctx context.Context, templateID int, name string) (models.TemplateField, error) {
	t, err := s.GetTemplateByID(ctx, templateID)
	if err != nil {
		return models.TemplateField{}, err
	}
	field, ok := t.FieldByName(name)
	if !ok {
		return models.TemplateField{}, models.ErrFieldNotFound
	}
	return field, nil
}
