package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ratehubBack/internal/fieldcodec"
	"ratehubBack/internal/models"
)

// TemplateProvider is the read-only slice of the schema registry the item
// store depends on.
type TemplateProvider interface {
	GetTemplateByID(ctx context.Context, id int) (models.Template, error)
}

type ItemRepo interface {
	SlugExists(ctx context.Context, templateID int, slug string) (bool, error)
	CreateItem(ctx context.Context, item models.Item, values []models.FieldValue) (models.Item, error)
	GetItemByID(ctx context.Context, id int) (models.Item, error)
	GetItemBySlug(ctx context.Context, slug string) (models.Item, error)
	SearchItems(ctx context.Context, template models.Template, req models.SearchRequest) ([]models.ItemSummary, int, error)
}

type ItemService struct {
	Templates TemplateProvider
	ItemRepo  ItemRepo
}

const (
	defaultPageSize        = 20
	recommendationPageSize = 10
)

// CreateItem validates the whole payload against the template before a
// single row is written: unknown field names, missing or null required
// fields and values that do not encode under their declared type all fail
// here, so a rejected request leaves no trace in the store.
func (s *ItemService) CreateItem(ctx context.Context, userID int, req models.CreateItemRequest) (models.Item, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Item{}, fmt.Errorf("%w: title", models.ErrMissingRequiredField)
	}

	template, err := s.Templates.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return models.Item{}, err
	}

	// Last assignment wins when a field name repeats in the payload.
	assigned := map[int]models.TypedValue{}
	for _, a := range req.FieldValues {
		field, ok := template.FieldByName(a.FieldName)
		if !ok {
			return models.Item{}, fmt.Errorf("%w: %s", models.ErrFieldNotFound, a.FieldName)
		}
		if a.Value == nil {
			if field.IsRequired {
				return models.Item{}, fmt.Errorf("%w: %s", models.ErrMissingRequiredField, field.Name)
			}
			continue
		}
		tv, err := fieldcodec.EncodeFieldValue(field.FieldType, a.Value)
		if err != nil {
			return models.Item{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		assigned[field.ID] = tv
	}

	for _, f := range template.Fields {
		if f.IsRequired {
			if _, ok := assigned[f.ID]; !ok {
				return models.Item{}, fmt.Errorf("%w: %s", models.ErrMissingRequiredField, f.Name)
			}
		}
	}

	values := make([]models.FieldValue, 0, len(assigned))
	for _, f := range template.Fields {
		if tv, ok := assigned[f.ID]; ok {
			values = append(values, models.FieldValue{FieldID: f.ID, Value: tv})
		}
	}

	slug, err := s.freeSlug(ctx, template.ID, slugify(title))
	if err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		TemplateID: template.ID,
		Title:      title,
		Slug:       slug,
		CreatedBy:  userID,
	}
	created, err := s.ItemRepo.CreateItem(ctx, item, values)
	if err != nil {
		return models.Item{}, err
	}
	return s.ItemRepo.GetItemByID(ctx, created.ID)
}

// freeSlug probes for an unused slug under the template, appending -2, -3,
// ... to the base until one is free.
func (s *ItemService) freeSlug(ctx context.Context, templateID int, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		exists, err := s.ItemRepo.SlugExists(ctx, templateID, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}

func (s *ItemService) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	return s.ItemRepo.GetItemByID(ctx, id)
}

func (s *ItemService) GetItemBySlug(ctx context.Context, slug string) (models.Item, error) {
	return s.ItemRepo.GetItemBySlug(ctx, slug)
}

// SearchItems validates pagination and filter fields against the template,
// drops unconstrained filters, and pages through the matching items. An
// out-of-range page is not an error: the metadata stays correct and the
// item list alone comes back empty.
func (s *ItemService) SearchItems(ctx context.Context, req models.SearchRequest) (models.SearchResult, error) {
	if req.Sort == "" {
		req.Sort = models.SortDate
	}
	if req.PageSize == 0 {
		req.PageSize = defaultPageSize
	}
	if req.PageNo == 0 {
		req.PageNo = 1
	}
	if req.PageNo < 1 || req.PageSize < 1 {
		return models.SearchResult{}, models.ErrInvalidPagination
	}

	template, err := s.Templates.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return models.SearchResult{}, err
	}

	kept := make([]models.FieldFilter, 0, len(req.Fields))
	for _, f := range req.Fields {
		if len(f.FieldValue) == 0 {
			continue
		}
		if _, ok := template.FieldByID(f.FieldID); !ok {
			return models.SearchResult{}, fmt.Errorf("%w: field %d", models.ErrInvalidFilterField, f.FieldID)
		}
		kept = append(kept, f)
	}
	req.Fields = kept

	items, total, err := s.ItemRepo.SearchItems(ctx, template, req)
	if err != nil {
		return models.SearchResult{}, err
	}
	return models.SearchResult{
		Items:      items,
		Pagination: models.NewPagination(total, req.PageNo, req.PageSize),
	}, nil
}

// RecommendByTemplate returns the template's top-rated items.
func (s *ItemService) RecommendByTemplate(ctx context.Context, templateID int) ([]models.ItemSummary, error) {
	result, err := s.SearchItems(ctx, models.SearchRequest{
		TemplateID: templateID,
		Sort:       models.SortScore,
		PageSize:   recommendationPageSize,
		PageNo:     1,
	})
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// RecommendByGenre returns the top-rated items whose genre-like multiselect
// field intersects the given values.
func (s *ItemService) RecommendByGenre(ctx context.Context, templateID, fieldID int, values []string) ([]models.ItemSummary, error) {
	accepted := make([]interface{}, 0, len(values))
	for _, v := range values {
		accepted = append(accepted, v)
	}
	result, err := s.SearchItems(ctx, models.SearchRequest{
		TemplateID: templateID,
		Fields:     []models.FieldFilter{{FieldID: fieldID, FieldValue: accepted}},
		Sort:       models.SortScore,
		PageSize:   recommendationPageSize,
		PageNo:     1,
	})
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
