package services

import (
	"context"
	"errors"
	"testing"

	"ratehubBack/internal/models"
)

type fakeTemplateStore struct {
	templates map[int]models.Template
}

func (f *fakeTemplateStore) GetTemplateByID(ctx context.Context, id int) (models.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return models.Template{}, models.ErrTemplateNotFound
	}
	return t, nil
}

func (f *fakeTemplateStore) GetFieldByID(ctx context.Context, fieldID int) (models.TemplateField, error) {
	for _, t := range f.templates {
		if field, ok := t.FieldByID(fieldID); ok {
			return field, nil
		}
	}
	return models.TemplateField{}, models.ErrFieldNotFound
}

func (f *fakeTemplateStore) GetPublishedTemplates(ctx context.Context) ([]models.TemplateOption, error) {
	options := []models.TemplateOption{}
	for _, t := range f.templates {
		options = append(options, models.TemplateOption{ID: t.ID, Name: t.Name})
	}
	return options, nil
}

func newTemplateService() *TemplateService {
	return &TemplateService{
		TemplateRepo: &fakeTemplateStore{
			templates: map[int]models.Template{
				1: {
					ID:   1,
					Name: "movies",
					Fields: []models.TemplateField{
						{ID: 10, TemplateID: 1, Name: "year", FieldType: models.FieldTypeNumber},
					},
				},
				2: {
					ID:   2,
					Name: "books",
					Fields: []models.TemplateField{
						{ID: 20, TemplateID: 2, Name: "author", FieldType: models.FieldTypeText},
					},
				},
			},
		},
	}
}

func TestGetField(t *testing.T) {
	svc := newTemplateService()

	field, err := svc.GetField(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GetField: %v", err)
	}
	if field.Name != "year" {
		t.Errorf("field name = %q, want %q", field.Name, "year")
	}
}

func TestGetFieldFromAnotherTemplate(t *testing.T) {
	svc := newTemplateService()

	// Field 20 exists, but under template 2; asking for it via template 1
	// is a reference error, not an unknown field.
	_, err := svc.GetField(context.Background(), 1, 20)
	if !errors.Is(err, models.ErrInvalidFieldReference) {
		t.Fatalf("err = %v, want ErrInvalidFieldReference", err)
	}
}

func TestGetFieldUnknown(t *testing.T) {
	svc := newTemplateService()

	_, err := svc.GetField(context.Background(), 1, 999)
	if !errors.Is(err, models.ErrFieldNotFound) {
		t.Fatalf("err = %v, want ErrFieldNotFound", err)
	}
}

func TestGetFieldByName(t *testing.T) {
	svc := newTemplateService()

	field, err := svc.GetFieldByName(context.Background(), 2, "author")
	if err != nil {
		t.Fatalf("GetFieldByName: %v", err)
	}
	if field.ID != 20 {
		t.Errorf("field id = %d, want 20", field.ID)
	}

	if _, err := svc.GetFieldByName(context.Background(), 2, "year"); !errors.Is(err, models.ErrFieldNotFound) {
		t.Errorf("err = %v, want ErrFieldNotFound", err)
	}
}
