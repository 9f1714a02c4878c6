package services

import (
	"context"
	"errors"
	"testing"

	"ratehubBack/internal/models"
)

type fakeTemplateProvider struct {
	templates map[int]models.Template
}

func (f *fakeTemplateProvider) GetTemplateByID(ctx context.Context, id int) (models.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return models.Template{}, models.ErrTemplateNotFound
	}
	return t, nil
}

type storedItem struct {
	item   models.Item
	values []models.FieldValue
}

type fakeItemRepo struct {
	nextID    int
	items     map[int]storedItem
	summaries []models.ItemSummary
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{nextID: 1, items: map[int]storedItem{}}
}

func (f *fakeItemRepo) SlugExists(ctx context.Context, templateID int, slug string) (bool, error) {
	for _, s := range f.items {
		if s.item.TemplateID == templateID && s.item.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeItemRepo) CreateItem(ctx context.Context, item models.Item, values []models.FieldValue) (models.Item, error) {
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = storedItem{item: item, values: values}
	return item, nil
}

func (f *fakeItemRepo) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	s, ok := f.items[id]
	if !ok {
		return models.Item{}, models.ErrItemNotFound
	}
	item := s.item
	item.FieldValues = s.values
	return item, nil
}

func (f *fakeItemRepo) GetItemBySlug(ctx context.Context, slug string) (models.Item, error) {
	for id, s := range f.items {
		if s.item.Slug == slug {
			return f.GetItemByID(ctx, id)
		}
	}
	return models.Item{}, models.ErrItemNotFound
}

func (f *fakeItemRepo) SearchItems(ctx context.Context, template models.Template, req models.SearchRequest) ([]models.ItemSummary, int, error) {
	total := len(f.summaries)
	start := (req.PageNo - 1) * req.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}
	return f.summaries[start:end], total, nil
}

func movieTemplate() models.Template {
	return models.Template{
		ID:   1,
		Name: "movies",
		Fields: []models.TemplateField{
			{ID: 10, TemplateID: 1, Name: "year", FieldType: models.FieldTypeNumber, IsRequired: true, Position: 1},
			{ID: 11, TemplateID: 1, Name: "genres", FieldType: models.FieldTypeMultiselect, Position: 2},
			{ID: 12, TemplateID: 1, Name: "poster", FieldType: models.FieldTypeImg, Position: 3},
		},
	}
}

func bookTemplate() models.Template {
	return models.Template{
		ID:   2,
		Name: "books",
		Fields: []models.TemplateField{
			{ID: 20, TemplateID: 2, Name: "author", FieldType: models.FieldTypeText, Position: 1},
		},
	}
}

func newItemService(repo *fakeItemRepo) *ItemService {
	return &ItemService{
		Templates: &fakeTemplateProvider{templates: map[int]models.Template{
			1: movieTemplate(),
			2: bookTemplate(),
		}},
		ItemRepo: repo,
	}
}

func TestCreateItem(t *testing.T) {
	repo := newFakeItemRepo()
	svc := newItemService(repo)

	item, err := svc.CreateItem(context.Background(), 7, models.CreateItemRequest{
		TemplateID: 1,
		Title:      "The Matrix",
		FieldValues: []models.FieldAssignment{
			{FieldName: "year", Value: 1999},
			{FieldName: "genres", Value: []interface{}{"Action", "Sci-Fi"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Slug != "the-matrix" {
		t.Errorf("slug = %q, want %q", item.Slug, "the-matrix")
	}
	if item.CreatedBy != 7 {
		t.Errorf("created_by = %d, want 7", item.CreatedBy)
	}
	if len(item.FieldValues) != 2 {
		t.Fatalf("stored %d field values, want 2", len(item.FieldValues))
	}
}

func TestCreateItemMissingRequiredFieldPersistsNothing(t *testing.T) {
	repo := newFakeItemRepo()
	svc := newItemService(repo)

	_, err := svc.CreateItem(context.Background(), 7, models.CreateItemRequest{
		TemplateID: 1,
		Title:      "Incomplete",
		FieldValues: []models.FieldAssignment{
			{FieldName: "genres", Value: []interface{}{"Drama"}},
		},
	})
	if !errors.Is(err, models.ErrMissingRequiredField) {
		t.Fatalf("err = %v, want ErrMissingRequiredField", err)
	}
	if len(repo.items) != 0 {
		t.Errorf("repository holds %d items after rejected create, want 0", len(repo.items))
	}
}

func TestCreateItemNullRequiredField(t *testing.T) {
	repo := newFakeItemRepo()
	svc := newItemService(repo)

	_, err := svc.CreateItem(context.Background(), 7, models.CreateItemRequest{
		TemplateID: 1,
		Title:      "Nulled",
		FieldValues: []models.FieldAssignment{
			{FieldName: "year", Value: nil},
		},
	})
	if !errors.Is(err, models.ErrMissingRequiredField) {
		t.Fatalf("err = %v, want ErrMissingRequiredField", err)
	}
	if len(repo.items) != 0 {
		t.Errorf("repository holds %d items after rejected create, want 0", len(repo.items))
	}
}

func TestCreateItemUnknownFieldName(t *testing.T) {
	svc := newItemService(newFakeItemRepo())

	_, err := svc.CreateItem(context.Background(), 7, models.CreateItemRequest{
		TemplateID: 1,
		Title:      "Stray",
		FieldValues: []models.FieldAssignment{
			{FieldName: "year", Value: 2001},
			{FieldName: "director", Value: "Kubrick"},
		},
	})
	if !errors.Is(err, models.ErrFieldNotFound) {
		t.Fatalf("err = %v, want ErrFieldNotFound", err)
	}
}

func TestCreateItemSlugCollision(t *testing.T) {
	repo := newFakeItemRepo()
	svc := newItemService(repo)

	req := models.CreateItemRequest{
		TemplateID: 1,
		Title:      "Dune",
		FieldValues: []models.FieldAssignment{
			{FieldName: "year", Value: 1984},
		},
	}
	first, err := svc.CreateItem(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("first CreateItem: %v", err)
	}
	second, err := svc.CreateItem(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("second CreateItem: %v", err)
	}
	third, err := svc.CreateItem(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("third CreateItem: %v", err)
	}

	if first.Slug != "dune" {
		t.Errorf("first slug = %q, want %q", first.Slug, "dune")
	}
	if second.Slug != "dune-2" {
		t.Errorf("second slug = %q, want %q", second.Slug, "dune-2")
	}
	if third.Slug != "dune-3" {
		t.Errorf("third slug = %q, want %q", third.Slug, "dune-3")
	}
}

func TestCreateItemSlugScopedPerTemplate(t *testing.T) {
	repo := newFakeItemRepo()
	svc := newItemService(repo)

	movie, err := svc.CreateItem(context.Background(), 7, models.CreateItemRequest{
		TemplateID: 1,
		Title:      "Dune",
		FieldValues: []models.FieldAssignment{
			{FieldName: "year", Value: 1984},
		},
	})
	if err != nil {
		t.Fatalf("CreateItem movie: %v", err)
	}
	book, err := svc.CreateItem(context.Background(), 7, models.CreateItemRequest{
		TemplateID: 2,
		Title:      "Dune",
		FieldValues: []models.FieldAssignment{
			{FieldName: "author", Value: "Frank Herbert"},
		},
	})
	if err != nil {
		t.Fatalf("CreateItem book: %v", err)
	}

	// Uniqueness is per template: the same title under a different
	// template keeps the plain slug, no suffix.
	if movie.Slug != "dune" {
		t.Errorf("movie slug = %q, want %q", movie.Slug, "dune")
	}
	if book.Slug != "dune" {
		t.Errorf("book slug = %q, want %q", book.Slug, "dune")
	}
}

func TestSearchItemsInvalidFilterField(t *testing.T) {
	svc := newItemService(newFakeItemRepo())

	_, err := svc.SearchItems(context.Background(), models.SearchRequest{
		TemplateID: 1,
		Fields: []models.FieldFilter{
			{FieldID: 999, FieldValue: []interface{}{"x"}},
		},
	})
	if !errors.Is(err, models.ErrInvalidFilterField) {
		t.Fatalf("err = %v, want ErrInvalidFilterField", err)
	}
}

func TestSearchItemsDropsEmptyFilters(t *testing.T) {
	repo := newFakeItemRepo()
	svc := newItemService(repo)

	// An unknown field id with no accepted values is dropped before
	// validation, so the search still succeeds.
	_, err := svc.SearchItems(context.Background(), models.SearchRequest{
		TemplateID: 1,
		Fields: []models.FieldFilter{
			{FieldID: 999, FieldValue: nil},
		},
	})
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
}

func TestSearchItemsPagination(t *testing.T) {
	repo := newFakeItemRepo()
	for i := 0; i < 25; i++ {
		repo.summaries = append(repo.summaries, models.ItemSummary{ID: i + 1})
	}
	svc := newItemService(repo)

	result, err := svc.SearchItems(context.Background(), models.SearchRequest{
		TemplateID: 1,
		PageSize:   10,
		PageNo:     3,
	})
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(result.Items) != 5 {
		t.Errorf("page 3 holds %d items, want 5", len(result.Items))
	}
	if result.Pagination.Total != 25 {
		t.Errorf("total = %d, want 25", result.Pagination.Total)
	}
	if result.Pagination.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.Pagination.TotalPages)
	}

	// Out of range pages are empty, not errors, and keep the metadata.
	result, err = svc.SearchItems(context.Background(), models.SearchRequest{
		TemplateID: 1,
		PageSize:   10,
		PageNo:     4,
	})
	if err != nil {
		t.Fatalf("SearchItems page 4: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("page 4 holds %d items, want 0", len(result.Items))
	}
	if result.Pagination.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.Pagination.TotalPages)
	}
}

func TestSearchItemsRejectsNegativePagination(t *testing.T) {
	svc := newItemService(newFakeItemRepo())

	_, err := svc.SearchItems(context.Background(), models.SearchRequest{
		TemplateID: 1,
		PageNo:     -1,
		PageSize:   10,
	})
	if !errors.Is(err, models.ErrInvalidPagination) {
		t.Fatalf("err = %v, want ErrInvalidPagination", err)
	}
}
