package repository

import (
	"errors"
	"testing"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
)

func createTestProduct(t *testing.T, repo *Repository, name, slug string, published bool) *ds.Product {
	t.Helper()
	p := ds.Product{
		Name:        name,
		Slug:        slug,
		Category:    "split",
		Price:       45000,
		IsPublished: published,
	}
	if err := repo.CreateProduct(&p); err != nil {
		t.Fatalf("create product %s: %v", slug, err)
	}
	return &p
}

func TestGetAllProductsFilters(t *testing.T) {
	repo := setupTestRepository(t)

	createTestProduct(t, repo, "Сплит-система Alfa 09", "alfa-09", true)
	createTestProduct(t, repo, "Сплит-система Alfa 12", "alfa-12", false)
	createTestProduct(t, repo, "Кассетный Beta 18", "beta-18", true)

	// Витрина видит только опубликованные
	public, err := repo.GetAllProducts("", true)
	if err != nil {
		t.Fatalf("get public: %v", err)
	}
	if len(public) != 2 {
		t.Errorf("public products = %d, want 2", len(public))
	}

	// Админка видит все
	all, err := repo.GetAllProducts("", false)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all products = %d, want 3", len(all))
	}

	// Поиск без учета регистра
	found, err := repo.GetAllProducts("alfa", false)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("search results = %d, want 2", len(found))
	}
}

func TestDeleteProductIsSoft(t *testing.T) {
	repo := setupTestRepository(t)
	p := createTestProduct(t, repo, "Alfa 09", "alfa-09", true)

	removed, err := repo.DeleteProduct(p.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Error("delete reported false")
	}

	// Строка остается в таблице с пометкой is_deleted
	var raw ds.Product
	if err := repo.db.First(&raw, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("row gone from table: %v", err)
	}
	if !raw.IsDeleted {
		t.Error("is_deleted not set")
	}

	// Но API удаленный товар не отдает
	if _, err := repo.GetProductByIDOrSlug(p.ID.String()); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	// Повторное удаление
	removed, err = repo.DeleteProduct(p.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Error("second delete reported true")
	}
}

func TestGetProductByIDOrSlug(t *testing.T) {
	repo := setupTestRepository(t)
	p := createTestProduct(t, repo, "Alfa 09", "alfa-09", true)

	bySlug, err := repo.GetProductByIDOrSlug("alfa-09")
	if err != nil {
		t.Fatalf("by slug: %v", err)
	}
	byID, err := repo.GetProductByIDOrSlug(p.ID.String())
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if bySlug.ID != byID.ID {
		t.Error("slug and id lookups disagree")
	}

	if _, err := repo.GetProductByIDOrSlug(uuid.NewString()); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestUpdateProductImage(t *testing.T) {
	repo := setupTestRepository(t)
	p := createTestProduct(t, repo, "Alfa 09", "alfa-09", true)

	if err := repo.UpdateProductImage(p.ID, "product/alfa.png"); err != nil {
		t.Fatalf("set image: %v", err)
	}
	got, err := repo.GetProductByIDOrSlug(p.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != "product/alfa.png" {
		t.Errorf("image url = %v", got.ImageURL)
	}

	if err := repo.DeleteProductImage(p.ID); err != nil {
		t.Fatalf("delete image: %v", err)
	}
	got, err = repo.GetProductByIDOrSlug(p.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ImageURL != nil {
		t.Errorf("image url not cleared: %v", *got.ImageURL)
	}
}
