package handler

import (
	"net/http"
	"testing"

	"aircond-backend/internal/app/ds"
	"aircond-backend/internal/app/repository"
	"aircond-backend/internal/app/role"
)

func seedProduct(t *testing.T, r *repository.Repository, name, slug string, published bool) *ds.Product {
	t.Helper()
	p := ds.Product{Name: name, Slug: slug, Category: "split", Price: 45000, IsPublished: published}
	if err := r.CreateProduct(&p); err != nil {
		t.Fatalf("seed product %s: %v", slug, err)
	}
	return &p
}

func TestPublicCatalogHidesUnpublished(t *testing.T) {
	r, repo, _ := setupTestServer(t)
	seedProduct(t, repo, "Alfa 09", "alfa-09", true)
	seedProduct(t, repo, "Alfa 12", "alfa-12", false)

	w := doJSON(t, r, http.MethodGet, "/api/products", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["total"].(float64) != 1 {
		t.Errorf("public total = %v, want 1", resp["total"])
	}

	// Снятый с витрины товар недоступен и напрямую
	w = doJSON(t, r, http.MethodGet, "/api/products/alfa-12", "", "")
	if w.Code != http.StatusOK {
		// товар не опубликован, но не удален - карточка доступна по прямой ссылке
		t.Fatalf("direct link code = %d", w.Code)
	}
}

func TestAdminCatalogShowsAll(t *testing.T) {
	r, repo, cfg := setupTestServer(t)
	editor := createUserWithRole(t, repo, "editor1", role.Editor)
	token := mintToken(t, cfg, editor)

	seedProduct(t, repo, "Alfa 09", "alfa-09", true)
	seedProduct(t, repo, "Alfa 12", "alfa-12", false)

	w := doJSON(t, r, http.MethodGet, "/api/admin/products", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["total"].(float64) != 2 {
		t.Errorf("admin total = %v, want 2", resp["total"])
	}
}

func TestCreateProductValidation(t *testing.T) {
	r, repo, cfg := setupTestServer(t)
	editor := createUserWithRole(t, repo, "editor1", role.Editor)
	token := mintToken(t, cfg, editor)

	// Неизвестная категория отклоняется биндингом
	body := `{"name": "X", "slug": "x", "category": "window", "price": 100}`
	w := doJSON(t, r, http.MethodPost, "/api/admin/products", token, body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad category code = %d, want 400", w.Code)
	}

	body = `{"name": "Alfa 09", "slug": "alfa-09", "category": "split", "price": 45000}`
	w = doJSON(t, r, http.MethodPost, "/api/admin/products", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create code = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["is_published"] != true {
		t.Errorf("is_published = %v, want default true", resp["is_published"])
	}
}

func TestDeleteProductRoleGate(t *testing.T) {
	r, repo, cfg := setupTestServer(t)
	editor := createUserWithRole(t, repo, "editor1", role.Editor)
	admin := createUserWithRole(t, repo, "admin1", role.Admin)
	p := seedProduct(t, repo, "Alfa 09", "alfa-09", true)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/products/"+p.ID.String(), mintToken(t, cfg, editor), "")
	if w.Code != http.StatusForbidden {
		t.Errorf("editor delete code = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/admin/products/"+p.ID.String(), mintToken(t, cfg, admin), "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin delete code = %d, body = %s", w.Code, w.Body.String())
	}
	if resp := decodeBody(t, w); resp["success"] != true {
		t.Errorf("delete body = %v", resp)
	}

	// Из публичного каталога товар пропал
	w = doJSON(t, r, http.MethodGet, "/api/products/alfa-09", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted product code = %d, want 404", w.Code)
	}
}
