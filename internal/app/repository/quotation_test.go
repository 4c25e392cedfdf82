package repository

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
)

func createTestUser(t *testing.T, repo *Repository) *ds.User {
	t.Helper()
	user, err := repo.CreateUser("manager", "x", "Test Manager", 1)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreateQuotationGeneratesNumber(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	q := ds.Quotation{
		Client:      ds.QuotationClient{Name: "Иванов", Company: "ООО Климат"},
		CreatedByID: user.ID,
	}
	if err := repo.CreateQuotation(&q); err != nil {
		t.Fatalf("create: %v", err)
	}

	year := time.Now().Year()
	want := fmt.Sprintf("QT-%d-001", year)
	if q.Number != want {
		t.Errorf("number = %q, want %q", q.Number, want)
	}
	if q.Status != ds.QuotationStatusDraft {
		t.Errorf("status = %q, want draft", q.Status)
	}

	numberRe := regexp.MustCompile(`^QT-\d{4}-\d{3}$`)
	if !numberRe.MatchString(q.Number) {
		t.Errorf("number %q does not match pattern", q.Number)
	}
}

func TestCreateQuotationSequence(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	year := time.Now().Year()
	seen := map[string]bool{}
	for i := 1; i <= 5; i++ {
		q := ds.Quotation{CreatedByID: user.ID}
		if err := repo.CreateQuotation(&q); err != nil {
			t.Fatalf("create #%d: %v", i, err)
		}
		want := fmt.Sprintf("QT-%d-%03d", year, i)
		if q.Number != want {
			t.Errorf("quotation #%d number = %q, want %q", i, q.Number, want)
		}
		if seen[q.Number] {
			t.Fatalf("duplicate number %q", q.Number)
		}
		seen[q.Number] = true
	}
}

func TestCreateQuotationExplicitNumber(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	q := ds.Quotation{Number: "QT-2019-777", CreatedByID: user.ID}
	if err := repo.CreateQuotation(&q); err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.Number != "QT-2019-777" {
		t.Errorf("explicit number overwritten: %q", q.Number)
	}

	// Переданный номер не двигает счетчик текущего года
	next := ds.Quotation{CreatedByID: user.ID}
	if err := repo.CreateQuotation(&next); err != nil {
		t.Fatalf("create next: %v", err)
	}
	want := fmt.Sprintf("QT-%d-001", time.Now().Year())
	if next.Number != want {
		t.Errorf("next number = %q, want %q", next.Number, want)
	}
}

func TestGetQuotationByIDOrNumber(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	q := ds.Quotation{
		Client:      ds.QuotationClient{Name: "Петров"},
		Items:       []ds.QuotationItem{{Description: "Кондиционер сплит", Quantity: 2, UnitPrice: 35000}},
		CreatedByID: user.ID,
	}
	if err := repo.CreateQuotation(&q); err != nil {
		t.Fatalf("create: %v", err)
	}

	// по идентификатору
	byID, err := repo.GetQuotationByIDOrNumber(q.ID.String())
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Client.Name != "Петров" {
		t.Errorf("client name = %q", byID.Client.Name)
	}
	if len(byID.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(byID.Items))
	}

	// по человекочитаемому номеру
	byNumber, err := repo.GetQuotationByIDOrNumber(q.Number)
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if byNumber.ID != q.ID {
		t.Error("lookup by number returned different quotation")
	}

	// несуществующий ключ
	_, err = repo.GetQuotationByIDOrNumber("QT-1999-999")
	if !errors.Is(err, ErrQuotationNotFound) {
		t.Errorf("expected ErrQuotationNotFound, got %v", err)
	}
	_, err = repo.GetQuotationByIDOrNumber(uuid.NewString())
	if !errors.Is(err, ErrQuotationNotFound) {
		t.Errorf("expected ErrQuotationNotFound for random uuid, got %v", err)
	}
}

func TestUpdateQuotation(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	q := ds.Quotation{
		Items:       []ds.QuotationItem{{Description: "Монтаж", Quantity: 1, UnitPrice: 5000}},
		CreatedByID: user.ID,
	}
	if err := repo.CreateQuotation(&q); err != nil {
		t.Fatalf("create: %v", err)
	}

	// items == nil - позиции не трогаем
	updated, err := repo.UpdateQuotation(q.ID, map[string]interface{}{"status": ds.QuotationStatusSent}, nil)
	if err != nil {
		t.Fatalf("update fields: %v", err)
	}
	if updated.Status != ds.QuotationStatusSent {
		t.Errorf("status = %q, want sent", updated.Status)
	}
	if len(updated.Items) != 1 {
		t.Errorf("items touched on nil: %d", len(updated.Items))
	}

	// позиции заменяются целиком и нумеруются по порядку
	newItems := []ds.QuotationItem{
		{Description: "Кондиционер кассетный", Quantity: 1, UnitPrice: 90000},
		{Description: "Трасса 5м", Quantity: 1, UnitPrice: 7000},
	}
	updated, err = repo.UpdateQuotation(q.ID, nil, newItems)
	if err != nil {
		t.Fatalf("update items: %v", err)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(updated.Items))
	}
	for i, item := range updated.Items {
		if item.Position != i {
			t.Errorf("item %d position = %d", i, item.Position)
		}
	}

	// пустой слайс очищает позиции
	updated, err = repo.UpdateQuotation(q.ID, nil, []ds.QuotationItem{})
	if err != nil {
		t.Fatalf("clear items: %v", err)
	}
	if len(updated.Items) != 0 {
		t.Errorf("items = %d, want 0", len(updated.Items))
	}

	// несуществующее КП
	_, err = repo.UpdateQuotation(uuid.New(), map[string]interface{}{"status": "sent"}, nil)
	if !errors.Is(err, ErrQuotationNotFound) {
		t.Errorf("expected ErrQuotationNotFound, got %v", err)
	}
}

func TestDeleteQuotation(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	q := ds.Quotation{
		Items:       []ds.QuotationItem{{Description: "Демонтаж", Quantity: 1}},
		CreatedByID: user.ID,
	}
	if err := repo.CreateQuotation(&q); err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := repo.DeleteQuotation(q.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Error("delete reported false for existing quotation")
	}

	// позиции удалены вместе с КП
	var itemCount int64
	repo.db.Model(&ds.QuotationItem{}).Where("quotation_id = ?", q.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("orphan items left: %d", itemCount)
	}

	// повторное удаление
	removed, err = repo.DeleteQuotation(q.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Error("delete reported true for missing quotation")
	}
}

func TestCountQuotationsByStatus(t *testing.T) {
	repo := setupTestRepository(t)
	user := createTestUser(t, repo)

	for _, status := range []string{"draft", "draft", "sent"} {
		q := ds.Quotation{Status: status, CreatedByID: user.ID}
		if err := repo.CreateQuotation(&q); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if got := repo.CountQuotationsByStatus("draft"); got != 2 {
		t.Errorf("draft count = %d, want 2", got)
	}
	if got := repo.CountQuotationsByStatus("cancelled"); got != 0 {
		t.Errorf("cancelled count = %d, want 0", got)
	}
}
