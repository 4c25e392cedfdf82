package repository

import (
	"fmt"
	"testing"

	"aircond-backend/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo, err := NewWithDB(db)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return repo
}

func TestResolveStatusIDLegacyCodes(t *testing.T) {
	repo := setupTestRepository(t)
	if err := repo.SeedStatuses(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Каждый legacy-код должен разрешаться в идентификатор своей записи
	for code, name := range map[int]string{1: "Draft", 2: "Published", 3: "In Review"} {
		id := repo.ResolveStatusID(code)
		if id == "" {
			t.Fatalf("code %d resolved to empty id", code)
		}

		var status ds.Status
		if err := repo.db.First(&status, "id = ?", id).Error; err != nil {
			t.Fatalf("status row for code %d: %v", code, err)
		}
		if status.Name != name {
			t.Errorf("code %d resolved to %q, want %q", code, status.Name, name)
		}

		// Обратное преобразование возвращает исходный код
		if got := repo.StatusNumeric(id); got != code {
			t.Errorf("StatusNumeric(%q) = %d, want %d", id, got, code)
		}
	}
}

func TestResolveStatusIDUnknownInput(t *testing.T) {
	repo := setupTestRepository(t)
	if err := repo.SeedStatuses(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []interface{}{nil, 0, 4, -1, 2.5, "", "archived", uuid.Nil, []int{1}}
	for _, v := range cases {
		if id := repo.ResolveStatusID(v); id != "" {
			t.Errorf("ResolveStatusID(%#v) = %q, want empty", v, id)
		}
	}
}

func TestResolveStatusIDVariants(t *testing.T) {
	repo := setupTestRepository(t)
	if err := repo.SeedStatuses(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	published := repo.ResolveStatusID(2)
	if published == "" {
		t.Fatal("Published not seeded")
	}

	// uuid-строка проходит без изменений
	if got := repo.ResolveStatusID(published); got != published {
		t.Errorf("uuid string passthrough: got %q", got)
	}

	// имя без учета регистра
	if got := repo.ResolveStatusID("published"); got != published {
		t.Errorf("name lookup: got %q, want %q", got, published)
	}
	if got := repo.ResolveStatusID("In Review"); got == "" {
		t.Error("name with space did not resolve")
	}

	// JSON-числа приходят как float64
	if got := repo.ResolveStatusID(float64(2)); got != published {
		t.Errorf("float64 code: got %q, want %q", got, published)
	}

	// запись справочника
	var status ds.Status
	if err := repo.db.First(&status, "name = ?", "Published").Error; err != nil {
		t.Fatalf("status row: %v", err)
	}
	if got := repo.ResolveStatusID(status); got != published {
		t.Errorf("struct input: got %q, want %q", got, published)
	}
}

func TestResolveStatusIDUnseeded(t *testing.T) {
	repo := setupTestRepository(t)

	// Справочник пуст - коды разрешаются в пустую строку, без паники и ошибок
	for _, code := range []int{1, 2, 3} {
		if id := repo.ResolveStatusID(code); id != "" {
			t.Errorf("unseeded code %d resolved to %q", code, id)
		}
	}
}
