package handler

import (
	"net/http"
	"testing"

	"aircond-backend/internal/app/role"
)

func TestLoginFlow(t *testing.T) {
	r, repo, _ := setupTestServer(t)
	createUserWithRole(t, repo, "manager", role.Editor)

	// Успешный вход возвращает токен и профиль
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"login": "manager", "password": "secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("no token in response")
	}
	user := resp["user"].(map[string]interface{})
	if user["login"] != "manager" || user["role"] != "editor" {
		t.Errorf("user = %v", user)
	}

	// Cookie admin_auth выставлен
	var hasCookie bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_auth" && c.Value != "" {
			hasCookie = true
		}
	}
	if !hasCookie {
		t.Error("admin_auth cookie not set")
	}

	// Токен из ответа открывает профиль
	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("profile code = %d, body = %s", w.Code, w.Body.String())
	}
	profile := decodeBody(t, w)
	if profile["login"] != "manager" {
		t.Errorf("profile login = %v", profile["login"])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, repo, _ := setupTestServer(t)
	createUserWithRole(t, repo, "manager", role.Editor)

	cases := []string{
		`{"login": "manager", "password": "wrong"}`,
		`{"login": "ghost", "password": "secret123"}`,
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", body)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("body %s: code = %d, want 401", body, w.Code)
		}
	}
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	r, repo, cfg := setupTestServer(t)
	editor := createUserWithRole(t, repo, "manager", role.Editor)
	token := mintToken(t, cfg, editor)

	w := doJSON(t, r, http.MethodPut, "/api/auth/profile", token, `{"full_name": "Новое Имя", "password": "newsecret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update code = %d, body = %s", w.Code, w.Body.String())
	}

	// Старый пароль больше не подходит
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"login": "manager", "password": "secret123"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password code = %d, want 401", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"login": "manager", "password": "newsecret"}`)
	if w.Code != http.StatusOK {
		t.Errorf("new password code = %d, want 200", w.Code)
	}

	updated, err := repo.GetUserByLogin("manager")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if updated.FullName != "Новое Имя" {
		t.Errorf("full name = %q", updated.FullName)
	}
}

func TestCreateUserSuperadminOnly(t *testing.T) {
	r, repo, cfg := setupTestServer(t)
	editor := createUserWithRole(t, repo, "editor1", role.Editor)
	superadmin := createUserWithRole(t, repo, "root", role.SuperAdmin)

	body := `{"login": "newbie", "password": "secret123", "full_name": "New Editor", "role": "editor"}`

	// Редактору запрещено
	w := doJSON(t, r, http.MethodPost, "/api/admin/users", mintToken(t, cfg, editor), body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("editor code = %d, want 403", w.Code)
	}

	// Суперадмин создает
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", mintToken(t, cfg, superadmin), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("superadmin code = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["login"] != "newbie" || resp["role"] != "editor" {
		t.Errorf("created user = %v", resp)
	}

	// Повторный логин занят
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", mintToken(t, cfg, superadmin), body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate login code = %d, want 400", w.Code)
	}

	// Новый пользователь может войти
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"login": "newbie", "password": "secret123"}`)
	if w.Code != http.StatusOK {
		t.Errorf("new user login code = %d", w.Code)
	}
}
