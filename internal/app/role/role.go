package role

import "strings"

// Role роль пользователя админ-панели
type Role int

const (
	Editor     Role = iota // контент-менеджер, работает с каталогом и блогом
	Admin                  // администратор, полный доступ кроме удаления КП
	SuperAdmin             // высшая роль, единственная с правом удаления
)

// String возвращает строковое представление роли (хранится в cookie/JWT)
func (r Role) String() string {
	switch r {
	case Editor:
		return "editor"
	case Admin:
		return "admin"
	case SuperAdmin:
		return "superadmin"
	default:
		return "unknown"
	}
}

// Parse преобразует строку роли из cookie в Role
func Parse(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "editor":
		return Editor, true
	case "admin":
		return Admin, true
	case "superadmin":
		return SuperAdmin, true
	default:
		return Editor, false
	}
}
