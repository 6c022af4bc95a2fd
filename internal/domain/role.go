package domain

import "strings"

// Role — роль сотрудника, от имени которого выполняется действие.
type Role string

const (
	RoleManager     Role = "manager"
	RoleWarehouse   Role = "warehouse"
	RoleSalesperson Role = "salesperson"
)

// Valid проверяет, что роль входит в закрытый список.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleWarehouse, RoleSalesperson:
		return true
	default:
		return false
	}
}

// ParseRole нормализует роль из транспортного слоя.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}

// Actor — уже аутентифицированный вызывающий.
type Actor struct {
	ID   string
	Role Role
}
