package entity

import "time"

// Roles válidos para User. El rol viaja en el JWT para decisiones RBAC sin consultar la DB.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RolePlanner  = "planner"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, planner, operator, viewer
	Department   string
	Phone        string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RolePlanner, RoleOperator, RoleViewer:
		return true
	}
	return false
}
