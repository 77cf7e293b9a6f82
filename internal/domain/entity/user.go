package entity

import "time"

// Roles válidos para User. superadmin administra la plataforma (panel admin),
// el resto opera dentro de su empresa.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleContador   = "contador"
	RoleAsistente  = "asistente"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
