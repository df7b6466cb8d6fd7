package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User representa un usuario del sistema (admin o empleado de caja).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | employee
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
