package entity

import "time"

// Roles de usuario. superadmin opera sobre todas las bodegas; admin solo sobre
// las que administra vía inventory_managers.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleDriver     = "driver"
	RoleCustomer   = "customer"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
