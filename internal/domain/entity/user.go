package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"    // puede mutar el catálogo e importar stock
	RoleConsulta = "consulta" // solo lectura
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, consulta
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
