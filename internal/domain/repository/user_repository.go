package repository

import "github.com/jortega/catalogo-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// GetByEmail devuelve (nil, nil) si no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
