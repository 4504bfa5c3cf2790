package repository

import "github.com/jortega/catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe. List carga los productos asociados.
// Delete informa con bool si la fila fue eliminada.
type CategoryRepository interface {
	List() ([]*entity.Category, error)
	GetByID(id string) (*entity.Category, error)
	Create(category *entity.Category) error
	Update(old, updated *entity.Category) error
	Delete(category *entity.Category) (bool, error)
}
