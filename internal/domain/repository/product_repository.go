package repository

import "github.com/jortega/catalogo-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe. List y GetByID cargan el conjunto
// de categorías asociadas. Update reemplaza los datos y las asociaciones del
// producto identificado por old. Delete informa con bool si la fila fue eliminada.
type ProductRepository interface {
	List() ([]*entity.Product, error)
	GetByID(id string) (*entity.Product, error)
	Create(product *entity.Product) error
	Update(old, updated *entity.Product) error
	Delete(product *entity.Product) (bool, error)
}
