// Package memory implementa los puertos de persistencia sobre mapas en
// memoria protegidos con RWMutex. Lo usan los tests y el modo dry-run del
// seeder; el comportamiento observable (copias defensivas, carga de
// asociaciones en List/GetByID) imita al adaptador PostgreSQL.
package memory

import (
	"sync"

	"github.com/jortega/catalogo-api/internal/domain/entity"
)

// Store estado compartido: categorías, productos (con sus asociaciones) y usuarios.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	users      map[string]*entity.User
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
		users:      make(map[string]*entity.User),
	}
}

// Categories devuelve la vista CategoryRepository del almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{store: s} }

// Products devuelve la vista ProductRepository del almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Users devuelve la vista UserRepository del almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// cloneCategoryRef copia una categoría sin productos (referencia de identidad).
func cloneCategoryRef(c *entity.Category) entity.Category {
	return entity.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// cloneProduct copia un producto resolviendo sus categorías contra el estado
// actual del almacén (equivalente al join del adaptador SQL). Llamar con el
// lock tomado.
func (s *Store) cloneProduct(p *entity.Product) *entity.Product {
	out := &entity.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	out.Categories = make([]entity.Category, 0, len(p.Categories))
	for _, c := range p.Categories {
		if cur, ok := s.categories[c.ID]; ok {
			out.Categories = append(out.Categories, cloneCategoryRef(cur))
		}
	}
	return out
}
