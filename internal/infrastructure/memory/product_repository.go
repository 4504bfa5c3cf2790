package memory

import (
	"github.com/jortega/catalogo-api/internal/domain/entity"
	"github.com/jortega/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo vista ProductRepository sobre el almacén en memoria.
type ProductRepo struct {
	store *Store
}

// List devuelve todos los productos con sus categorías resueltas.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, s.cloneProduct(p))
	}
	return list, nil
}

// GetByID devuelve el producto con sus categorías, o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return s.cloneProduct(p), nil
}

// Create persiste una copia del producto con sus asociaciones.
func (r *ProductRepo) Create(product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = copyProduct(product)
	return nil
}

// Update reemplaza datos y asociaciones del producto identificado por old.
func (r *ProductRepo) Update(old, updated *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	p := copyProduct(updated)
	p.ID = old.ID
	s.products[old.ID] = p
	return nil
}

// Delete elimina el producto; false si no existía.
func (r *ProductRepo) Delete(product *entity.Product) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return false, nil
	}
	delete(s.products, product.ID)
	return true, nil
}

// copyProduct copia defensiva del producto tal como llega del motor.
func copyProduct(p *entity.Product) *entity.Product {
	out := *p
	out.Categories = make([]entity.Category, 0, len(p.Categories))
	for _, c := range p.Categories {
		out.Categories = append(out.Categories, cloneCategoryRef(&c))
	}
	return &out
}
