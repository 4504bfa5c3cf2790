package memory

import (
	"github.com/jortega/catalogo-api/internal/domain/entity"
	"github.com/jortega/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo vista CategoryRepository sobre el almacén en memoria.
type CategoryRepo struct {
	store *Store
}

// List devuelve todas las categorías con sus productos asociados.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out := cloneCategoryRef(c)
		for _, p := range s.products {
			if p.HasCategory(c.ID) {
				out.Products = append(out.Products, *s.cloneProduct(p))
			}
		}
		cc := out
		list = append(list, &cc)
	}
	return list, nil
}

// GetByID devuelve la categoría con sus productos, o (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	out := cloneCategoryRef(c)
	for _, p := range s.products {
		if p.HasCategory(c.ID) {
			out.Products = append(out.Products, *s.cloneProduct(p))
		}
	}
	return &out, nil
}

// Create persiste una copia de la categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cloneCategoryRef(category)
	s.categories[c.ID] = &c
	return nil
}

// Update reemplaza la categoría identificada por old.
func (r *CategoryRepo) Update(old, updated *entity.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cloneCategoryRef(updated)
	c.ID = old.ID
	s.categories[old.ID] = &c
	return nil
}

// Delete elimina la categoría y sus asociaciones; false si no existía.
func (r *CategoryRepo) Delete(category *entity.Category) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return false, nil
	}
	delete(s.categories, category.ID)
	for _, p := range s.products {
		kept := p.Categories[:0]
		for _, c := range p.Categories {
			if c.ID != category.ID {
				kept = append(kept, c)
			}
		}
		p.Categories = kept
	}
	return true, nil
}
