package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jortega/catalogo-api/internal/application/dto"
	"github.com/jortega/catalogo-api/internal/domain"
	"github.com/jortega/catalogo-api/internal/domain/entity"
	"github.com/jortega/catalogo-api/internal/domain/repository"
)

// CategoryUseCase aplica las reglas de negocio de categorías: unicidad de
// nombre sin distinguir mayúsculas y actualización sobre la misma identidad.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso con el puerto de persistencia.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List lista todas las categorías con sus productos asociados.
func (uc *CategoryUseCase) List() (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe:
// la ausencia es una señal, no un error.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Create crea una categoría. Devuelve DuplicateCategory si ya existe otra con
// el mismo nombre (sin distinguir mayúsculas); en ese caso no se persiste nada.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if strings.EqualFold(c.Name, in.Name) {
			return nil, domain.ErrDuplicateCategory()
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update sobreescribe nombre y descripción conservando la identidad.
// Devuelve CategoryNotFound(id) si la categoría no existe.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	old, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, domain.ErrCategoryNotFound(id)
	}
	updated := *old
	updated.Name = in.Name
	updated.Description = in.Description
	updated.UpdatedAt = time.Now()
	if err := uc.repo.Update(old, &updated); err != nil {
		return nil, err
	}
	return toCategoryResponse(&updated), nil
}

// Delete elimina una categoría por ID. Si no existe devuelve (false, nil):
// borrar lo inexistente es un no-op benigno, no un fallo.
func (uc *CategoryUseCase) Delete(id string) (bool, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if category == nil {
		return false, nil
	}
	return uc.repo.Delete(category)
}

// toCategoryResponse conversión explícita entidad→DTO, campo por campo.
func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	products := make([]dto.ProductResponse, 0, len(c.Products))
	for i := range c.Products {
		products = append(products, *toProductResponse(&c.Products[i]))
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Products:    products,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
