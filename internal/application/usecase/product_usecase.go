package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jortega/catalogo-api/internal/application/dto"
	"github.com/jortega/catalogo-api/internal/domain"
	"github.com/jortega/catalogo-api/internal/domain/entity"
	"github.com/jortega/catalogo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// discountRate 5% fijo sobre el precio unitario cuando la línea del carrito
// lleva más de una unidad y el producto tiene al menos una categoría.
// decimal.Round redondea mitades alejándose de cero (redondeo comercial).
var discountRate = decimal.RequireFromString("0.05")

// ProductUseCase aplica las reglas de negocio de productos: validación en
// cadena, resolución de categorías por nombre, merge del import de stock y
// cálculo de descuento del carrito. No guarda estado entre llamadas; cada
// operación relee del repositorio lo que necesita.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso con los puertos de persistencia.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// List lista todos los productos con sus categorías.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Create crea un producto. Validación en cadena, gana la primera violación:
// nombre vacío, sin categorías, precio no positivo, nombre duplicado
// (sin distinguir mayúsculas), categoría desconocida. Si algo falla no se
// persiste nada.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrMissingName()
	}
	if len(in.Categories) == 0 {
		return nil, domain.ErrMissingCategories()
	}
	if !in.Price.IsPositive() {
		return nil, domain.ErrInvalidPrice()
	}
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, in.Name) {
			return nil, domain.ErrDuplicateProduct()
		}
	}
	categories, err := uc.resolveCategories(in.Categories)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Categories:  categories,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza los datos del producto conservando su identidad. Revalida
// precio y categorías sobre los datos entrantes; a propósito no revisa
// colisión de nombre: actualizar un producto con su propio nombre debe pasar.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	old, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, domain.ErrProductNotFound(id)
	}
	if !in.Price.IsPositive() {
		return nil, domain.ErrInvalidPrice()
	}
	if len(in.Categories) == 0 {
		return nil, domain.ErrMissingCategories()
	}
	categories, err := uc.resolveCategories(in.Categories)
	if err != nil {
		return nil, err
	}
	updated := &entity.Product{
		ID:          old.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Categories:  categories,
		CreatedAt:   old.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	if err := uc.productRepo.Update(old, updated); err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina un producto por ID. Si no existe devuelve (false, nil).
func (uc *ProductUseCase) Delete(id string) (bool, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}
	return uc.productRepo.Delete(product)
}

// StockImport procesa los registros en orden y de forma independiente: crea
// las categorías faltantes (nombre normalizado: trim + minúsculas), suma la
// cantidad al producto existente o lo crea, y asocia categorías nuevas sin
// duplicar ni quitar las que ya tenía. El precio de un producto existente no
// se modifica. Un fallo en el registro N no revierte los registros 1..N-1.
func (uc *ProductUseCase) StockImport(records []dto.StockRecord) error {
	for _, rec := range records {
		names := make([]string, 0, len(rec.Categories))
		for _, n := range rec.Categories {
			names = append(names, strings.ToLower(strings.TrimSpace(n)))
		}

		// Releer por registro: las categorías creadas por registros anteriores
		// del mismo lote deben ser visibles aquí.
		all, err := uc.categoryRepo.List()
		if err != nil {
			return err
		}
		matched := make([]entity.Category, 0, len(names))
		for _, name := range names {
			var found *entity.Category
			for _, c := range all {
				if strings.EqualFold(c.Name, name) {
					found = c
					break
				}
			}
			if found == nil {
				now := time.Now()
				created := &entity.Category{
					ID:        uuid.New().String(),
					Name:      name,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := uc.categoryRepo.Create(created); err != nil {
					return err
				}
				// Visible también para el resto del registro: un nombre
				// repetido no se crea dos veces.
				all = append(all, created)
				found = created
			}
			matched = append(matched, categoryRef(found))
		}

		products, err := uc.productRepo.List()
		if err != nil {
			return err
		}
		var existing *entity.Product
		for _, p := range products {
			if strings.EqualFold(p.Name, rec.Name) {
				existing = p
				break
			}
		}

		if existing != nil {
			merged := *existing
			merged.Quantity += rec.Quantity
			merged.Categories = append([]entity.Category(nil), existing.Categories...)
			// Membership por identidad con set: O(1) por categoría.
			present := make(map[string]struct{}, len(merged.Categories))
			for _, c := range merged.Categories {
				present[c.ID] = struct{}{}
			}
			for _, c := range matched {
				if _, ok := present[c.ID]; !ok {
					merged.Categories = append(merged.Categories, c)
					present[c.ID] = struct{}{}
				}
			}
			merged.UpdatedAt = time.Now()
			if err := uc.productRepo.Update(existing, &merged); err != nil {
				return err
			}
		} else {
			now := time.Now()
			product := &entity.Product{
				ID:         uuid.New().String(),
				Name:       rec.Name,
				Price:      rec.Price,
				Quantity:   rec.Quantity,
				Categories: matched,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := uc.productRepo.Create(product); err != nil {
				return err
			}
		}
	}
	return nil
}

// CalculateDiscount calcula los totales del carrito. Solo lee el catálogo,
// no escribe nada. Procesa las líneas en orden: resuelve el producto por
// nombre, verifica stock y acumula precio × cantidad; si la línea lleva más
// de una unidad y el producto tiene categorías, aplica el 5% sobre el precio
// unitario (no sobre el total de la línea).
func (uc *ProductUseCase) CalculateDiscount(cart []dto.CartItem) (*dto.DiscountResult, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	discountTotal := decimal.Zero
	discounts := make([]dto.ProductDiscount, 0)
	for _, item := range cart {
		var product *entity.Product
		for _, p := range products {
			if strings.EqualFold(p.Name, item.ProductName) {
				product = p
				break
			}
		}
		if product == nil {
			return nil, domain.ErrProductNotFoundByName(item.ProductName)
		}
		if item.Quantity > product.Quantity {
			return nil, domain.ErrInsufficientStock(product.Name)
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		if item.Quantity > 1 && len(product.Categories) > 0 {
			d := product.Price.Mul(discountRate).Round(2)
			discountTotal = discountTotal.Add(d)
			discounts = append(discounts, dto.ProductDiscount{
				ProductName:    product.Name,
				DiscountAmount: d,
			})
		}
	}
	return &dto.DiscountResult{
		TotalBeforeDiscount: total.Round(2),
		TotalDiscount:       discountTotal.Round(2),
		FinalPrice:          total.Sub(discountTotal).Round(2),
		Discounts:           discounts,
	}, nil
}

// resolveCategories resuelve cada nombre contra la lista completa actual
// (una sola lectura para todos los nombres), sin distinguir mayúsculas.
// Resolución atómica: o resuelven todos los nombres o se devuelve
// UnknownCategory con el primero sin match, sin asignación parcial ni
// escritura alguna. Búsqueda lineal: suficiente al tamaño de un catálogo.
func (uc *ProductUseCase) resolveCategories(names []string) ([]entity.Category, error) {
	all, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	matched := make([]entity.Category, 0, len(names))
	for _, name := range names {
		var found *entity.Category
		for _, c := range all {
			if strings.EqualFold(c.Name, name) {
				found = c
				break
			}
		}
		if found == nil {
			return nil, domain.ErrUnknownCategory(name)
		}
		matched = append(matched, categoryRef(found))
	}
	return matched, nil
}

// categoryRef copia la identidad de la categoría sin arrastrar sus productos.
func categoryRef(c *entity.Category) entity.Category {
	return entity.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// toProductResponse conversión explícita entidad→DTO, campo por campo.
func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, c.Name)
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Categories:  categories,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
