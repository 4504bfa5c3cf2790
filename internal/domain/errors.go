package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los fallos de negocio del catálogo. Los handlers deciden el
// status HTTP según el Kind, sin parsear mensajes.
type Kind string

const (
	KindDuplicateCategory Kind = "DUPLICATE_CATEGORY"
	KindCategoryNotFound  Kind = "CATEGORY_NOT_FOUND"
	KindDuplicateProduct  Kind = "DUPLICATE_PRODUCT"
	KindProductNotFound   Kind = "PRODUCT_NOT_FOUND"
	KindMissingName       Kind = "MISSING_NAME"
	KindMissingCategories Kind = "MISSING_CATEGORIES"
	KindInvalidPrice      Kind = "INVALID_PRICE"
	KindUnknownCategory   Kind = "UNKNOWN_CATEGORY"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
)

// CatalogError es un error de negocio etiquetado: lleva el Kind más el
// contexto (ID o Name de la entidad implicada) para que el llamador pueda
// ramificar sin leer el mensaje.
type CatalogError struct {
	Kind Kind
	ID   string // id de la entidad, si aplica
	Name string // nombre de la entidad, si aplica
}

func (e *CatalogError) Error() string {
	switch e.Kind {
	case KindDuplicateCategory:
		return "ya existe una categoría con ese nombre"
	case KindCategoryNotFound:
		return fmt.Sprintf("categoría con ID %s no encontrada", e.ID)
	case KindDuplicateProduct:
		return "ya existe un producto con ese nombre"
	case KindProductNotFound:
		if e.Name != "" {
			return fmt.Sprintf("producto '%s' no encontrado", e.Name)
		}
		return fmt.Sprintf("producto con ID %s no encontrado", e.ID)
	case KindMissingName:
		return "el nombre del producto es requerido"
	case KindMissingCategories:
		return "se requiere al menos una categoría"
	case KindInvalidPrice:
		return "el precio del producto debe ser mayor que 0"
	case KindUnknownCategory:
		return fmt.Sprintf("la categoría '%s' no existe", e.Name)
	case KindInsufficientStock:
		return fmt.Sprintf("stock insuficiente para '%s'", e.Name)
	}
	return string(e.Kind)
}

// Is permite comparar por Kind con errors.Is usando otro *CatalogError como target.
func (e *CatalogError) Is(target error) bool {
	var t *CatalogError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Constructores por taxonomía.

func ErrDuplicateCategory() error { return &CatalogError{Kind: KindDuplicateCategory} }

func ErrCategoryNotFound(id string) error {
	return &CatalogError{Kind: KindCategoryNotFound, ID: id}
}

func ErrDuplicateProduct() error { return &CatalogError{Kind: KindDuplicateProduct} }

func ErrProductNotFound(id string) error {
	return &CatalogError{Kind: KindProductNotFound, ID: id}
}

func ErrProductNotFoundByName(name string) error {
	return &CatalogError{Kind: KindProductNotFound, Name: name}
}

func ErrMissingName() error { return &CatalogError{Kind: KindMissingName} }

func ErrMissingCategories() error { return &CatalogError{Kind: KindMissingCategories} }

func ErrInvalidPrice() error { return &CatalogError{Kind: KindInvalidPrice} }
func ErrUnknownCategory(name string) error {
	return &CatalogError{Kind: KindUnknownCategory, Name: name}
}

func ErrInsufficientStock(name string) error {
	return &CatalogError{Kind: KindInsufficientStock, Name: name}
}

// KindOf extrae el Kind de un error del catálogo; "" si no es un CatalogError.
func KindOf(err error) Kind {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// Errores de autenticación y genéricos (sin contexto estructurado).
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
