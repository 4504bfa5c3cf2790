package entity

import "time"

// Category representa una categoría del catálogo. El nombre es único
// (sin distinguir mayúsculas/minúsculas) en todo el catálogo.
// Products trae los productos asociados cuando el repositorio los carga.
type Category struct {
	ID          string
	Name        string
	Description string
	Products    []Product
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
