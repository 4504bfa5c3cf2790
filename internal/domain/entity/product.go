package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El nombre es único (sin
// distinguir mayúsculas/minúsculas); Quantity es el stock disponible y nunca
// queda negativo por operaciones del motor. Categories es el conjunto de
// categorías asociadas (relación muchos-a-muchos, sin orden garantizado).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, siempre > 0
	Quantity    int
	Categories  []Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasCategory indica si el producto ya está asociado a la categoría (por identidad).
func (p *Product) HasCategory(categoryID string) bool {
	for _, c := range p.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
