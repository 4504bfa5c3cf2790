package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Categories son nombres
// de categorías existentes (la resolución es del motor, no del transporte).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Categories  []string        `json:"categories" validate:"required,min=1"`
}

// UpdateProductRequest entrada para actualizar un producto (reemplazo total,
// conserva la identidad original).
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Categories  []string        `json:"categories" validate:"required,min=1"`
}

// ProductResponse salida de un producto. Categories son los nombres asociados.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Categories  []string        `json:"categories"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// StockRecord un registro del import masivo de stock: Quantity se suma al
// producto existente (o inicia el nuevo) y las categorías faltantes se crean.
type StockRecord struct {
	Name       string          `json:"name" validate:"required"`
	Categories []string        `json:"categories"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity" validate:"min=0"`
}

// CartItem una línea del carrito para el cálculo de descuento.
type CartItem struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

// ProductDiscount descuento aplicado a un producto del carrito.
type ProductDiscount struct {
	ProductName    string          `json:"product_name"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// DiscountResult totales del carrito, todos redondeados a 2 decimales.
// Discounts conserva el orden de procesamiento del carrito.
type DiscountResult struct {
	TotalBeforeDiscount decimal.Decimal   `json:"total_before_discount"`
	TotalDiscount       decimal.Decimal   `json:"total_discount"`
	FinalPrice          decimal.Decimal   `json:"final_price"`
	Discounts           []ProductDiscount `json:"discounts"`
}
