package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/catalogo-api/internal/application/dto"
	"github.com/jortega/catalogo-api/internal/domain"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — validación en cadena
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_NombreVacio_GanaSobreElResto(t *testing.T) {
	_, prodUC := newCatalog()

	// Sin categorías y sin precio tampoco, pero el nombre vacío se reporta primero.
	_, err := prodUC.Create(dto.CreateProductRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, domain.KindMissingName, domain.KindOf(err))
}

func TestProductCreate_SinCategorias(t *testing.T) {
	_, prodUC := newCatalog()

	_, err := prodUC.Create(dto.CreateProductRequest{
		Name:  "Teclado",
		Price: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindMissingCategories, domain.KindOf(err))
}

func TestProductCreate_PrecioNoPositivo(t *testing.T) {
	_, prodUC := newCatalog()

	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := prodUC.Create(dto.CreateProductRequest{
			Name:       "Teclado",
			Price:      price,
			Categories: []string{"Teclados"},
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidPrice, domain.KindOf(err))
	}
}

func TestProductCreate_NombreDuplicadoSinDistinguirMayusculas(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)

	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      decimal.NewFromInt(100),
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)

	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "TECLADO",
		Price:      decimal.NewFromInt(50),
		Categories: []string{"Teclados"},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindDuplicateProduct, domain.KindOf(err))

	list, err := prodUC.List()
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "el intento duplicado no debe persistir nada")
}

func TestProductCreate_CategoriaDesconocida_ReportaElNombre(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)

	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      decimal.NewFromInt(100),
		Categories: []string{"Teclados", "Fantasmas"},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindUnknownCategory, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Fantasmas", "el error debe nombrar la categoría sin match")

	list, err := prodUC.List()
	require.NoError(t, err)
	assert.Empty(t, list.Items, "resolución atómica: nada persistido")
}

func TestProductCreate_ResuelveCategoriasSinDistinguirMayusculas(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)

	out, err := prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      decimal.NewFromInt(100),
		Quantity:   10,
		Categories: []string{"teclados"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Teclados"}, out.Categories,
		"la asociación usa la categoría existente, no el nombre tal como llegó")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_MismoNombrePropio_Pasa(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)

	created, err := prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      decimal.NewFromInt(100),
		Quantity:   10,
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)

	// Actualizar con su propio nombre no es colisión.
	out, err := prodUC.Update(created.ID, dto.UpdateProductRequest{
		Name:       "Teclado",
		Price:      decimal.NewFromInt(120),
		Quantity:   8,
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 8, out.Quantity)
}

func TestProductUpdate_Inexistente_RetornaNotFound(t *testing.T) {
	_, prodUC := newCatalog()

	_, err := prodUC.Update("no-existe", dto.UpdateProductRequest{
		Name:       "x",
		Price:      decimal.NewFromInt(1),
		Categories: []string{"y"},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))
}

func TestProductDelete_Inexistente_EsNoOp(t *testing.T) {
	_, prodUC := newCatalog()

	ok, err := prodUC.Delete("no-existe")
	require.NoError(t, err)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockImport
// ──────────────────────────────────────────────────────────────────────────────

func TestStockImport_ProductoNuevo_CreaCategoriasNormalizadas(t *testing.T) {
	catUC, prodUC := newCatalog()

	err := prodUC.StockImport([]dto.StockRecord{{
		Name:       "Teclado",
		Categories: []string{"  Teclados ", "OFICINA"},
		Price:      mustDecimal(t, "99.90"),
		Quantity:   5,
	}})
	require.NoError(t, err)

	categories, err := catUC.List()
	require.NoError(t, err)
	names := make([]string, 0, len(categories.Items))
	for _, c := range categories.Items {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"teclados", "oficina"}, names,
		"las categorías creadas por el import llevan nombre normalizado")

	products, err := prodUC.List()
	require.NoError(t, err)
	require.Len(t, products.Items, 1)
	assert.Equal(t, 5, products.Items[0].Quantity)
	assert.Len(t, products.Items[0].Categories, 2)
}

func TestStockImport_ProductoExistente_SumaCantidadYConservaPrecio(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)
	created, err := prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      decimal.NewFromInt(100),
		Quantity:   10,
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)

	err = prodUC.StockImport([]dto.StockRecord{{
		Name:       "TECLADO", // match sin distinguir mayúsculas
		Categories: []string{"teclados"},
		Price:      mustDecimal(t, "55.55"), // debe ignorarse
		Quantity:   7,
	}})
	require.NoError(t, err)

	out, err := prodUC.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 17, out.Quantity, "la cantidad se suma")
	assert.True(t, out.Price.Equal(decimal.NewFromInt(100)),
		"el precio de un producto existente no se modifica")
	assert.Len(t, out.Categories, 1, "la categoría ya asociada no se duplica")
}

func TestStockImport_DosVeces_NoDuplicaAsociaciones(t *testing.T) {
	_, prodUC := newCatalog()

	rec := dto.StockRecord{
		Name:       "Teclado",
		Categories: []string{"Teclados"},
		Price:      decimal.NewFromInt(100),
		Quantity:   5,
	}
	require.NoError(t, prodUC.StockImport([]dto.StockRecord{rec}))
	require.NoError(t, prodUC.StockImport([]dto.StockRecord{rec}))

	list, err := prodUC.List()
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 10, list.Items[0].Quantity)
	assert.Len(t, list.Items[0].Categories, 1)
}

func TestStockImport_CategoriaRepetidaEnElRegistro_SeCreaUnaVez(t *testing.T) {
	catUC, prodUC := newCatalog()

	err := prodUC.StockImport([]dto.StockRecord{{
		Name:       "Teclado",
		Categories: []string{"Teclados", "TECLADOS", " teclados "},
		Price:      decimal.NewFromInt(100),
		Quantity:   5,
	}})
	require.NoError(t, err)

	categories, err := catUC.List()
	require.NoError(t, err)
	assert.Len(t, categories.Items, 1)
}

func TestStockImport_RegistrosPosterioresVenLoCreadoAntes(t *testing.T) {
	catUC, prodUC := newCatalog()

	err := prodUC.StockImport([]dto.StockRecord{
		{Name: "Teclado", Categories: []string{"Periféricos"}, Price: decimal.NewFromInt(100), Quantity: 5},
		{Name: "Mouse", Categories: []string{"periféricos"}, Price: decimal.NewFromInt(50), Quantity: 3},
	})
	require.NoError(t, err)

	categories, err := catUC.List()
	require.NoError(t, err)
	assert.Len(t, categories.Items, 1,
		"el segundo registro debe reutilizar la categoría creada por el primero")

	products, err := prodUC.List()
	require.NoError(t, err)
	assert.Len(t, products.Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateDiscount
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateDiscount_DosUnidadesConCategoria_Aplica5PorCiento(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)
	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      mustDecimal(t, "100.00"),
		Quantity:   10,
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)

	out, err := prodUC.CalculateDiscount([]dto.CartItem{{ProductName: "teclado", Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, "200.00", out.TotalBeforeDiscount.StringFixed(2))
	assert.Equal(t, "5.00", out.TotalDiscount.StringFixed(2),
		"el descuento se aplica sobre el precio unitario, no sobre la línea")
	assert.Equal(t, "195.00", out.FinalPrice.StringFixed(2))
	require.Len(t, out.Discounts, 1)
	assert.Equal(t, "Teclado", out.Discounts[0].ProductName)
	assert.Equal(t, "5.00", out.Discounts[0].DiscountAmount.StringFixed(2))
}

func TestCalculateDiscount_UnaUnidad_SinDescuento(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)
	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      mustDecimal(t, "100.00"),
		Quantity:   10,
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)

	out, err := prodUC.CalculateDiscount([]dto.CartItem{{ProductName: "Teclado", Quantity: 1}})
	require.NoError(t, err)

	assert.Equal(t, "100.00", out.TotalBeforeDiscount.StringFixed(2))
	assert.Equal(t, "0.00", out.TotalDiscount.StringFixed(2))
	assert.Equal(t, "100.00", out.FinalPrice.StringFixed(2))
	assert.Empty(t, out.Discounts)
}

func TestCalculateDiscount_ProductoDesconocido(t *testing.T) {
	_, prodUC := newCatalog()

	_, err := prodUC.CalculateDiscount([]dto.CartItem{{ProductName: "Fantasma", Quantity: 1}})
	require.Error(t, err)
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Fantasma")
}

func TestCalculateDiscount_StockInsuficiente_NoEscribeNada(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Teclados"})
	require.NoError(t, err)
	created, err := prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      mustDecimal(t, "100.00"),
		Quantity:   3,
		Categories: []string{"Teclados"},
	})
	require.NoError(t, err)

	_, err = prodUC.CalculateDiscount([]dto.CartItem{{ProductName: "Teclado", Quantity: 4}})
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Teclado")

	// Solo lectura: el stock queda intacto.
	out, err := prodUC.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
}

func TestCalculateDiscount_ProductoSinCategorias_NoDescuenta(t *testing.T) {
	_, prodUC := newCatalog()

	// El import crea productos; con categorías vacías queda sin asociaciones.
	err := prodUC.StockImport([]dto.StockRecord{{
		Name:     "Suelto",
		Price:    mustDecimal(t, "10.00"),
		Quantity: 5,
	}})
	require.NoError(t, err)

	out, err := prodUC.CalculateDiscount([]dto.CartItem{{ProductName: "Suelto", Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, "30.00", out.TotalBeforeDiscount.StringFixed(2))
	assert.Equal(t, "0.00", out.TotalDiscount.StringFixed(2))
	assert.Empty(t, out.Discounts)
}

func TestCalculateDiscount_VariasLineas_AcumulaEnOrden(t *testing.T) {
	catUC, prodUC := newCatalog()

	_, err := catUC.Create(dto.CreateCategoryRequest{Name: "Periféricos"})
	require.NoError(t, err)
	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "Teclado",
		Price:      mustDecimal(t, "100.00"),
		Quantity:   10,
		Categories: []string{"Periféricos"},
	})
	require.NoError(t, err)
	_, err = prodUC.Create(dto.CreateProductRequest{
		Name:       "Mouse",
		Price:      mustDecimal(t, "40.50"),
		Quantity:   10,
		Categories: []string{"Periféricos"},
	})
	require.NoError(t, err)

	out, err := prodUC.CalculateDiscount([]dto.CartItem{
		{ProductName: "Mouse", Quantity: 2},
		{ProductName: "Teclado", Quantity: 2},
	})
	require.NoError(t, err)

	// 2×40.50 + 2×100.00 = 281.00; descuentos: 2.03 (redondeo de 2.025) + 5.00
	assert.Equal(t, "281.00", out.TotalBeforeDiscount.StringFixed(2))
	assert.Equal(t, "7.03", out.TotalDiscount.StringFixed(2))
	assert.Equal(t, "273.97", out.FinalPrice.StringFixed(2))
	require.Len(t, out.Discounts, 2)
	assert.Equal(t, "Mouse", out.Discounts[0].ProductName, "conserva el orden del carrito")
	assert.Equal(t, "2.03", out.Discounts[0].DiscountAmount.StringFixed(2),
		"mitades se redondean alejándose de cero")
	assert.Equal(t, "Teclado", out.Discounts[1].ProductName)
}
