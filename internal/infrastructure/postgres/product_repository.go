package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jortega/catalogo-api/internal/domain"
	"github.com/jortega/catalogo-api/internal/domain/entity"
	"github.com/jortega/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Carga siempre el conjunto de categorías asociadas.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// List devuelve todos los productos con sus categorías.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	ctx := context.Background()
	query := `
		SELECT id, name, description, price, quantity, created_at, updated_at
		FROM products ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	byID := make(map[string]*entity.Product)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID devuelve el producto con sus categorías, o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	ctx := context.Background()
	query := `
		SELECT id, name, description, price, quantity, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.attachCategories(ctx, map[string]*entity.Product{p.ID: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste el producto y sus asociaciones en una transacción.
func (r *ProductRepo) Create(product *entity.Product) error {
	ctx := context.Background()
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO products (id, name, description, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProduct()
		}
		return fmt.Errorf("insert product: %w", err)
	}
	if err := insertAssociations(ctx, tx, product.ID, product.Categories); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Update reemplaza datos y asociaciones del producto identificado por old,
// en una transacción para que fila y join queden consistentes.
func (r *ProductRepo) Update(old, updated *entity.Product) error {
	ctx := context.Background()
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE products SET name = $2, description = $3, price = $4, quantity = $5, updated_at = $6
		WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		old.ID, updated.Name, updated.Description, updated.Price, updated.Quantity, updated.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProduct()
		}
		return fmt.Errorf("update product: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, old.ID); err != nil {
		return fmt.Errorf("clear associations: %w", err)
	}
	if err := insertAssociations(ctx, tx, old.ID, updated.Categories); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete elimina el producto (las asociaciones caen en cascada); false si no existía.
func (r *ProductRepo) Delete(product *entity.Product) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, product.ID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// attachCategories carga las categorías asociadas de los productos dados
// (una sola consulta con join).
func (r *ProductRepo) attachCategories(ctx context.Context, byID map[string]*entity.Product) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := `
		SELECT pc.product_id, c.id, c.name, c.description, c.created_at, c.updated_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load product categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var c entity.Category
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return fmt.Errorf("scan product category: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return rows.Err()
}

// insertAssociations inserta las filas de la tabla de unión.
func insertAssociations(ctx context.Context, tx pgx.Tx, productID string, categories []entity.Category) error {
	for _, c := range categories {
		_, err := tx.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			productID, c.ID,
		)
		if err != nil {
			return fmt.Errorf("insert association: %w", err)
		}
	}
	return nil
}
