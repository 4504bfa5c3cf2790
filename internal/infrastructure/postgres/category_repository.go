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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). List y GetByID cargan los productos asociados.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// List devuelve todas las categorías con sus productos asociados.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	byID := make(map[string]*entity.Category)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachProducts(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID devuelve la categoría con sus productos, o (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	ctx := context.Background()
	var c entity.Category
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM categories WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	if err := r.attachProducts(ctx, map[string]*entity.Category{c.ID: &c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCategory()
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Update sobreescribe nombre y descripción de la categoría identificada por old.
func (r *CategoryRepo) Update(old, updated *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		old.ID, updated.Name, updated.Description, updated.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCategory()
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina la categoría (las asociaciones caen en cascada); false si no existía.
func (r *CategoryRepo) Delete(category *entity.Category) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, category.ID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// attachProducts carga los productos asociados de las categorías dadas,
// cada uno con los nombres de sus propias categorías (dos consultas).
func (r *CategoryRepo) attachProducts(ctx context.Context, byID map[string]*entity.Category) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := `
		SELECT pc.category_id, p.id, p.name, p.description, p.price, p.quantity, p.created_at, p.updated_at
		FROM product_categories pc
		JOIN products p ON p.id = pc.product_id
		WHERE pc.category_id = ANY($1)
		ORDER BY p.created_at`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load category products: %w", err)
	}
	defer rows.Close()
	type pair struct {
		categoryID string
		product    *entity.Product
	}
	var pairs []pair
	productByID := make(map[string]*entity.Product)
	for rows.Next() {
		var categoryID string
		var p entity.Product
		if err := rows.Scan(&categoryID, &p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("scan category product: %w", err)
		}
		prod := productByID[p.ID]
		if prod == nil {
			cp := p
			prod = &cp
			productByID[p.ID] = prod
		}
		pairs = append(pairs, pair{categoryID: categoryID, product: prod})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Segundo join: categorías de los productos encontrados, para que cada
	// producto salga con su conjunto completo de nombres.
	pr := &ProductRepo{q: r.q}
	if err := pr.attachCategories(ctx, productByID); err != nil {
		return err
	}

	for _, pp := range pairs {
		if c, ok := byID[pp.categoryID]; ok {
			c.Products = append(c.Products, *pp.product)
		}
	}
	return nil
}
