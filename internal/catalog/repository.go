package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/platform/db"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Repository defines persistence operations for products.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, in ProductInput) (Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.DBTX
}

// NewRepository constructs a PostgreSQL repository over a pool or transaction.
func NewRepository(conn db.DBTX) *PGRepository {
	return &PGRepository{db: conn}
}

const productColumns = `id, name, price, stock, created_at`

// List returns products matching filter. Search is a case-insensitive
// substring match on name.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter.Search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, filter.Search)
	}
	query += ` ORDER BY ` + sortOrder(filter.SortBy)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Get fetches a product by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, notFound(id)
		}
		return Product{}, fmt.Errorf("catalog: get product %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a product and returns the stored row.
func (r *PGRepository) Create(ctx context.Context, in ProductInput) (Product, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO products (name, price, stock) VALUES ($1, $2, $3) RETURNING `+productColumns, in.Name, in.Price, in.Stock)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	return p, nil
}

// Update overwrites name, price and stock.
func (r *PGRepository) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	row := r.db.QueryRow(ctx, `UPDATE products SET name = $1, price = $2, stock = $3 WHERE id = $4 RETURNING `+productColumns, in.Name, in.Price, in.Stock, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, notFound(id)
		}
		return Product{}, fmt.Errorf("catalog: update product %d: %w", id, err)
	}
	return p, nil
}

// Delete removes a product. Past transaction items keep their own copies of
// name and price, so no reference check is made.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt)
	return p, err
}

func notFound(id int64) error {
	return fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
}

func sortOrder(sortBy string) string {
	switch sortBy {
	case SortName:
		return "name ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

var _ Repository = (*PGRepository)(nil)
