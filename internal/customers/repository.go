package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/odyssey-erp/odyssey-pos/internal/platform/db"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Repository defines persistence operations for customers.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, in CustomerInput) (*Customer, error)
	Update(ctx context.Context, id int64, in CustomerInput) (*Customer, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository constructs a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone, created_at FROM customers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("customers: list: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("customers: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT id, name, phone, created_at FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("customers: get %d: %w", id, err)
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, in CustomerInput) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx,
		`INSERT INTO customers (name, phone) VALUES ($1, $2) RETURNING id, name, phone, created_at`,
		in.Name, phoneParam(in.Phone)))
	if err != nil {
		return nil, fmt.Errorf("customers: create: %w", err)
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id int64, in CustomerInput) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx,
		`UPDATE customers SET name = $1, phone = $2 WHERE id = $3 RETURNING id, name, phone, created_at`,
		in.Name, phoneParam(in.Phone), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("customers: update %d: %w", id, err)
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("customers: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var (
		c     Customer
		phone pgtype.Text
	)
	if err := row.Scan(&c.ID, &c.Name, &phone, &c.CreatedAt); err != nil {
		return Customer{}, err
	}
	if phone.Valid {
		val := phone.String
		c.Phone = &val
	}
	return c, nil
}

func phoneParam(phone string) pgtype.Text {
	return pgtype.Text{String: phone, Valid: phone != ""}
}

func notFound(id int64) error {
	return fmt.Errorf("pelanggan #%d: %w", id, shared.ErrNotFound)
}
