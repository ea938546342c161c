package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-pos/internal/platform/db"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Repository provides read and delete access to recorded transactions.
type Repository interface {
	List(ctx context.Context) ([]Transaction, error)
	Get(ctx context.Context, id int64) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// Writer inserts transactions and their items. Checkout drives it inside a
// database transaction.
type Writer interface {
	InsertTransaction(ctx context.Context, customerName string, total decimal.Decimal, at time.Time) (int64, error)
	InsertItem(ctx context.Context, item Item) (int64, error)
	SetTotal(ctx context.Context, id int64, total decimal.Decimal) error
}

// PGRepository implements Repository and Writer on PostgreSQL.
type PGRepository struct {
	db db.DBTX
}

// NewRepository constructs a repository over a pool or a pgx.Tx.
func NewRepository(conn db.DBTX) *PGRepository {
	return &PGRepository{db: conn}
}

// List returns transactions newest first, without items.
func (r *PGRepository) List(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT id, customer_name, total, created_at FROM transactions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sales: list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.CustomerName, &t.Total, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("sales: scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get returns a transaction with its items.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Transaction, error) {
	var t Transaction
	err := r.db.QueryRow(ctx, `SELECT id, customer_name, total, created_at FROM transactions WHERE id = $1`, id).
		Scan(&t.ID, &t.CustomerName, &t.Total, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("sales: get transaction %d: %w", id, err)
	}

	rows, err := r.db.Query(ctx, `SELECT id, transaction_id, product_name, price, qty, subtotal FROM transaction_items WHERE transaction_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("sales: list items %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductName, &item.Price, &item.Qty, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("sales: scan item: %w", err)
		}
		t.Items = append(t.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a transaction; its items go with it through ON DELETE CASCADE.
// Product stock is not touched.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sales: delete transaction %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

// InsertTransaction stores the transaction header and returns its id.
func (r *PGRepository) InsertTransaction(ctx context.Context, customerName string, total decimal.Decimal, at time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO transactions (customer_name, total, created_at) VALUES ($1, $2, $3) RETURNING id`, customerName, total, at).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("sales: insert transaction: %w", err)
	}
	return id, nil
}

// InsertItem stores one line; item.TransactionID must already exist.
func (r *PGRepository) InsertItem(ctx context.Context, item Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO transaction_items (transaction_id, product_name, price, qty, subtotal) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		item.TransactionID, item.ProductName, item.Price, item.Qty, item.Subtotal).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("sales: insert item: %w", err)
	}
	return id, nil
}

// SetTotal overwrites the stored total.
func (r *PGRepository) SetTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	if _, err := r.db.Exec(ctx, `UPDATE transactions SET total = $1 WHERE id = $2`, total, id); err != nil {
		return fmt.Errorf("sales: set total %d: %w", id, err)
	}
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("transaksi #%d: %w", id, shared.ErrNotFound)
}

var (
	_ Repository = (*PGRepository)(nil)
	_ Writer     = (*PGRepository)(nil)
)
