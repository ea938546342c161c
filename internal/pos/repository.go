package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odyssey-erp/odyssey-pos/internal/catalog"
	"github.com/odyssey-erp/odyssey-pos/internal/platform/db"
	"github.com/odyssey-erp/odyssey-pos/internal/sales"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// PostgreSQL error codes raised when a concurrent checkout touched the same rows.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// PGStore runs checkouts in a repeatable-read PostgreSQL transaction.
type PGStore struct {
	db db.TxBeginner
}

// NewStore constructs a PGStore.
func NewStore(conn db.TxBeginner) *PGStore {
	return &PGStore{db: conn}
}

// Checkout executes fn inside one database transaction.
func (s *PGStore) Checkout(ctx context.Context, fn func(tx CheckoutTx) error) error {
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(&pgCheckoutTx{PGRepository: sales.NewRepository(tx), tx: tx})
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected) {
		return fmt.Errorf("%w: stok sedang diperbarui transaksi lain, silakan coba lagi", shared.ErrConflict)
	}
	return err
}

type pgCheckoutTx struct {
	*sales.PGRepository
	tx pgx.Tx
}

func (t *pgCheckoutTx) LockProduct(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	err := t.tx.QueryRow(ctx, `SELECT id, name, price, stock, created_at FROM products WHERE id = $1 FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
		}
		return catalog.Product{}, fmt.Errorf("pos: lock product %d: %w", id, err)
	}
	return p, nil
}

func (t *pgCheckoutTx) SetStock(ctx context.Context, id int64, stock int) error {
	if _, err := t.tx.Exec(ctx, `UPDATE products SET stock = $1 WHERE id = $2`, stock, id); err != nil {
		return fmt.Errorf("pos: set stock %d: %w", id, err)
	}
	return nil
}

var _ Store = (*PGStore)(nil)
