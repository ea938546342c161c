package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-pos/internal/platform/db"
)

// Repository provides the aggregate reads behind the dashboard.
type Repository interface {
	Count(ctx context.Context, table Table) (int64, error)
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// Table names a counted table.
type Table string

const (
	TableProducts     Table = "products"
	TableCustomers    Table = "customers"
	TableTransactions Table = "transactions"
)

// PGRepository implements Repository on PostgreSQL.
type PGRepository struct {
	db db.DBTX
}

// NewRepository constructs a PGRepository.
func NewRepository(conn db.DBTX) *PGRepository {
	return &PGRepository{db: conn}
}

var countQueries = map[Table]string{
	TableProducts:     `SELECT COUNT(*) FROM products`,
	TableCustomers:    `SELECT COUNT(*) FROM customers`,
	TableTransactions: `SELECT COUNT(*) FROM transactions`,
}

// Count returns the row count of table.
func (r *PGRepository) Count(ctx context.Context, table Table) (int64, error) {
	query, ok := countQueries[table]
	if !ok {
		return 0, fmt.Errorf("dashboard: unknown table %q", table)
	}
	var n int64
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard: count %s: %w", table, err)
	}
	return n, nil
}

// Revenue sums transaction totals with from <= created_at < to.
func (r *PGRepository) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM transactions WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dashboard: revenue: %w", err)
	}
	return total, nil
}
