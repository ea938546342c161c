package sales

import (
	"context"
	"fmt"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Service exposes transaction history.
type Service struct {
	repo Repository
}

// NewService constructs a history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every transaction, newest first.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.List(ctx)
}

// Detail returns a transaction and its items.
func (s *Service) Detail(ctx context.Context, id int64) (*Transaction, error) {
	if id <= 0 {
		return nil, fmt.Errorf("transaksi #%d: %w", id, shared.ErrNotFound)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a transaction and its items. Stock sold by it stays
// decremented; sales are not reversed by deleting their record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("transaksi #%d: %w", id, shared.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}
