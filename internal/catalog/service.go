package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Service wraps product business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all products newest first, or those whose name contains q
// (case-insensitive) when q is non-empty.
func (s *Service) List(ctx context.Context, q string) ([]Product, error) {
	return s.repo.List(ctx, ListFilter{Search: strings.TrimSpace(q), SortBy: SortNewest})
}

// ListForSale returns every product ordered by name for the POS screen.
func (s *Service) ListForSale(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx, ListFilter{SortBy: SortName})
}

// Get fetches one product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
	}
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, in)
}

// Update validates and overwrites an existing product.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete hard-deletes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("produk #%d: %w", id, shared.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}
