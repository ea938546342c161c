package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Service provides customer CRUD.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// List returns all customers, newest first.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

// Get returns the customer with id or shared.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a customer. Name is required, phone is free text.
func (s *Service) Create(ctx context.Context, in CustomerInput) (*Customer, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// Update replaces the customer's name and phone.
func (s *Service) Update(ctx context.Context, id int64, in CustomerInput) (*Customer, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes the customer; past transactions keep their captured name.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) normalize(in CustomerInput) (CustomerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return in, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		switch fe := verrs[0]; {
		case fe.Field() == "Phone":
			return in, fmt.Errorf("%w: nomor telepon terlalu panjang", shared.ErrValidation)
		case fe.Tag() == "max":
			return in, fmt.Errorf("%w: nama pelanggan terlalu panjang", shared.ErrValidation)
		default:
			return in, fmt.Errorf("%w: nama pelanggan wajib diisi", shared.ErrValidation)
		}
	}
	return in, nil
}
