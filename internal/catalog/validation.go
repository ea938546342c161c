package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

var validate = validator.New()

// Parse coerces the raw form into a ProductInput. Missing or unparseable
// fields yield shared.ErrValidation.
func (f ProductForm) Parse() (ProductInput, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.TrimSpace(f.Price)
	f.Stock = strings.TrimSpace(f.Stock)
	if err := validate.Struct(f); err != nil {
		return ProductInput{}, fieldError(err)
	}
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return ProductInput{}, fmt.Errorf("%w: harga tidak valid", shared.ErrValidation)
	}
	stock, err := strconv.Atoi(f.Stock)
	if err != nil {
		return ProductInput{}, fmt.Errorf("%w: stok tidak valid", shared.ErrValidation)
	}
	in := ProductInput{Name: f.Name, Price: price, Stock: stock}
	return in, in.Validate()
}

// Validate checks a typed input against the products columns: a trimmed
// non-empty name, a price in NUMERIC(14,2) and a stock in INTEGER range.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nama produk wajib diisi", shared.ErrValidation)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: harga tidak boleh negatif", shared.ErrValidation)
	}
	if !in.Price.Equal(in.Price.Truncate(2)) {
		return fmt.Errorf("%w: harga maksimal dua angka desimal", shared.ErrValidation)
	}
	if in.Price.GreaterThanOrEqual(shared.MaxAmount) {
		return fmt.Errorf("%w: harga terlalu besar", shared.ErrValidation)
	}
	if err := validate.Struct(in); err != nil {
		return fieldError(err)
	}
	return nil
}

func fieldError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	fe := verrs[0]
	label := map[string]string{"Name": "nama produk", "Price": "harga", "Stock": "stok"}[fe.Field()]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s wajib diisi", shared.ErrValidation, label)
	case "gte":
		return fmt.Errorf("%w: %s tidak boleh negatif", shared.ErrValidation, label)
	case "max":
		return fmt.Errorf("%w: %s terlalu panjang", shared.ErrValidation, label)
	case "lte":
		return fmt.Errorf("%w: %s terlalu besar", shared.ErrValidation, label)
	default:
		return fmt.Errorf("%w: %s tidak valid", shared.ErrValidation, label)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
