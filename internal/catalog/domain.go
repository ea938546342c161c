package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item with its current price and on-hand stock.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name  string          `validate:"required,max=200"`
	Price decimal.Decimal `validate:"-"`
	Stock int             `validate:"gte=0,lte=2147483647"`
}

// ProductForm is the raw form submission before coercion.
type ProductForm struct {
	Name  string `validate:"required"`
	Price string `validate:"required"`
	Stock string `validate:"required"`
}

// ListFilter narrows and orders product listings.
type ListFilter struct {
	Search string
	SortBy string
}

const (
	// SortNewest orders by creation time, newest first.
	SortNewest = "newest"
	// SortName orders alphabetically, as on the POS screen.
	SortName = "name"
)
