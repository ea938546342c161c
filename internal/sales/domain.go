package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a completed sale. The customer name is captured text, not a
// reference to a customer row.
type Transaction struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []Item          `json:"items,omitempty"`
}

// Item is one line of a transaction. Name and price are copied from the
// product at sale time and never follow later product edits.
type Item struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transaction_id"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	Qty           int             `json:"qty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// ItemsTotal sums the item subtotals.
func (t Transaction) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// LineSubtotal is price × qty.
func LineSubtotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}
