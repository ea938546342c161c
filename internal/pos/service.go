package pos

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-pos/internal/catalog"
	"github.com/odyssey-erp/odyssey-pos/internal/sales"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

var validate = validator.New()

// ProductFinder looks up a product by id. *catalog.Service satisfies it.
type ProductFinder interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

// CheckoutTx is the write surface available inside a checkout.
type CheckoutTx interface {
	sales.Writer
	// LockProduct re-reads the live product row and holds it until commit.
	LockProduct(ctx context.Context, id int64) (catalog.Product, error)
	SetStock(ctx context.Context, id int64, stock int) error
}

// Store runs fn atomically: every write fn makes is committed together or not at all.
type Store interface {
	Checkout(ctx context.Context, fn func(tx CheckoutTx) error) error
}

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	CustomerName string `validate:"required,max=200"`
}

// Service implements the cart operations and checkout.
type Service struct {
	products ProductFinder
	store    Store
	metrics  *Metrics
	now      func() time.Time
}

// NewService constructs the POS service. metrics may be nil.
func NewService(products ProductFinder, store Store, metrics *Metrics) *Service {
	return &Service{products: products, store: store, metrics: metrics, now: time.Now}
}

// AddToCart adds qty of the product to cart. The product must exist; qty is
// taken as given as long as the line stays within INTEGER range.
func (s *Service) AddToCart(ctx context.Context, cart *Cart, productID int64, qty int) (catalog.Product, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return catalog.Product{}, err
	}
	if total := int64(cart.Qty(product.ID)) + int64(qty); total > math.MaxInt32 || total < math.MinInt32 {
		return catalog.Product{}, fmt.Errorf("%w: jumlah di luar batas", shared.ErrValidation)
	}
	cart.Add(product.ID, product.Name, product.Price, qty)
	return product, nil
}

// RemoveFromCart drops the product from cart.
func (s *Service) RemoveFromCart(cart *Cart, productID int64) {
	cart.Remove(productID)
}

// Checkout turns cart into a persisted transaction. Each item takes the live
// product name and price, stock is decremented and clamped at zero, and the
// stored total equals the sum of item subtotals. The cart is cleared only
// once the database transaction commits.
func (s *Service) Checkout(ctx context.Context, cart *Cart, customerName string) (*sales.Transaction, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, fmt.Errorf("%w: keranjang kosong", shared.ErrValidation)
	}
	in := CheckoutInput{CustomerName: strings.TrimSpace(customerName)}
	if err := validate.Struct(in); err != nil {
		return nil, checkoutError(err)
	}

	var result *sales.Transaction
	err := s.store.Checkout(ctx, func(tx CheckoutTx) error {
		tr, err := s.record(ctx, tx, cart, in.CustomerName)
		if err != nil {
			return err
		}
		result = tr
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	cart.Clear()
	s.metrics.observe(result.Total)
	return result, nil
}

func (s *Service) record(ctx context.Context, tx CheckoutTx, cart *Cart, customerName string) (*sales.Transaction, error) {
	tr := &sales.Transaction{
		CustomerName: customerName,
		Total:        cart.Total(),
		CreatedAt:    s.now(),
	}
	id, err := tx.InsertTransaction(ctx, tr.CustomerName, tr.Total, tr.CreatedAt)
	if err != nil {
		return nil, err
	}
	tr.ID = id

	for _, line := range cart.linesByProductID() {
		product, err := tx.LockProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		item := sales.Item{
			TransactionID: id,
			ProductName:   product.Name,
			Price:         product.Price,
			Qty:           line.Qty,
			Subtotal:      sales.LineSubtotal(product.Price, line.Qty),
		}
		if item.Subtotal.Abs().GreaterThanOrEqual(shared.MaxAmount) {
			return nil, fmt.Errorf("%w: subtotal %s terlalu besar", shared.ErrValidation, product.Name)
		}
		if item.ID, err = tx.InsertItem(ctx, item); err != nil {
			return nil, err
		}
		if err := tx.SetStock(ctx, product.ID, clampStock(product.Stock, line.Qty)); err != nil {
			return nil, err
		}
		tr.Items = append(tr.Items, item)
	}

	// Prices may have moved since the lines were added.
	total := tr.ItemsTotal()
	if total.Abs().GreaterThanOrEqual(shared.MaxAmount) {
		return nil, fmt.Errorf("%w: total transaksi terlalu besar", shared.ErrValidation)
	}
	if !total.Equal(tr.Total) {
		if err := tx.SetTotal(ctx, id, total); err != nil {
			return nil, err
		}
		tr.Total = total
	}
	return tr, nil
}

// clampStock returns stock less qty, never below zero.
func clampStock(stock, qty int) int {
	remaining := stock - qty
	if remaining < 0 {
		return 0
	}
	return remaining
}

func checkoutError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	if verrs[0].Tag() == "max" {
		return fmt.Errorf("%w: nama pelanggan terlalu panjang", shared.ErrValidation)
	}
	return fmt.Errorf("%w: nama pelanggan wajib diisi", shared.ErrValidation)
}
