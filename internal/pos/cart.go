package pos

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-pos/internal/sales"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// CartSessionKey is the session value holding the JSON-encoded cart.
const CartSessionKey = "cart"

// cartEntry is the stored shape of one cart line. Name and price are a
// snapshot taken when the product was first added.
type cartEntry struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// CartLine is a cart entry as shown on the POS screen.
type CartLine struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Qty       int
}

// Subtotal is price × qty.
func (l CartLine) Subtotal() decimal.Decimal {
	return sales.LineSubtotal(l.Price, l.Qty)
}

// Cart is the pending sale of one session, keyed by product id.
type Cart struct {
	entries map[string]cartEntry
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{entries: make(map[string]cartEntry)}
}

// Add puts qty of a product in the cart. An existing line only has its
// quantity increased; the snapshot name and price are kept.
func (c *Cart) Add(productID int64, name string, price decimal.Decimal, qty int) {
	key := strconv.FormatInt(productID, 10)
	if entry, ok := c.entries[key]; ok {
		entry.Qty += qty
		c.entries[key] = entry
		return
	}
	c.entries[key] = cartEntry{Name: name, Price: price, Qty: qty}
}

// Qty returns the quantity held for productID, zero when absent.
func (c *Cart) Qty(productID int64) int {
	return c.entries[strconv.FormatInt(productID, 10)].Qty
}

// Remove drops the line for productID. Missing lines are ignored.
func (c *Cart) Remove(productID int64) {
	delete(c.entries, strconv.FormatInt(productID, 10))
}

// Lines returns the cart lines sorted by name, then product id.
func (c *Cart) Lines() []CartLine {
	lines := c.lines()
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

// linesByProductID returns the lines in ascending product id order, the order
// in which checkout locks product rows.
func (c *Cart) linesByProductID() []CartLine {
	lines := c.lines()
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

func (c *Cart) lines() []CartLine {
	lines := make([]CartLine, 0, len(c.entries))
	for key, entry := range c.entries {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		lines = append(lines, CartLine{ProductID: id, Name: entry.Name, Price: entry.Price, Qty: entry.Qty})
	}
	return lines
}

// Total sums snapshot price × qty over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range c.entries {
		total = total.Add(sales.LineSubtotal(entry.Price, entry.Qty))
	}
	return total
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.entries = make(map[string]cartEntry)
}

// LoadCart decodes the cart stored in sess. A missing value yields an empty cart.
func LoadCart(sess *shared.Session) (*Cart, error) {
	cart := NewCart()
	if sess == nil {
		return cart, nil
	}
	raw := sess.Get(CartSessionKey)
	if raw == "" {
		return cart, nil
	}
	if err := json.Unmarshal([]byte(raw), &cart.entries); err != nil {
		return nil, fmt.Errorf("pos: decode cart: %w", err)
	}
	if cart.entries == nil {
		cart.entries = make(map[string]cartEntry)
	}
	return cart, nil
}

// SaveCart writes cart back into sess. An empty cart removes the value.
func SaveCart(sess *shared.Session, cart *Cart) error {
	if sess == nil {
		return nil
	}
	if cart == nil || cart.IsEmpty() {
		sess.Delete(CartSessionKey)
		return nil
	}
	data, err := json.Marshal(cart.entries)
	if err != nil {
		return fmt.Errorf("pos: encode cart: %w", err)
	}
	sess.Set(CartSessionKey, string(data))
	return nil
}

type cartContextKey struct{}

// ContextWithCart stores cart in ctx.
func ContextWithCart(ctx context.Context, cart *Cart) context.Context {
	return context.WithValue(ctx, cartContextKey{}, cart)
}

// CartFromContext returns the cart carried by ctx, or nil.
func CartFromContext(ctx context.Context) *Cart {
	cart, _ := ctx.Value(cartContextKey{}).(*Cart)
	return cart
}
