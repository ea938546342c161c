package customers

import (
	"errors"
	"time"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Customer is a known buyer. Checkout does not reference customers by id; it
// captures whatever name the cashier types.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PhoneOrEmpty returns the phone number or "" when unset.
func (c Customer) PhoneOrEmpty() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}

// CustomerInput carries the editable fields of a customer.
type CustomerInput struct {
	Name  string `validate:"required,max=120"`
	Phone string `validate:"max=50"`
}

func isValidation(err error) bool {
	return errors.Is(err, shared.ErrValidation)
}
