package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is the landing page overview.
type Summary struct {
	Products     int64
	Customers    int64
	Transactions int64
	RevenueToday decimal.Decimal
	Date         time.Time
}

// dayBounds returns the start of t's calendar day and the start of the next,
// both in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
