package shared

import "github.com/shopspring/decimal"

// MaxAmount is the first money value that no longer fits NUMERIC(14,2).
var MaxAmount = decimal.New(1, 12)
