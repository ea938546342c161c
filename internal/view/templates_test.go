package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 14.000", FormatRupiah(decimal.NewFromInt(14000)))
	assert.Equal(t, "Rp 0", FormatRupiah(decimal.Zero))
}
