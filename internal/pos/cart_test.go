package pos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/testing/webtest"
)

func TestCartLinesSortedByName(t *testing.T) {
	cart := NewCart()
	cart.Add(3, "Kopi", rupiah(2000), 1)
	cart.Add(1, "Indomie Goreng", rupiah(3500), 2)
	cart.Add(2, "Gula Pasir 1kg", rupiah(14000), 1)

	lines := cart.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Gula Pasir 1kg", "Indomie Goreng", "Kopi"}, []string{lines[0].Name, lines[1].Name, lines[2].Name})
	assert.True(t, lines[1].Subtotal().Equal(rupiah(7000)))
	assert.True(t, cart.Total().Equal(rupiah(23000)))

	byID := cart.linesByProductID()
	assert.Equal(t, int64(1), byID[0].ProductID)
	assert.Equal(t, int64(3), byID[2].ProductID)
}

func TestCartAcceptsAnyQuantity(t *testing.T) {
	cart := NewCart()
	cart.Add(1, "Kopi", rupiah(2000), 0)
	cart.Add(2, "Gula", rupiah(14000), -1)
	assert.Equal(t, 2, cart.Len())
	assert.True(t, cart.Total().Equal(rupiah(-14000)))
}

func TestCartSessionRoundTrip(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")

	cart := NewCart()
	cart.Add(3, "Kopi", rupiah(2000), 3)
	require.NoError(t, SaveCart(env.Session, cart))

	loaded, err := LoadCart(env.Session)
	require.NoError(t, err)
	lines := loaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Qty)
	assert.True(t, lines[0].Price.Equal(rupiah(2000)))

	loaded.Clear()
	require.NoError(t, SaveCart(env.Session, loaded))
	assert.Empty(t, env.Session.Get(CartSessionKey))
}

func TestLoadCartRejectsGarbage(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	env.Session.Set(CartSessionKey, "{not json")

	_, err := LoadCart(env.Session)
	require.Error(t, err)
}

func TestCartContext(t *testing.T) {
	assert.Nil(t, CartFromContext(context.Background()))
	cart := NewCart()
	ctx := ContextWithCart(context.Background(), cart)
	assert.Same(t, cart, CartFromContext(ctx))
}
