package pos

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/catalog"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/webtest"
)

func (s *memoryStore) ListForSale(ctx context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func newPOSRouter(env *webtest.Env, store *memoryStore) http.Handler {
	handler := NewHandler(NewService(store, store, nil), store, env.Responder)
	router := chi.NewRouter()
	router.Route("/pos", handler.MountRoutes)
	return router
}

func TestHandlerAddAndCheckout(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	store := newMemoryStore(catalog.Product{ID: 3, Name: "Kopi", Price: rupiah(2000), Stock: 5})
	router := newPOSRouter(env, store)

	res := env.PostForm(router, "/pos/add", url.Values{"product_id": {"3"}, "qty": {"3"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/pos", res.Header().Get("Location"))
	require.NotNil(t, env.Flash())

	res = env.Get(router, "/pos")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Rp 6.000")

	res = env.PostForm(router, "/pos/checkout", url.Values{"customer_name": {"Budi"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/transactions", res.Header().Get("Location"))
	assert.Empty(t, env.Session.Get(CartSessionKey))
	assert.Equal(t, 2, store.products[3].Stock)
	require.Len(t, store.transactions, 1)
}

func TestHandlerAddDefaultsQtyToOne(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	store := newMemoryStore(catalog.Product{ID: 3, Name: "Kopi", Price: rupiah(2000), Stock: 5})
	router := newPOSRouter(env, store)

	env.PostForm(router, "/pos/add", url.Values{"product_id": {"3"}})
	cart, err := LoadCart(env.Session)
	require.NoError(t, err)
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 1, cart.Lines()[0].Qty)
}

func TestHandlerAddUnknownProduct(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	router := newPOSRouter(env, newMemoryStore())

	res := env.PostForm(router, "/pos/add", url.Values{"product_id": {"9"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	flash := env.Flash()
	require.NotNil(t, flash)
	assert.Equal(t, "danger", flash.Kind)
	assert.Equal(t, "produk #9 tidak ditemukan", flash.Message)
}

func TestHandlerCheckoutEmptyCart(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	store := newMemoryStore()
	router := newPOSRouter(env, store)

	res := env.PostForm(router, "/pos/checkout", url.Values{"customer_name": {"Budi"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/pos", res.Header().Get("Location"))
	flash := env.Flash()
	require.NotNil(t, flash)
	assert.Equal(t, "keranjang kosong", flash.Message)
	assert.Empty(t, store.transactions)
}

func TestHandlerRemove(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	store := newMemoryStore(catalog.Product{ID: 3, Name: "Kopi", Price: rupiah(2000), Stock: 5})
	router := newPOSRouter(env, store)

	env.PostForm(router, "/pos/add", url.Values{"product_id": {"3"}})
	res := env.PostForm(router, "/pos/remove/3", url.Values{})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Empty(t, env.Session.Get(CartSessionKey))

	res = env.PostForm(router, "/pos/remove/3", url.Values{})
	require.Equal(t, http.StatusSeeOther, res.Code)
}

func TestHandlerDiscardsCorruptCart(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	env.Session.Set(CartSessionKey, "{not json")
	router := newPOSRouter(env, newMemoryStore())

	res := env.Get(router, "/pos")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, env.Session.Get(CartSessionKey))
}

func TestHandlerRejectsQtyOutsideColumn(t *testing.T) {
	env := webtest.New(t)
	env.Login("admin")
	store := newMemoryStore(catalog.Product{ID: 3, Name: "Kopi", Price: rupiah(2000), Stock: 5})
	router := newPOSRouter(env, store)

	for _, qty := range []string{"3000000000", "-3000000000"} {
		res := env.PostForm(router, "/pos/add", url.Values{"product_id": {"3"}, "qty": {qty}})
		require.Equal(t, http.StatusSeeOther, res.Code)
		flash := env.Flash()
		require.NotNil(t, flash)
		assert.Equal(t, "danger", flash.Kind)
		assert.Equal(t, "jumlah di luar batas", flash.Message)
	}
	assert.Empty(t, env.Session.Get(CartSessionKey))

	res := env.PostForm(router, "/pos/add", url.Values{"product_id": {"3"}, "qty": {"-2"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	cart, err := LoadCart(env.Session)
	require.NoError(t, err)
	assert.Equal(t, -2, cart.Qty(3))
}
