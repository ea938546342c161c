package catalog

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/testing/webtest"
)

func newTestRouter(t *testing.T) (http.Handler, *memoryRepo, *webtest.Env) {
	t.Helper()
	env := webtest.New(t)
	repo := newMemoryRepo()
	h := NewHandler(NewService(repo), env.Responder)
	r := chi.NewRouter()
	r.Route("/products", h.MountRoutes)
	return r, repo, env
}

func TestListRendersProducts(t *testing.T) {
	router, repo, env := newTestRouter(t)
	_, err := repo.Create(context.Background(), ProductInput{Name: "Indomie Goreng", Price: decimal.NewFromInt(3500), Stock: 50})
	require.NoError(t, err)

	res := env.Get(router, "/products?q=indomie")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Indomie Goreng")
	assert.Contains(t, res.Body.String(), "Rp 3.500")
}

func TestCreateRedirectsWithFlash(t *testing.T) {
	router, repo, env := newTestRouter(t)

	res := env.PostForm(router, "/products/add", url.Values{"name": {"Kopi"}, "price": {"2000"}, "stock": {"5"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/products", res.Header().Get("Location"))
	require.Len(t, repo.products, 1)

	flash := env.Flash()
	require.NotNil(t, flash)
	assert.Equal(t, "success", flash.Kind)
}

func TestCreateInvalidRerendersForm(t *testing.T) {
	router, repo, env := newTestRouter(t)

	res := env.PostForm(router, "/products/add", url.Values{"name": {"Kopi"}, "price": {"murah"}, "stock": {"5"}})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "harga tidak valid")
	assert.Empty(t, repo.products)
}

func TestEditMissingProductFlashesNotFound(t *testing.T) {
	router, _, env := newTestRouter(t)

	res := env.PostForm(router, "/products/edit/99", url.Values{"name": {"X"}, "price": {"1"}, "stock": {"1"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	flash := env.Flash()
	require.NotNil(t, flash)
	assert.Equal(t, "danger", flash.Kind)
}

func TestDeleteRemovesProduct(t *testing.T) {
	router, repo, env := newTestRouter(t)
	p, err := repo.Create(context.Background(), ProductInput{Name: "Teh", Price: decimal.NewFromInt(1000), Stock: 1})
	require.NoError(t, err)

	res := env.PostForm(router, "/products/delete/1", url.Values{})
	require.Equal(t, http.StatusSeeOther, res.Code)
	_, ok := repo.products[p.ID]
	assert.False(t, ok)
}
