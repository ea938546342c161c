package pos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/catalog"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// ProductLister lists the products offered on the POS screen.
type ProductLister interface {
	ListForSale(ctx context.Context) ([]catalog.Product, error)
}

// Handler serves the POS screen and its cart actions.
type Handler struct {
	service  *Service
	products ProductLister
	view     view.Responder
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, products ProductLister, responder view.Responder) *Handler {
	return &Handler{service: service, products: products, view: responder}
}

// MountRoutes registers POS routes. Every route sees the session cart
// through CartFromContext.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.withCart)
	r.Get("/", h.index)
	r.Post("/add", h.add)
	r.Post("/remove/{id}", h.remove)
	r.Post("/checkout", h.checkout)
}

type posPage struct {
	Products []catalog.Product
	Lines    []CartLine
	Total    string
}

// withCart loads the session cart into the request context. An undecodable
// cart is discarded.
func (h *Handler) withCart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		cart, err := LoadCart(sess)
		if err != nil {
			if h.view.Logger != nil {
				h.view.Logger.Warn("discard session cart", "error", err)
			}
			sess.Delete(CartSessionKey)
			cart = NewCart()
		}
		next.ServeHTTP(w, r.WithContext(ContextWithCart(r.Context(), cart)))
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListForSale(r.Context())
	if err != nil {
		h.view.ServerError(w, r, "list products for sale", err)
		return
	}
	cart := CartFromContext(r.Context())
	h.view.Render(w, r, "pages/pos.html", "Kasir", posPage{
		Products: products,
		Lines:    cart.Lines(),
		Total:    view.FormatRupiah(cart.Total()),
	}, http.StatusOK)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	cart := CartFromContext(r.Context())
	productID, err := parseID(r.PostFormValue("product_id"), "produk")
	if err != nil {
		h.fail(w, r, "add to cart", err)
		return
	}
	qty, err := parseQty(r.PostFormValue("qty"))
	if err != nil {
		h.fail(w, r, "add to cart", err)
		return
	}
	product, err := h.service.AddToCart(r.Context(), cart, productID, qty)
	if err != nil {
		h.fail(w, r, "add to cart", err)
		return
	}
	if !h.save(w, r, cart) {
		return
	}
	h.view.RedirectWithFlash(w, r, "/pos", "success", product.Name+" ditambahkan ke keranjang")
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	cart := CartFromContext(r.Context())
	if id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		h.service.RemoveFromCart(cart, id)
	}
	if !h.save(w, r, cart) {
		return
	}
	http.Redirect(w, r, "/pos", http.StatusSeeOther)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	cart := CartFromContext(r.Context())
	tr, err := h.service.Checkout(r.Context(), cart, r.PostFormValue("customer_name"))
	if err != nil {
		h.fail(w, r, "checkout", err)
		return
	}
	if !h.save(w, r, cart) {
		return
	}
	h.view.RedirectWithFlash(w, r, "/transactions", "success",
		fmt.Sprintf("Transaksi #%d berhasil disimpan", tr.ID))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, cart *Cart) bool {
	if err := SaveCart(shared.SessionFromContext(r.Context()), cart); err != nil {
		h.view.ServerError(w, r, "save cart", err)
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if shared.IsUserError(err) {
		h.view.RedirectWithFlash(w, r, "/pos", "danger", shared.UserMessage(err))
		return
	}
	h.view.ServerError(w, r, msg, err)
}

func parseID(raw, label string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s tidak valid", shared.ErrValidation, label)
	}
	return id, nil
}

// parseQty defaults a missing quantity to one and keeps it within the
// INTEGER column.
func parseQty(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	qty, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: jumlah di luar batas", shared.ErrValidation)
		}
		return 0, fmt.Errorf("%w: jumlah tidak valid", shared.ErrValidation)
	}
	return int(qty), nil
}
