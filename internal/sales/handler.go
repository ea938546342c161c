package sales

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// Handler serves the transaction history screens.
type Handler struct {
	service *Service
	view    view.Responder
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, responder view.Responder) *Handler {
	return &Handler{service: service, view: responder}
}

// MountRoutes registers history routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.detail)
	r.Post("/delete/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.List(r.Context())
	if err != nil {
		h.view.ServerError(w, r, "list transactions", err)
		return
	}
	h.view.Render(w, r, "pages/transactions.html", "Transaksi", map[string]any{
		"Transactions": transactions,
	}, http.StatusOK)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	tr, err := h.service.Detail(r.Context(), id)
	if err != nil {
		h.fail(w, r, "transaction detail", err)
		return
	}
	h.view.Render(w, r, "pages/transaction_detail.html", "Detail Transaksi", map[string]any{
		"Transaction": tr,
	}, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete transaction", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/transactions", "success", "Transaksi berhasil dihapus")
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if shared.IsUserError(err) {
		h.view.RedirectWithFlash(w, r, "/transactions", "danger", shared.UserMessage(err))
		return
	}
	h.view.ServerError(w, r, msg, err)
}
