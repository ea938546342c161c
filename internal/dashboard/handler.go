package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// Handler serves the dashboard.
type Handler struct {
	service *Service
	view    view.Responder
	now     func() time.Time
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, responder view.Responder) *Handler {
	return &Handler{service: service, view: responder, now: time.Now}
}

// MountRoutes registers the dashboard route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.index)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), h.now())
	if err != nil {
		h.view.ServerError(w, r, "dashboard summary", err)
		return
	}
	h.view.Render(w, r, "pages/dashboard.html", "Dashboard", summary, http.StatusOK)
}
