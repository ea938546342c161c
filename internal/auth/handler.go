package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	service   *Service
	view      view.Responder
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, responder view.Responder) *Handler {
	return &Handler{
		service:   service,
		view:      responder,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Get("/logout", h.handleLogout)
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if shared.SessionFromContext(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.view.Render(w, r, "pages/login.html", "Masuk", loginPageData{Errors: map[string]string{}}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	errs := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				errs[fieldErr.Field()] = "wajib diisi"
			}
		}
	}

	if len(errs) == 0 {
		err := h.service.Login(r.Context(), sess, form.Username, form.Password)
		switch {
		case err == nil:
			h.view.RedirectWithFlash(w, r, "/", "success", "Login berhasil")
			return
		case errors.Is(err, shared.ErrInvalidCredentials):
			errs["general"] = "Username / password salah"
		default:
			h.view.ServerError(w, r, "login", err)
			return
		}
	}

	form.Password = ""
	h.view.Render(w, r, "pages/login.html", "Masuk", loginPageData{Form: form, Errors: errs}, http.StatusBadRequest)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(shared.SessionFromContext(r.Context()))
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
