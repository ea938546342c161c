package customers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

type Handler struct {
	service *Service
	view    view.Responder
}

func NewHandler(service *Service, responder view.Responder) *Handler {
	return &Handler{service: service, view: responder}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/add", h.ShowForm)
	r.Post("/add", h.Create)
	r.Get("/edit/{id}", h.ShowEditForm)
	r.Post("/edit/{id}", h.Update)
	r.Post("/delete/{id}", h.Delete)
}

type formErrors map[string]string

type formPage struct {
	Action string
	Target string
	Input  CustomerInput
	Errors formErrors
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		h.view.ServerError(w, r, "list customers", err)
		return
	}
	h.view.Render(w, r, "pages/customers.html", "Pelanggan", map[string]any{
		"Customers": customers,
	}, http.StatusOK)
}

func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/customer_form.html", "Tambah Pelanggan", formPage{
		Action: "Tambah",
		Target: "/customers/add",
		Errors: formErrors{},
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := inputFromRequest(r)
	if _, err := h.service.Create(r.Context(), in); err != nil {
		h.formError(w, r, formPage{Action: "Tambah", Target: "/customers/add", Input: in}, err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/customers", "success", "Pelanggan ditambahkan")
}

func (h *Handler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.view.RedirectWithFlash(w, r, "/customers", "danger", "Pelanggan tidak ditemukan")
		return
	}
	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get customer", err)
		return
	}
	h.view.Render(w, r, "pages/customer_form.html", "Edit Pelanggan", formPage{
		Action: "Edit",
		Target: "/customers/edit/" + strconv.FormatInt(id, 10),
		Input:  CustomerInput{Name: customer.Name, Phone: customer.PhoneOrEmpty()},
		Errors: formErrors{},
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.view.RedirectWithFlash(w, r, "/customers", "danger", "Pelanggan tidak ditemukan")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := inputFromRequest(r)
	if _, err := h.service.Update(r.Context(), id, in); err != nil {
		page := formPage{Action: "Edit", Target: "/customers/edit/" + strconv.FormatInt(id, 10), Input: in}
		if isValidation(err) {
			h.formError(w, r, page, err)
			return
		}
		h.fail(w, r, "update customer", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/customers", "success", "Pelanggan diperbarui")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.view.RedirectWithFlash(w, r, "/customers", "danger", "Pelanggan tidak ditemukan")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete customer", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/customers", "success", "Pelanggan dihapus")
}

func (h *Handler) formError(w http.ResponseWriter, r *http.Request, page formPage, err error) {
	if !shared.IsUserError(err) {
		h.view.ServerError(w, r, "save customer", err)
		return
	}
	page.Errors = formErrors{"general": shared.UserMessage(err)}
	h.view.Render(w, r, "pages/customer_form.html", page.Action+" Pelanggan", page, http.StatusBadRequest)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if shared.IsUserError(err) {
		h.view.RedirectWithFlash(w, r, "/customers", "danger", shared.UserMessage(err))
		return
	}
	h.view.ServerError(w, r, msg, err)
}

func inputFromRequest(r *http.Request) CustomerInput {
	return CustomerInput{
		Name:  r.PostFormValue("name"),
		Phone: r.PostFormValue("phone"),
	}
}
