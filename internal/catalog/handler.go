package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// Handler wires HTTP endpoints for the product screens.
type Handler struct {
	service *Service
	view    view.Responder
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, responder view.Responder) *Handler {
	return &Handler{service: service, view: responder}
}

// MountRoutes registers product routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/add", h.showCreate)
	r.Post("/add", h.create)
	r.Get("/edit/{id}", h.showEdit)
	r.Post("/edit/{id}", h.update)
	r.Post("/delete/{id}", h.delete)
}

type formPage struct {
	Action  string
	Target  string
	Form    ProductForm
	Product *Product
	Errors  map[string]string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	products, err := h.service.List(r.Context(), q)
	if err != nil {
		h.view.ServerError(w, r, "list products", err)
		return
	}
	h.view.Render(w, r, "pages/products.html", "Produk", map[string]any{
		"Products": products,
		"Query":    q,
	}, http.StatusOK)
}

func (h *Handler) showCreate(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/product_form.html", "Tambah Produk", formPage{
		Action: "Tambah",
		Target: "/products/add",
		Errors: map[string]string{},
	}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)
	in, err := form.Parse()
	if err == nil {
		_, err = h.service.Create(r.Context(), in)
	}
	if err != nil {
		h.formError(w, r, formPage{Action: "Tambah", Target: "/products/add", Form: form}, err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/products", "success", "Produk berhasil ditambahkan")
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		h.view.RedirectWithFlash(w, r, "/products", "danger", "Produk tidak ditemukan")
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get product", err)
		return
	}
	h.view.Render(w, r, "pages/product_form.html", "Edit Produk", formPage{
		Action: "Edit",
		Target: "/products/edit/" + strconv.FormatInt(id, 10),
		Form: ProductForm{
			Name:  product.Name,
			Price: product.Price.String(),
			Stock: strconv.Itoa(product.Stock),
		},
		Product: &product,
		Errors:  map[string]string{},
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		h.view.RedirectWithFlash(w, r, "/products", "danger", "Produk tidak ditemukan")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)
	in, err := form.Parse()
	if err == nil {
		_, err = h.service.Update(r.Context(), id, in)
	}
	if err != nil {
		if shared.IsUserError(err) && !isNotFound(err) {
			h.formError(w, r, formPage{Action: "Edit", Target: "/products/edit/" + strconv.FormatInt(id, 10), Form: form}, err)
			return
		}
		h.fail(w, r, "update product", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/products", "success", "Produk berhasil diperbarui")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		h.view.RedirectWithFlash(w, r, "/products", "danger", "Produk tidak ditemukan")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete product", err)
		return
	}
	h.view.RedirectWithFlash(w, r, "/products", "success", "Produk dihapus")
}

func (h *Handler) formError(w http.ResponseWriter, r *http.Request, page formPage, err error) {
	if !shared.IsUserError(err) {
		h.view.ServerError(w, r, "save product", err)
		return
	}
	page.Errors = map[string]string{"general": shared.UserMessage(err)}
	h.view.Render(w, r, "pages/product_form.html", page.Action+" Produk", page, http.StatusBadRequest)
}

// fail reports user errors on the product list and everything else as a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if shared.IsUserError(err) {
		h.view.RedirectWithFlash(w, r, "/products", "danger", shared.UserMessage(err))
		return
	}
	h.view.ServerError(w, r, msg, err)
}

func formFromRequest(r *http.Request) ProductForm {
	return ProductForm{
		Name:  r.PostFormValue("name"),
		Price: r.PostFormValue("price"),
		Stock: r.PostFormValue("stock"),
	}
}

func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
