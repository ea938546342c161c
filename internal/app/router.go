package app

import (
	"io/fs"
	"log"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/odyssey-pos/internal/auth"
	"github.com/odyssey-erp/odyssey-pos/internal/catalog"
	"github.com/odyssey-erp/odyssey-pos/internal/customers"
	"github.com/odyssey-erp/odyssey-pos/internal/dashboard"
	"github.com/odyssey-erp/odyssey-pos/internal/observability"
	"github.com/odyssey-erp/odyssey-pos/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-pos/internal/pos"
	"github.com/odyssey-erp/odyssey-pos/internal/sales"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/web"
)

func init() {
	if mime.TypeByExtension(".css") != "" {
		return
	}
	if err := mime.AddExtensionType(".css", "text/css; charset=utf-8"); err != nil {
		log.Printf("app: failed to register MIME type for .css: %v", err)
	}
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	ProductHandler   *catalog.Handler
	CustomerHandler  *customers.Handler
	POSHandler       *pos.Handler
	SalesHandler     *sales.Handler
	Metrics          *observability.Metrics
	HealthChecks     map[string]httpx.Check
}

// NewRouter constructs the chi.Router with the POS defaults. Everything but
// login, health, metrics and static assets sits behind the auth gate.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Method(http.MethodGet, "/healthz", httpx.Health(params.HealthChecks, 2*time.Second))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.AuthHandler.MountRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.Gate)
		params.DashboardHandler.MountRoutes(r)
		r.Route("/products", params.ProductHandler.MountRoutes)
		r.Route("/customers", params.CustomerHandler.MountRoutes)
		r.Route("/pos", params.POSHandler.MountRoutes)
		r.Route("/transactions", params.SalesHandler.MountRoutes)
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler lets browsers cache embedded assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
