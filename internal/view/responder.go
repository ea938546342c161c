package view

import (
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Responder renders pages with the session-derived fields filled in and
// performs flash-and-redirect responses. Handlers embed one instead of
// repeating the plumbing.
type Responder struct {
	Logger    *slog.Logger
	Templates *Engine
	CSRF      *shared.CSRFManager
}

// Render writes the page with status. Session writes (CSRF token, popped flash)
// happen before the header so the commit wrapper persists them.
func (rs Responder) Render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, err := rs.CSRF.EnsureToken(r.Context(), sess)
	if err != nil {
		rs.logger().Warn("ensure csrf token", slog.Any("error", err))
	}
	var (
		flash *shared.FlashMessage
		user  string
	)
	if sess != nil {
		flash = sess.PopFlash()
		user = sess.User()
	}
	viewData := TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		User:        user,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rs.Templates.Render(w, tmpl, viewData); err != nil {
		rs.logger().Error("render template", slog.Any("error", err), slog.String("template", tmpl))
	}
}

// RedirectWithFlash queues a flash message and redirects with 303.
func (rs Responder) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	shared.Flash(r.Context(), kind, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// ServerError logs err and answers 500.
func (rs Responder) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	rs.logger().Error(msg, slog.Any("error", err), slog.String("path", r.URL.Path))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (rs Responder) logger() *slog.Logger {
	if rs.Logger == nil {
		return slog.Default()
	}
	return rs.Logger
}
