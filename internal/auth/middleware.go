package auth

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// Gate lets authenticated sessions through and redirects everyone else to
// the login page.
func Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := RequireAuthenticated(shared.SessionFromContext(r.Context()))
		if errors.Is(err, shared.ErrAuthRequired) {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
