package shared

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks a missing or malformed field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a concurrent write won; the caller may retry.
	ErrConflict = errors.New("conflict")
	// ErrAuthRequired indicates the session is not logged in.
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// IsUserError reports whether err should be shown on the originating page
// instead of failing the request.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
}

// UserMessage renders a validation or not-found error for display, e.g.
// "validation failed: stok tidak valid" becomes "stok tidak valid" and
// "produk #4: not found" becomes "produk #4 tidak ditemukan".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case errors.Is(err, ErrValidation):
		prefix := ErrValidation.Error() + ": "
		if idx := strings.LastIndex(msg, prefix); idx >= 0 {
			return msg[idx+len(prefix):]
		}
		return "data tidak valid"
	case errors.Is(err, ErrConflict):
		prefix := ErrConflict.Error() + ": "
		if idx := strings.LastIndex(msg, prefix); idx >= 0 {
			return msg[idx+len(prefix):]
		}
		return "data sedang diubah, silakan coba lagi"
	case errors.Is(err, ErrNotFound):
		suffix := ": " + ErrNotFound.Error()
		if idx := strings.LastIndex(msg, suffix); idx >= 0 {
			subject := msg[:idx]
			if colon := strings.LastIndex(subject, ": "); colon >= 0 {
				subject = subject[colon+2:]
			}
			return subject + " tidak ditemukan"
		}
		return "data tidak ditemukan"
	default:
		return "terjadi kesalahan"
	}
}
