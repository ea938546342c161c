package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthOK(t *testing.T) {
	h := Health(map[string]Check{
		"postgres": func(ctx context.Context) error { return nil },
	}, time.Second)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHealthDegraded(t *testing.T) {
	h := Health(map[string]Check{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	}, time.Second)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded","failed":{"redis":"connection refused"}}`, rr.Body.String())
}

func TestHealthChecksSeeDeadline(t *testing.T) {
	h := Health(map[string]Check{
		"slow": func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			if !ok {
				return errors.New("no deadline")
			}
			return nil
		},
	}, 50*time.Millisecond)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
