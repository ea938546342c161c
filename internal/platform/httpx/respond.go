// Package httpx provides small JSON response helpers for the operational endpoints.
package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type healthReport struct {
	Status string            `json:"status"`
	Failed map[string]string `json:"failed,omitempty"`
}

// Health answers 200 {"status":"ok"} when every check passes within timeout
// and 503 with the failing check names otherwise.
func Health(checks map[string]Check, timeout time.Duration) http.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report := healthReport{Status: "ok"}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				if report.Failed == nil {
					report.Failed = make(map[string]string)
				}
				report.Failed[name] = err.Error()
			}
		}
		if len(report.Failed) > 0 {
			report.Status = "degraded"
			JSON(w, http.StatusServiceUnavailable, report)
			return
		}
		JSON(w, http.StatusOK, report)
	})
}
