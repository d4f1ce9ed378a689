package middleware

import (
	"net/http"
	"time"

	"github.com/mcoot/gameportal/internal/metrics"
)

// Metrics counts requests per route template. A nil registry disables it.
func Metrics(reg *metrics.Registry, component string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if reg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &ResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			reg.RecordHTTPRequest(component, r.Method, RouteTemplate(r), wrapped.status, time.Since(start))
		})
	}
}
