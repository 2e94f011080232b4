package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/silverempire/commerce-backend/pkg/metrics"
)

// Metrics records per-route request durations. The route label uses the chi
// pattern, not the raw path, to keep the label cardinality bounded.
func Metrics(measures *metrics.APIMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			pattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					pattern = p
				}
			}
			measures.ObserveRequest(r.Method, pattern, time.Since(start))
		})
	}
}
