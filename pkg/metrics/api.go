package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records request durations and order outcomes.
type APIMetrics struct {
	requestDuration *prometheus.HistogramVec
	ordersCreated   prometheus.Counter
	ordersRejected  *prometheus.CounterVec
}

// NewAPIMetrics registers the API metrics on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders committed successfully.",
	})
	ordersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Order requests rejected before commit.",
	}, []string{"reason"})
	reg.MustRegister(requestDuration, ordersCreated, ordersRejected)
	return &APIMetrics{
		requestDuration: requestDuration,
		ordersCreated:   ordersCreated,
		ordersRejected:  ordersRejected,
	}
}

// ObserveRequest records the duration for one handled request.
func (m *APIMetrics) ObserveRequest(method, route string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncOrderCreated increments the committed-order counter.
func (m *APIMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncOrderRejected increments the rejection counter for the given reason.
func (m *APIMetrics) IncOrderRejected(reason string) {
	if m == nil || m.ordersRejected == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.ordersRejected.WithLabelValues(reason).Inc()
}
