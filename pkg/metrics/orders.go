package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records checkout outcomes.
type OrderMetrics struct {
	created       *prometheus.CounterVec
	priceMismatch prometheus.Counter
	checkout      prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created, labeled by order type.",
	}, []string{"order_type"})
	priceMismatch := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_price_mismatch_total",
		Help: "Checkouts where the client-sent subtotal disagreed with the recomputed one.",
	})
	checkout := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout requests in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(created, priceMismatch, checkout)
	return &OrderMetrics{
		created:       created,
		priceMismatch: priceMismatch,
		checkout:      checkout,
	}
}

// IncCreated increments the created counter for the given order type.
func (m *OrderMetrics) IncCreated(orderType string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(orderType).Inc()
}

// IncPriceMismatch increments the mismatch counter.
func (m *OrderMetrics) IncPriceMismatch() {
	if m == nil || m.priceMismatch == nil {
		return
	}
	m.priceMismatch.Inc()
}

// ObserveCheckout records the duration of one checkout request.
func (m *OrderMetrics) ObserveCheckout(duration time.Duration) {
	if m == nil || m.checkout == nil {
		return
	}
	m.checkout.Observe(duration.Seconds())
}
