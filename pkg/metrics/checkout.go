package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records commit and refund outcomes at the register.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	committed prometheus.Counter
	failed    *prometheus.CounterVec
	refunded  prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"payment_method"})
	committed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_committed_total",
		Help: "Successfully committed transactions.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Failed commit attempts by error code.",
	}, []string{"code"})
	refunded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_refunded_total",
		Help: "Refunded transactions.",
	})
	reg.MustRegister(duration, committed, failed, refunded)
	return &CheckoutMetrics{
		duration:  duration,
		committed: committed,
		failed:    failed,
		refunded:  refunded,
	}
}

// ObserveCommit records the duration of a commit for the payment method.
func (c *CheckoutMetrics) ObserveCommit(paymentMethod string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(paymentMethod)).Observe(duration.Seconds())
}

// IncCommitted increments the committed transaction counter.
func (c *CheckoutMetrics) IncCommitted() {
	if c == nil || c.committed == nil {
		return
	}
	c.committed.Inc()
}

// IncFailed increments the failure counter for the given error code.
func (c *CheckoutMetrics) IncFailed(code string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncRefunded increments the refunded transaction counter.
func (c *CheckoutMetrics) IncRefunded() {
	if c == nil || c.refunded == nil {
		return
	}
	c.refunded.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
