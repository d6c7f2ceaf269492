package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records pricing, selection and checkout activity.
type Storefront struct {
	pricingFallback  *prometheus.CounterVec
	selectionEvents  *prometheus.CounterVec
	checkoutOutcomes *prometheus.CounterVec
	confirmDuration  *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	pricingFallback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_fallback_total",
		Help: "Prices that fell back to the product base price.",
	}, []string{"reason"})
	selectionEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "selection_events_total",
		Help: "Selection events applied to shopper sessions.",
	}, []string{"event"})
	checkoutOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_confirmations_total",
		Help: "Checkout confirmation attempts by payment method and outcome.",
	}, []string{"method", "outcome"})
	confirmDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_confirm_duration_seconds",
		Help:    "Duration of simulated payment confirmation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	reg.MustRegister(pricingFallback, selectionEvents, checkoutOutcomes, confirmDuration)
	return &Storefront{
		pricingFallback:  pricingFallback,
		selectionEvents:  selectionEvents,
		checkoutOutcomes: checkoutOutcomes,
		confirmDuration:  confirmDuration,
	}
}

// IncPricingFallback counts a base-price fallback for the given reason.
func (s *Storefront) IncPricingFallback(reason string) {
	if s == nil || s.pricingFallback == nil {
		return
	}
	s.pricingFallback.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncSelectionEvent counts one applied selection event.
func (s *Storefront) IncSelectionEvent(event string) {
	if s == nil || s.selectionEvents == nil {
		return
	}
	s.selectionEvents.WithLabelValues(normalizeLabel(event)).Inc()
}

// ObserveConfirmation records the outcome and duration of a confirmation.
func (s *Storefront) ObserveConfirmation(method, outcome string, duration time.Duration) {
	if s == nil || s.checkoutOutcomes == nil {
		return
	}
	method = normalizeLabel(method)
	s.checkoutOutcomes.WithLabelValues(method, normalizeLabel(outcome)).Inc()
	s.confirmDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
