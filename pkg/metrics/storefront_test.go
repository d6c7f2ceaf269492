package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefront(reg)

	m.IncPricingFallback("invalid_specification")
	m.IncPricingFallback("")
	m.IncSelectionEvent("select_color")
	m.IncSelectionEvent("select_color")
	m.ObserveConfirmation("bank", "success", 250*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pricing_fallback_total", "reason", "invalid_specification"); err != nil || got != 1 {
		t.Fatalf("expected fallback=1, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "pricing_fallback_total", "reason", "unknown"); err != nil || got != 1 {
		t.Fatalf("expected unknown fallback=1, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "selection_events_total", "event", "select_color"); err != nil || got != 2 {
		t.Fatalf("expected select_color=2, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "checkout_confirmations_total", "outcome", "success"); err != nil || got != 1 {
		t.Fatalf("expected success=1, got %f err=%v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "checkout_confirm_duration_seconds", "method", "bank"); err != nil || got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f err=%v", got, err)
	}
}

func TestNilStorefrontIsNoop(t *testing.T) {
	var m *Storefront
	m.IncPricingFallback("x")
	m.IncSelectionEvent("x")
	m.ObserveConfirmation("bank", "success", time.Second)

	NewStorefront(nil).IncSelectionEvent("x")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
