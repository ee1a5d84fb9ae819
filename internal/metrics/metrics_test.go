package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(_ *testing.T) {
	reg := prometheus.NewRegistry()

	_ = metrics.NewMetrics(reg)
}

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.ObserveSubmission("sick_leave", "create", metrics.OutcomeSuccess)
	m.ObserveSubmission("sick_leave", "create", metrics.OutcomeSuccess)
	m.ObserveSubmission("sick_leave", "create", metrics.OutcomeInvalid)

	families, err := reg.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "athena_form_submissions_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "outcome" {
					got[lp.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.InDelta(t, 2.0, got[metrics.OutcomeSuccess], 0)
	assert.InDelta(t, 1.0, got[metrics.OutcomeInvalid], 0)

	var nilMetrics *metrics.Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveSubmission("x", "y", "z") })
}
