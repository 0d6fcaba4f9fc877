package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncProfilesGenerated("demo")
	m.IncProfilesGenerated("demo")
	m.ObserveSection("Bank Transactions", true)
	m.ObserveSection("Bank Transactions", false)
	m.ObserveReply(0.5, 4, false)
	m.ObserveReply(1.5, 0, true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ProfilesGenerated.WithLabelValues("demo")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SectionsParsed.WithLabelValues("Bank Transactions", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SectionsParsed.WithLabelValues("Bank Transactions", "malformed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RecommendationRequests.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RecommendationRequests.WithLabelValues("upstream_failure")))

	count, err := testutil.GatherAndCount(reg, "benefits_advisor_model_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncProfilesGenerated("demo")
		m.ObserveSection("Personal Info", true)
		m.ObserveReply(1, 1, false)
	})
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
