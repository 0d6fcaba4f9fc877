package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the advisor
type Metrics struct {
	ProfilesGenerated       *prometheus.CounterVec
	SectionsParsed          *prometheus.CounterVec
	RecommendationRequests  *prometheus.CounterVec
	RecommendationsPerReply prometheus.Histogram
	ModelLatency            prometheus.Histogram
}

// New creates the metrics and registers them with reg.
// Pass prometheus.NewRegistry() in tests to keep registrations isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProfilesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "benefits_advisor_profiles_generated_total",
			Help: "Total number of synthetic profiles generated, by tier",
		}, []string{"tier"}),
		SectionsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "benefits_advisor_sections_parsed_total",
			Help: "Total number of uploaded sections parsed, by section and outcome",
		}, []string{"section", "outcome"}),
		RecommendationRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "benefits_advisor_recommendation_requests_total",
			Help: "Total number of recommendation requests sent to the model, by outcome",
		}, []string{"outcome"}),
		RecommendationsPerReply: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "benefits_advisor_recommendations_per_reply",
			Help:    "Number of recommendations extracted from each model reply",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		ModelLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "benefits_advisor_model_latency_seconds",
			Help:    "Latency of text-completion calls",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncProfilesGenerated counts one generated profile
func (m *Metrics) IncProfilesGenerated(tier string) {
	if m == nil {
		return
	}
	m.ProfilesGenerated.WithLabelValues(tier).Inc()
}

// ObserveSection counts one parsed section; ok=false records a malformed section
func (m *Metrics) ObserveSection(section string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "malformed"
	}
	m.SectionsParsed.WithLabelValues(section, outcome).Inc()
}

// ObserveReply records the outcome of one model call
func (m *Metrics) ObserveReply(seconds float64, recommendations int, failed bool) {
	if m == nil {
		return
	}
	m.ModelLatency.Observe(seconds)
	if failed {
		m.RecommendationRequests.WithLabelValues("upstream_failure").Inc()
		return
	}
	m.RecommendationRequests.WithLabelValues("ok").Inc()
	m.RecommendationsPerReply.Observe(float64(recommendations))
}
