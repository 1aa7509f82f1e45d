package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	QuoteRequestsTotal *prometheus.CounterVec
	QuoteDuration      *prometheus.HistogramVec
	ProviderErrors     *prometheus.CounterVec
	ResolutionTierHits *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		QuoteRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipping_quote_requests_total",
				Help: "Total quote requests by provider type and status",
			},
			[]string{"provider_type", "status"},
		),
		QuoteDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shipping_quote_duration_seconds",
				Help:    "End-to-end quote duration in seconds by provider type",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider_type"},
		),
		ProviderErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipping_provider_errors_total",
				Help: "Provider API failures absorbed as degraded results",
			},
			[]string{"provider", "error_type"},
		),
		ResolutionTierHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipping_postal_resolution_tier_hits_total",
				Help: "Postal resolutions satisfied per cascade tier",
			},
			[]string{"tier"},
		),
	}
}

// RecordQuote records one quoting call.
func (m *Metrics) RecordQuote(providerType, status string, duration float64) {
	m.QuoteRequestsTotal.WithLabelValues(providerType, status).Inc()
	m.QuoteDuration.WithLabelValues(providerType).Observe(duration)
}

// RecordProviderError records a degraded provider outcome.
func (m *Metrics) RecordProviderError(provider, errorType string) {
	m.ProviderErrors.WithLabelValues(provider, errorType).Inc()
}

// RecordTierHit records which cascade tier satisfied a resolution.
func (m *Metrics) RecordTierHit(tier string) {
	m.ResolutionTierHits.WithLabelValues(tier).Inc()
}
