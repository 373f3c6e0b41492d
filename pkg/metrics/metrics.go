// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors for the conversion path. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ConversionsTotal        *prometheus.CounterVec
	CacheLookupsTotal       *prometheus.CounterVec
	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration prometheus.Histogram
	ProviderRetriesTotal    prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_conversions_total",
				Help: "Total number of currency conversions by outcome",
			},
			[]string{"outcome"},
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rate_cache_lookups_total",
				Help: "Exchange rate cache lookups by result",
			},
			[]string{"result"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rate_provider_requests_total",
				Help: "Requests sent to the exchange rate provider by outcome",
			},
			[]string{"outcome"},
		),
		ProviderRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exchange_rate_provider_request_duration_seconds",
				Help:    "Exchange rate provider request duration in seconds, retries included",
				Buckets: prometheus.DefBuckets,
			},
		),
		ProviderRetriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exchange_rate_provider_retries_total",
				Help: "Retried requests to the exchange rate provider",
			},
		),
	}
}

func (m *Metrics) Conversion(outcome string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ProviderRequest(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.ProviderRequestsTotal.WithLabelValues(outcome).Inc()
	m.ProviderRequestDuration.Observe(took.Seconds())
}

func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.ProviderRetriesTotal.Inc()
}
