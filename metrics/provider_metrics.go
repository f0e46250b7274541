package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for provider calls
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type ProviderMetricsCollector struct {
	Calls        *prometheus.CounterVec
	Latency      *prometheus.HistogramVec
	SuccessRatio *prometheus.GaugeVec
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// NewProviderMetricsCollector registers the collectors on reg. Each
// application owns its registry so collectors never clash across instances.
func NewProviderMetricsCollector(reg prometheus.Registerer) *ProviderMetricsCollector {
	factory := promauto.With(reg)
	return &ProviderMetricsCollector{
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_provider_calls_total",
				Help: "The total number of weather provider calls",
			},
			[]string{"provider", "outcome"},
		),
		Latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weather_provider_duration_seconds",
				Help:    "Weather provider call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		SuccessRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "weather_provider_success_ratio",
				Help: "Provider success ratio (successes/total calls)",
			},
			[]string{"provider"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_http_requests_total",
				Help: "The total number of HTTP requests served",
			},
			[]string{"route", "status"},
		),
		HTTPLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weather_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

type providerCounts struct {
	successes int64
	failures  int64
}

// ProviderMetrics tracks provider outcomes and served HTTP requests
type ProviderMetrics struct {
	collector *ProviderMetricsCollector
	mu        sync.RWMutex
	counts    map[string]*providerCounts
}

func NewProviderMetrics(reg prometheus.Registerer) *ProviderMetrics {
	return &ProviderMetrics{
		collector: NewProviderMetricsCollector(reg),
		counts:    make(map[string]*providerCounts),
	}
}

// ObserveCall records a single provider call
func (m *ProviderMetrics) ObserveCall(provider, outcome string, duration time.Duration) {
	m.collector.Calls.WithLabelValues(provider, outcome).Inc()
	m.collector.Latency.WithLabelValues(provider).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counts[provider]
	if !ok {
		c = &providerCounts{}
		m.counts[provider] = c
	}
	if outcome == OutcomeSuccess {
		c.successes++
	} else {
		c.failures++
	}
	m.updateSuccessRatio(provider, c)
}

// ObserveRequest records a served HTTP request
func (m *ProviderMetrics) ObserveRequest(route string, status int, duration time.Duration) {
	m.collector.HTTPRequests.WithLabelValues(route, statusClass(status)).Inc()
	m.collector.HTTPLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// updateSuccessRatio must be called while holding the mutex.
func (m *ProviderMetrics) updateSuccessRatio(provider string, c *providerCounts) {
	total := c.successes + c.failures
	if total > 0 {
		m.collector.SuccessRatio.WithLabelValues(provider).Set(float64(c.successes) / float64(total))
	}
}

func (m *ProviderMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]interface{}, len(m.counts))
	for provider, c := range m.counts {
		total := c.successes + c.failures
		var ratio float64
		if total > 0 {
			ratio = float64(c.successes) / float64(total)
		}
		stats[provider] = map[string]interface{}{
			"successes":     c.successes,
			"failures":      c.failures,
			"total":         total,
			"success_ratio": ratio,
		}
	}
	return stats
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
