package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderMetrics(t *testing.T) {
	metrics := NewProviderMetrics(prometheus.NewRegistry())

	t.Run("Initial state", func(t *testing.T) {
		assert.Empty(t, metrics.GetStats())
	})

	t.Run("Record success", func(t *testing.T) {
		metrics.ObserveCall("openweathermap", OutcomeSuccess, 20*time.Millisecond)

		stats := metrics.GetStats()["openweathermap"].(map[string]interface{})
		assert.Equal(t, int64(1), stats["successes"])
		assert.Equal(t, int64(0), stats["failures"])
		assert.Equal(t, 1.0, stats["success_ratio"])
	})

	t.Run("Record failure", func(t *testing.T) {
		metrics.ObserveCall("openweathermap", OutcomeFailure, 40*time.Millisecond)

		stats := metrics.GetStats()["openweathermap"].(map[string]interface{})
		assert.Equal(t, int64(1), stats["failures"])
		assert.Equal(t, int64(2), stats["total"])
		assert.Equal(t, 0.5, stats["success_ratio"])
	})

	t.Run("Prometheus collectors", func(t *testing.T) {
		c := metrics.collector
		assert.Equal(t, 1.0, testutil.ToFloat64(c.Calls.WithLabelValues("openweathermap", OutcomeSuccess)))
		assert.Equal(t, 1.0, testutil.ToFloat64(c.Calls.WithLabelValues("openweathermap", OutcomeFailure)))
		assert.Equal(t, 0.5, testutil.ToFloat64(c.SuccessRatio.WithLabelValues("openweathermap")))
	})
}

func TestProviderMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewProviderMetrics(reg)

	metrics.ObserveRequest("/results", 200, time.Millisecond)
	metrics.ObserveRequest("/results", 404, time.Millisecond)
	metrics.ObserveRequest("/results", 502, time.Millisecond)
	metrics.ObserveRequest("/results", 201, time.Millisecond)

	c := metrics.collector
	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("/results", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("/results", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("/results", "5xx")))

	count, err := testutil.GatherAndCount(reg, "weather_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProviderMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewProviderMetrics(prometheus.NewRegistry())
		NewProviderMetrics(prometheus.NewRegistry())
	})
}
