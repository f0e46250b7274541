package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityweather.app/internal/config"
)

const bostonPayload = `{
	"name": "Boston",
	"weather": [{"description": "clear sky"}],
	"main": {"temp": 72.5, "humidity": 40},
	"wind": {"speed": 5.1},
	"sys": {"sunrise": 1700000000, "sunset": 1700040000},
	"timezone": -18000
}`

func newProviderServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") != "Boston" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
			return
		}
		_, _ = w.Write([]byte(bostonPayload))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                8080,
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 5,
			GinMode:             "test",
		},
		Weather: config.WeatherConfig{
			OpenWeatherMapKey:     "test-key",
			OpenWeatherMapBaseURL: baseURL,
			RequestTimeoutSeconds: 2,
			StrictUnits:           true,
			DisplayTimezone:       "UTC",
			EnableLogging:         true,
		},
		Log: config.LogConfig{Level: "debug", Format: "json"},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) (*Application, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	application, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	return application, &buf
}

func get(application *Application, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestApplication_ResultsEndToEnd(t *testing.T) {
	provider := newProviderServer(t)
	application, logs := newTestApplication(t, testConfig(provider.URL))

	w := get(application, "/results?city=Boston&units=imperial")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Weather in Boston")
	assert.Contains(t, w.Body.String(), "72.5&deg;F")
	assert.Contains(t, w.Body.String(), "9:20 AM UTC")
	assert.Contains(t, logs.String(), "Weather API request completed")
}

func TestApplication_CityTimezone(t *testing.T) {
	provider := newProviderServer(t)
	cfg := testConfig(provider.URL)
	cfg.Weather.UseCityTimezone = true
	application, _ := newTestApplication(t, cfg)

	w := get(application, "/results?city=Boston&units=imperial")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "5:13 PM -0500")
	assert.Contains(t, w.Body.String(), "4:20 AM -0500")
}

func TestApplication_ComparisonReportsFailedCity(t *testing.T) {
	provider := newProviderServer(t)
	application, _ := newTestApplication(t, testConfig(provider.URL))

	w := get(application, "/comparison_results?city1=Boston&city2=Atlantis&units=metric")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Atlantis: city not found")
}

func TestApplication_HealthAndMetrics(t *testing.T) {
	provider := newProviderServer(t)
	application, _ := newTestApplication(t, testConfig(provider.URL))

	get(application, "/results?city=Boston&units=metric")

	w := get(application, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["components"]["weatherProvider"]["status"])
	assert.Equal(t, "healthy", health["components"]["config"]["status"])

	w = get(application, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `weather_provider_calls_total{outcome="success",provider="openweathermap"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestApplication_FileLogging(t *testing.T) {
	provider := newProviderServer(t)
	cfg := testConfig(provider.URL)
	cfg.Weather.LogFilePath = filepath.Join(t.TempDir(), "logs", "weather.log")

	application, _ := newTestApplication(t, cfg)
	get(application, "/results?city=Boston&units=metric")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))

	content, err := os.ReadFile(cfg.Weather.LogFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"Weather API request started"`)
	assert.Equal(t, 3, strings.Count(string(content), "\n"))
}

func TestApplication_InvalidTimezone(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Weather.DisplayTimezone = "Nowhere/Special"

	application, err := NewApplication(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Nil(t, application)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_DISPLAY_TIMEZONE")
}

func TestApplication_ServeAndShutdown(t *testing.T) {
	provider := newProviderServer(t)
	application, _ := newTestApplication(t, testConfig(provider.URL))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- application.Serve(context.Background(), listener)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApplication_ServeStopsWhenContextDone(t *testing.T) {
	provider := newProviderServer(t)
	cfg := testConfig(provider.URL)
	cfg.Weather.LogFilePath = filepath.Join(t.TempDir(), "provider.log")
	application, _ := newTestApplication(t, cfg)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- application.Serve(ctx, listener)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context was cancelled")
	}

	_, err = http.Get("http://" + listener.Addr().String() + "/healthz")
	assert.Error(t, err)
}
