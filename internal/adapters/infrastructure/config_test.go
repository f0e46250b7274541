package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityweather.app/internal/config"
	"cityweather.app/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                9090,
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 7,
			GinMode:             "test",
		},
		Weather: config.WeatherConfig{
			OpenWeatherMapKey:     "key",
			OpenWeatherMapBaseURL: "http://localhost:9999",
			RequestTimeoutSeconds: 3,
			StrictUnits:           true,
			DisplayTimezone:       "UTC",
		},
	}
}

func TestConfigProviderAdapter(t *testing.T) {
	adapter, err := NewConfigProviderAdapter(testConfig())
	require.NoError(t, err)

	server := adapter.GetServerConfig()
	assert.Equal(t, 9090, server.Port)
	assert.Equal(t, 5*time.Second, server.ReadTimeout)
	assert.Equal(t, 7*time.Second, server.WriteTimeout)

	app := adapter.GetAppConfig()
	assert.Equal(t, "http://localhost:9999", app.ProviderBaseURL)
	assert.Equal(t, "test", app.GinMode)

	weather := adapter.GetWeatherConfig()
	assert.True(t, weather.StrictUnits)
	assert.Equal(t, 3*time.Second, weather.RequestTimeout)
	assert.Equal(t, "UTC", weather.DisplayLocation.String())
	assert.False(t, weather.UseCityTimezone)

	cfg := testConfig()
	cfg.Weather.UseCityTimezone = true
	adapter, err = NewConfigProviderAdapter(cfg)
	require.NoError(t, err)
	assert.True(t, adapter.GetWeatherConfig().UseCityTimezone)
}

func TestConfigProviderAdapter_UnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Weather.DisplayTimezone = "Mars/Olympus_Mons"

	adapter, err := NewConfigProviderAdapter(cfg)

	assert.Nil(t, adapter)
	assert.True(t, errors.IsConfigurationError(err))
}
