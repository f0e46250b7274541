package external

import (
	"context"
	"time"

	"cityweather.app/internal/ports"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// WeatherProviderMetricsDecorator records call outcomes of the wrapped provider
type WeatherProviderMetricsDecorator struct {
	provider ports.WeatherProvider
	metrics  ports.ProviderMetrics
}

func NewWeatherProviderMetricsDecorator(provider ports.WeatherProvider, metrics ports.ProviderMetrics) ports.WeatherProvider {
	return &WeatherProviderMetricsDecorator{
		provider: provider,
		metrics:  metrics,
	}
}

func (d *WeatherProviderMetricsDecorator) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.Observation, error) {
	startTime := time.Now()
	observation, err := d.provider.GetCurrentWeather(ctx, query)

	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	d.metrics.ObserveCall(d.provider.GetProviderName(), outcome, time.Since(startTime))

	return observation, err
}

func (d *WeatherProviderMetricsDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
