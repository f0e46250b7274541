package ports

import (
	"context"
	"time"
)

// WeatherQuery is what a provider needs to look up current conditions
type WeatherQuery struct {
	City  string
	Units string
}

// Observation is the provider payload after the parse step. Every field the
// pages need is present; a payload that lacks them never becomes an Observation.
type Observation struct {
	Location    string
	Description string
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	Sunrise     time.Time
	Sunset      time.Time
	// UTCOffset is the city's offset from UTC when the provider reports one.
	UTCOffset *time.Duration
}

// WeatherProvider defines the contract for weather data providers
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, query WeatherQuery) (*Observation, error)
	GetProviderName() string
}

// ProviderMetrics records outcomes of provider calls
type ProviderMetrics interface {
	ObserveCall(provider, outcome string, duration time.Duration)
}
