// Package external provides adapters for external services
// These adapters implement ports for the weather provider and its decorators.
package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cityweather.app/internal/ports"
	"cityweather.app/pkg/errors"
	"cityweather.app/pkg/validation"
)

const (
	defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultRequestTimeout        = 10 * time.Second
	maxResponseBytes             = 1 << 20
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger
	// Client overrides the default *http.Client
	Client HTTPClient
}

// OpenWeatherMapResponse represents the response from the current weather endpoint.
// Blocks are pointers so a payload without them can be told apart from zero values.
type OpenWeatherMapResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Sys *struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
	Timezone *int `json:"timezone"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}
}

// GetCurrentWeather retrieves current conditions from OpenWeatherMap
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.Observation, error) {
	city, ok := validation.TrimAndValidate(query.City)
	if !ok {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	params := url.Values{}
	params.Set("appid", p.apiKey)
	params.Set("q", city)
	if query.Units != "" {
		params.Set("units", query.Units)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build OpenWeatherMap request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError("city not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("OpenWeatherMap returned status %d", resp.StatusCode), nil)
	}

	var apiResp OpenWeatherMapResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}

	observation, err := apiResp.toObservation()
	if err != nil {
		p.logger.Debug("OpenWeatherMap payload rejected",
			ports.F("city", query.City),
			ports.F("reason", err.Error()))
		return nil, err
	}
	if observation.Location == "" {
		observation.Location = city
	}
	return observation, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

// toObservation is the parse step: a payload missing any block the pages
// need is a lookup the provider could not satisfy.
func (r *OpenWeatherMapResponse) toObservation() (*ports.Observation, error) {
	if r.Main == nil || r.Main.Temp == nil || r.Main.Humidity == nil {
		return nil, errors.NewNotFoundError("city not found")
	}
	if r.Wind == nil || r.Wind.Speed == nil {
		return nil, errors.NewNotFoundError("city not found")
	}
	if r.Sys == nil || r.Sys.Sunrise == nil || r.Sys.Sunset == nil {
		return nil, errors.NewNotFoundError("city not found")
	}

	observation := &ports.Observation{
		Location:    r.Name,
		Temperature: *r.Main.Temp,
		Humidity:    *r.Main.Humidity,
		WindSpeed:   *r.Wind.Speed,
		Sunrise:     time.Unix(*r.Sys.Sunrise, 0),
		Sunset:      time.Unix(*r.Sys.Sunset, 0),
	}
	if len(r.Weather) > 0 {
		observation.Description = r.Weather[0].Description
	}
	if r.Timezone != nil {
		offset := time.Duration(*r.Timezone) * time.Second
		observation.UTCOffset = &offset
	}
	return observation, nil
}

func transportError(err error) *errors.AppError {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.NewTransientError("weather provider timed out", err)
	case stderrors.Is(err, context.Canceled):
		return errors.NewTransientError("weather request was cancelled", err)
	default:
		return errors.NewTransientError("weather provider is unreachable", err)
	}
}
