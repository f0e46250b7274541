package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"

	"cityweather.app/internal/core/weather"
	"cityweather.app/pkg/errors"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		messages []string
	}{
		{
			name:     "validation",
			err:      errors.NewValidationError("city parameter is required"),
			status:   http.StatusBadRequest,
			messages: []string{"city parameter is required"},
		},
		{
			name:     "wrapped_not_found",
			err:      fmt.Errorf("get weather for city Atlantis: %w", errors.NewNotFoundError("city not found")),
			status:   http.StatusNotFound,
			messages: []string{"city not found"},
		},
		{
			name:     "external_api_hides_detail",
			err:      errors.NewExternalAPIError("OpenWeatherMap returned status 401", nil),
			status:   http.StatusBadGateway,
			messages: []string{"the weather provider returned an unexpected response"},
		},
		{
			name:     "transient",
			err:      errors.NewTransientError("weather provider timed out", context.DeadlineExceeded),
			status:   http.StatusServiceUnavailable,
			messages: []string{"the weather provider is temporarily unavailable, please try again later"},
		},
		{
			name:     "unknown",
			err:      fmt.Errorf("boom"),
			status:   http.StatusInternalServerError,
			messages: []string{"internal server error"},
		},
		{
			name: "comparison_takes_highest_status",
			err: multierror.Append(nil,
				&weather.CityLookupError{Slot: "city1", City: "Atlantis", Err: errors.NewNotFoundError("city not found")},
				&weather.CityLookupError{Slot: "city2", City: "Boston", Err: errors.NewTransientError("weather provider timed out", nil)},
			),
			status: http.StatusServiceUnavailable,
			messages: []string{
				"Atlantis: city not found",
				"Boston: the weather provider is temporarily unavailable, please try again later",
			},
		},
		{
			name: "comparison_missing_slot",
			err: multierror.Append(nil,
				&weather.CityLookupError{Slot: "city2", Err: errors.NewValidationError("city2 parameter is required")},
			),
			status:   http.StatusBadRequest,
			messages: []string{"city2 parameter is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, messages := describeError(tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.messages, messages)
		})
	}
}

func TestErrorTitle(t *testing.T) {
	assert.Equal(t, "Invalid request", errorTitle(http.StatusBadRequest))
	assert.Equal(t, "City not found", errorTitle(http.StatusNotFound))
	assert.Equal(t, "Weather provider error", errorTitle(http.StatusBadGateway))
	assert.Equal(t, "Weather provider unavailable", errorTitle(http.StatusServiceUnavailable))
	assert.Equal(t, "Something went wrong", errorTitle(http.StatusInternalServerError))
}
