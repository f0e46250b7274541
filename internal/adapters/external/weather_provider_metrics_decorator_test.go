package external

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cityweather.app/internal/mocks"
	"cityweather.app/internal/ports"
)

type recordedCall struct {
	provider string
	outcome  string
	duration time.Duration
}

type testProviderMetrics struct {
	calls []recordedCall
}

func (m *testProviderMetrics) ObserveCall(provider, outcome string, duration time.Duration) {
	m.calls = append(m.calls, recordedCall{provider: provider, outcome: outcome, duration: duration})
}

func TestWeatherProviderMetricsDecorator_Success(t *testing.T) {
	mockProvider := mocks.NewWeatherProvider(t)
	observation := &ports.Observation{Location: "Boston", Temperature: 72.5}
	query := ports.WeatherQuery{City: "Boston", Units: "imperial"}

	mockProvider.EXPECT().GetCurrentWeather(mock.Anything, query).Return(observation, nil).Once()
	mockProvider.EXPECT().GetProviderName().Return("openweathermap")

	recorder := &testProviderMetrics{}
	decorator := NewWeatherProviderMetricsDecorator(mockProvider, recorder)

	result, err := decorator.GetCurrentWeather(context.Background(), query)

	require.NoError(t, err)
	assert.Same(t, observation, result)
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, "openweathermap", recorder.calls[0].provider)
	assert.Equal(t, outcomeSuccess, recorder.calls[0].outcome)
	assert.Equal(t, "openweathermap", decorator.GetProviderName())
}

func TestWeatherProviderMetricsDecorator_Failure(t *testing.T) {
	mockProvider := mocks.NewWeatherProvider(t)
	providerErr := errors.New("boom")

	mockProvider.EXPECT().GetCurrentWeather(mock.Anything, mock.Anything).Return(nil, providerErr).Once()
	mockProvider.EXPECT().GetProviderName().Return("openweathermap")

	recorder := &testProviderMetrics{}
	decorator := NewWeatherProviderMetricsDecorator(mockProvider, recorder)

	result, err := decorator.GetCurrentWeather(context.Background(), ports.WeatherQuery{City: "Nowhere"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, providerErr)
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, outcomeFailure, recorder.calls[0].outcome)
}
