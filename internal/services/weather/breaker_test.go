package weather_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
	"github.com/climabot/meteo-actions/internal/services/weather"
)

var breakerCfg = weather.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 5,
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Current(ctx context.Context, city string) (models.Conditions, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.Conditions)
	if !ok {
		return models.Conditions{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockProvider) Forecast(ctx context.Context, city string) (models.Forecast, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.Forecast)
	if !ok {
		return models.Forecast{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockProvider) AirPollution(ctx context.Context, lat, lon float64) (models.AirPollution, error) {
	args := m.Called(ctx, lat, lon)
	data, ok := args.Get(0).(models.AirPollution)
	if !ok {
		return models.AirPollution{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockProvider) Geocode(ctx context.Context, city string) (models.GeoPlace, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.GeoPlace)
	if !ok {
		return models.GeoPlace{}, args.Error(1)
	}
	return data, args.Error(1)
}

const (
	breakerName = "TestProvider"
	city        = "Roma"
)

func TestBreakerProvider_Success(t *testing.T) {
	wrapped := new(mockProvider)
	var expected models.Conditions
	expected.Name = city
	expected.Main.Temp = 24

	wrapped.
		On("Current", mock.Anything, city).
		Return(expected, nil).
		Once()

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	data, err := bp.Current(context.Background(), city)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Current", 1)
}

func TestBreakerProvider_UnderlyingErrorBeforeTrip(t *testing.T) {
	wrapped := new(mockProvider)
	underlyingErr := errors.New("service down")

	wrapped.
		On("Forecast", mock.Anything, city).
		Return(models.Forecast{}, underlyingErr).
		Once()

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	data, err := bp.Forecast(context.Background(), city)
	assert.Error(t, err)
	assert.Empty(t, data.List)
	assert.Contains(t, err.Error(), breakerName+" unavailable: "+underlyingErr.Error())

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Forecast", 1)
}

func TestBreakerProvider_TripCircuitAfterFiveFailures(t *testing.T) {
	wrapped := new(mockProvider)
	underlyingErr := errors.New("timeout")

	for i := 0; i < 5; i++ {
		wrapped.
			On("Current", mock.Anything, city).
			Return(models.Conditions{}, underlyingErr).
			Once()
	}

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bp.Current(context.Background(), city)
		assert.Error(t, err, "call #%d should error before trip", i)
		assert.Contains(t, err.Error(), breakerName+" unavailable: "+underlyingErr.Error())
	}

	_, err := bp.Current(context.Background(), city)
	assert.Error(t, err)
	assert.True(t,
		strings.Contains(err.Error(), "circuit breaker is open"),
		"6th call should return open-circuit error",
	)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Current", 5)
}

func TestBreakerProvider_UnknownCityDoesNotTrip(t *testing.T) {
	wrapped := new(mockProvider)
	notFound := fmt.Errorf("geocode: %w", openweather.ErrCityNotFound)

	for i := 0; i < 10; i++ {
		wrapped.
			On("Geocode", mock.Anything, "Atlantide").
			Return(models.GeoPlace{}, notFound).
			Once()
	}

	bp := weather.NewBreakerProvider(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 10; i++ {
		_, err := bp.Geocode(context.Background(), "Atlantide")
		assert.ErrorIs(t, err, openweather.ErrCityNotFound, "call #%d must reach the provider", i)
	}

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Geocode", 10)
}
