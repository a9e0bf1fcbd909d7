package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
)

// Provider is the full surface the action layer needs from the
// weather backend.
type Provider interface {
	Current(ctx context.Context, city string) (models.Conditions, error)
	Forecast(ctx context.Context, city string) (models.Forecast, error)
	AirPollution(ctx context.Context, lat, lon float64) (models.AirPollution, error)
	Geocode(ctx context.Context, city string) (models.GeoPlace, error)
}

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerProvider guards a Provider behind a single circuit breaker:
// when the provider is down, every operation is down.
type BreakerProvider struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped Provider
}

func NewBreakerProvider(name string, cfg BreakerConfig, wrapped Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		// An unknown city is a valid answer, not a provider outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, openweather.ErrCityNotFound)
		},
	}
	return &BreakerProvider{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerProvider) Current(ctx context.Context, city string) (models.Conditions, error) {
	return execute(b, func() (models.Conditions, error) {
		return b.wrapped.Current(ctx, city)
	})
}

func (b *BreakerProvider) Forecast(ctx context.Context, city string) (models.Forecast, error) {
	return execute(b, func() (models.Forecast, error) {
		return b.wrapped.Forecast(ctx, city)
	})
}

func (b *BreakerProvider) AirPollution(ctx context.Context, lat, lon float64) (models.AirPollution, error) {
	return execute(b, func() (models.AirPollution, error) {
		return b.wrapped.AirPollution(ctx, lat, lon)
	})
}

func (b *BreakerProvider) Geocode(ctx context.Context, city string) (models.GeoPlace, error) {
	return execute(b, func() (models.GeoPlace, error) {
		return b.wrapped.Geocode(ctx, city)
	})
}

func execute[T any](b *BreakerProvider, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return zero, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	res, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}
