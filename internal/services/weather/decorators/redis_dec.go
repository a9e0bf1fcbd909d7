package decorators

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/weather"
)

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedProvider serves provider responses from redis when possible.
// Cache failures always fall through to the wrapped provider.
type CachedProvider struct {
	inner     weather.Provider
	current   cacheClient[models.Conditions]
	forecasts cacheClient[models.Forecast]
	air       cacheClient[models.AirPollution]
	places    cacheClient[models.GeoPlace]
	logger    zerolog.Logger
}

func NewCachedProvider(
	inner weather.Provider,
	current cacheClient[models.Conditions],
	forecasts cacheClient[models.Forecast],
	air cacheClient[models.AirPollution],
	places cacheClient[models.GeoPlace],
	logger zerolog.Logger,
) *CachedProvider {
	return &CachedProvider{
		inner:     inner,
		current:   current,
		forecasts: forecasts,
		air:       air,
		places:    places,
		logger:    logger.With().Str("component", "CachedProvider").Logger(),
	}
}

func (p *CachedProvider) Current(ctx context.Context, city string) (models.Conditions, error) {
	key := "current:" + cacheKey(city)
	return cached(ctx, p, p.current, key, func() (models.Conditions, error) {
		return p.inner.Current(ctx, city)
	})
}

func (p *CachedProvider) Forecast(ctx context.Context, city string) (models.Forecast, error) {
	key := "forecast:" + cacheKey(city)
	return cached(ctx, p, p.forecasts, key, func() (models.Forecast, error) {
		return p.inner.Forecast(ctx, city)
	})
}

func (p *CachedProvider) AirPollution(ctx context.Context, lat, lon float64) (models.AirPollution, error) {
	key := fmt.Sprintf("air:%.2f:%.2f", lat, lon)
	return cached(ctx, p, p.air, key, func() (models.AirPollution, error) {
		return p.inner.AirPollution(ctx, lat, lon)
	})
}

func (p *CachedProvider) Geocode(ctx context.Context, city string) (models.GeoPlace, error) {
	key := "geo:" + cacheKey(city)
	return cached(ctx, p, p.places, key, func() (models.GeoPlace, error) {
		return p.inner.Geocode(ctx, city)
	})
}

func cached[T any](
	ctx context.Context,
	p *CachedProvider,
	cache cacheClient[T],
	key string,
	fetch func() (T, error),
) (T, error) {
	value, err := cache.Get(ctx, key)
	if err == nil {
		p.logger.Info().
			Ctx(ctx).
			Str("key", key).
			Msg("cache hit")
		return value, nil
	}
	p.logger.Info().
		Ctx(ctx).
		Str("key", key).
		Err(err).
		Msg("cache miss")

	value, err = fetch()
	if err != nil {
		var zero T
		p.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("inner provider failed")
		return zero, err
	}

	if err := cache.Set(ctx, key, value); err != nil {
		p.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache set failed")
	}
	return value, nil
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
