package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
)

// SunTimes reports sunrise and sunset in the city's local time.
type SunTimes struct {
	provider weatherProvider
	logger   zerolog.Logger
}

func NewSunTimes(provider weatherProvider, logger zerolog.Logger) *SunTimes {
	return &SunTimes{
		provider: provider,
		logger:   logger.With().Str("action", "action_get_sun_times").Logger(),
	}
}

func (a *SunTimes) Name() string { return "action_get_sun_times" }

func (a *SunTimes) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	if city == "" {
		return say("Per favore, indicami prima una città.")
	}

	cond, err := a.provider.Current(ctx, city)
	if errors.Is(err, openweather.ErrCityNotFound) {
		return say(fmt.Sprintf("Città '%s' non trovata.", displayCity(city)))
	}
	if err != nil {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("current weather fetch failed")
		return say(msgWeatherUnavailable)
	}

	if cond.Sys.Sunrise == 0 || cond.Sys.Sunset == 0 {
		return say("Non sono riuscito a recuperare gli orari di alba e tramonto.")
	}

	tz := time.FixedZone("local", cond.Timezone)
	sunrise := time.Unix(cond.Sys.Sunrise, 0).In(tz).Format("15:04")
	sunset := time.Unix(cond.Sys.Sunset, 0).In(tz).Format("15:04")

	return say(fmt.Sprintf(
		"A %s, l'alba è avvenuta alle %s e il tramonto avverrà alle %s (orario locale).",
		displayCity(city), sunrise, sunset,
	))
}
