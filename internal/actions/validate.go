package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
)

// ValidateWeatherForm accepts the city slot only when the provider
// recognizes the city; otherwise the slot is cleared so the host asks
// again.
type ValidateWeatherForm struct {
	provider weatherProvider
	logger   zerolog.Logger
}

func NewValidateWeatherForm(provider weatherProvider, logger zerolog.Logger) *ValidateWeatherForm {
	return &ValidateWeatherForm{
		provider: provider,
		logger:   logger.With().Str("action", "validate_weather_form").Logger(),
	}
}

func (a *ValidateWeatherForm) Name() string { return "validate_weather_form" }

func (a *ValidateWeatherForm) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	if city == "" {
		resp := say(msgAskCity)
		resp.Events = []models.Event{models.NewSlotEvent(slotCity, nil)}
		return resp
	}

	_, err := a.provider.Current(ctx, city)
	switch {
	case err == nil:
		return models.ActionResponse{
			Responses: []models.BotMessage{},
			Events:    []models.Event{models.NewSlotEvent(slotCity, city)},
		}
	case errors.Is(err, openweather.ErrCityNotFound):
		resp := say(fmt.Sprintf("La città '%s' non sembra valida, puoi ripetere?", displayCity(city)))
		resp.Events = []models.Event{models.NewSlotEvent(slotCity, nil)}
		return resp
	default:
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("city validation failed")
		resp := say(msgWeatherUnavailable)
		resp.Events = []models.Event{models.NewSlotEvent(slotCity, nil)}
		return resp
	}
}
