package actions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/forecast"
	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
	"github.com/climabot/meteo-actions/internal/timeslot"
)

// GetWeather answers "che tempo fa" questions: current conditions for
// "oggi/ora/adesso", a three-part day narrative for any other date.
type GetWeather struct {
	provider weatherProvider
	places   placesStore
	logger   zerolog.Logger
	now      func() time.Time
}

func NewGetWeather(provider weatherProvider, places placesStore, logger zerolog.Logger) *GetWeather {
	return &GetWeather{
		provider: provider,
		places:   places,
		logger:   logger.With().Str("action", "action_get_weather").Logger(),
		now:      time.Now,
	}
}

func (a *GetWeather) Name() string { return "action_get_weather" }

func (a *GetWeather) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	if city == "" {
		return say(msgAskCity)
	}
	dateSlot := tracker.Slot(slotDate)
	if dateSlot == "" {
		dateSlot = "oggi"
	}

	intro := cityIntro(ctx, a.places, city)

	if timeslot.IsNow(dateSlot) {
		return a.current(ctx, city, intro)
	}
	return a.forecast(ctx, city, dateSlot, intro)
}

func (a *GetWeather) current(ctx context.Context, city, intro string) models.ActionResponse {
	cond, err := a.provider.Current(ctx, city)
	if errors.Is(err, openweather.ErrCityNotFound) {
		return say(fmt.Sprintf("Città '%s' non trovata.", displayCity(city)))
	}
	if err != nil {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("current weather fetch failed")
		return say(msgWeatherUnavailable)
	}

	desc := cond.Description()
	visibilityKm := int(math.Round(float64(cond.Visibility) / 1000))

	message := fmt.Sprintf(
		"Oggi a %s, %s %s, la temperatura è di %.0f °C (percepiti %.0f °C). "+
			"L'umidità è al %d%%, la pressione a %d hPa e il vento soffia a %.1f m/s. "+
			"La visibilità è di circa %d km e la copertura nuvolosa al %d%%.",
		intro, desc, emoji(desc),
		cond.Main.Temp, cond.Main.FeelsLike,
		cond.Main.Humidity, cond.Main.Pressure, cond.Wind.Speed,
		visibilityKm, cond.Clouds.All,
	)
	return say(message)
}

func (a *GetWeather) forecast(ctx context.Context, city, dateSlot, intro string) models.ActionResponse {
	fc, err := a.provider.Forecast(ctx, city)
	if errors.Is(err, openweather.ErrCityNotFound) {
		return say(fmt.Sprintf("Città '%s' non trovata.", displayCity(city)))
	}
	if err != nil || len(fc.List) == 0 {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("forecast fetch failed")
		return say("Non sono disponibili previsioni per quella data.")
	}

	localToday := forecast.ToLocal(fc.City.Timezone, a.now())
	target := timeslot.ResolveDate(dateSlot, localToday)

	entries := forecast.DayEntries(fc, target)
	if len(entries) == 0 {
		return say(fmt.Sprintf("Non ho trovato previsioni per %s.", capitalizeFirst(dateSlot)))
	}

	morning, afternoon, evening := forecast.DayParts(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s - %s\n", timeslot.DayName(target), target.Format("02/01/2006"), intro)

	if len(morning) > 0 {
		s := forecast.FirstSummary(morning)
		fmt.Fprintf(&b,
			"In mattinata avremo %s %s, con temperature attorno ai %.0f°C, umidità al %d%% e vento a %.1f m/s.",
			s.Description, emoji(s.Description), s.Temp, s.Humidity, s.Wind)
	}
	if len(afternoon) > 0 {
		s := forecast.FirstSummary(afternoon)
		fmt.Fprintf(&b,
			" Durante il pomeriggio il cielo tenderà a essere %s %s, con punte di %.0f°C, umidità al %d%% e brezze a %.1f m/s.",
			s.Description, emoji(s.Description), s.Temp, s.Humidity, s.Wind)
	}
	if len(evening) > 0 {
		s := forecast.FirstSummary(evening)
		fmt.Fprintf(&b,
			" In serata ci aspettiamo %s %s, temperature in calo verso i %.0f°C, umidità al %d%% e vento a %.1f m/s.",
			s.Description, emoji(s.Description), s.Temp, s.Humidity, s.Wind)
	}

	return say(b.String())
}

// cityIntro decorates the city name with region and country when the
// reference dataset knows it.
func cityIntro(ctx context.Context, places placesStore, city string) string {
	info, err := places.GetCity(ctx, city)
	if err != nil {
		return displayCity(city) + ":"
	}
	return fmt.Sprintf("%s (%s, %s)", info.Name, info.Region, info.Country)
}
