package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
)

// AirQuality reports the current air-pollution measurement for a city:
// overall AQI plus a qualified line per pollutant.
type AirQuality struct {
	provider weatherProvider
	logger   zerolog.Logger
}

func NewAirQuality(provider weatherProvider, logger zerolog.Logger) *AirQuality {
	return &AirQuality{
		provider: provider,
		logger:   logger.With().Str("action", "action_get_air_quality").Logger(),
	}
}

func (a *AirQuality) Name() string { return "action_get_air_quality" }

var aqiLabels = map[int]string{
	1: "Buona",
	2: "Moderata",
	3: "Scadente",
	4: "Povera",
	5: "Molto povera",
}

// pollutantOrder fixes the rendering order of the components block.
var pollutantOrder = []string{"co", "no", "no2", "o3", "so2", "nh3", "pm2_5", "pm10"}

type qualityBand struct {
	max   float64
	label string
}

const noCeiling = 1 << 20

// Qualitative thresholds in µg/m³.
var pollutantBands = map[string][]qualityBand{
	"pm2_5": {{25, "buono"}, {50, "moderato"}, {noCeiling, "scadente"}},
	"pm10":  {{50, "buono"}, {100, "moderato"}, {noCeiling, "scadente"}},
	"no2":   {{40, "buono"}, {90, "moderato"}, {noCeiling, "scadente"}},
	"o3":    {{60, "buono"}, {120, "moderato"}, {noCeiling, "scadente"}},
	"so2":   {{20, "buono"}, {80, "moderato"}, {noCeiling, "scadente"}},
	"co":    {{10000, "buono"}, {noCeiling, "moderato"}},
	"nh3":   {{200, "buono"}, {noCeiling, "moderato"}},
}

var pollutantDescriptions = map[string]string{
	"co":    "Monossido di Carbonio, gas incolore e inodore prodotto da combustione incompleta",
	"no":    "Monossido di Azoto, emesso da traffico e riscaldamento",
	"no2":   "Diossido di Azoto, irritante per le vie respiratorie, da veicoli diesel",
	"o3":    "Ozono, ossidante secondario, può causare irritazioni",
	"so2":   "Diossido di Zolfo, da combustione di carbone e petrolio",
	"nh3":   "Ammoniaca, da attività agricole, contribuisce al particolato",
	"pm2_5": "Particolato fine, penetra in profondità nei polmoni",
	"pm10":  "Particolato grosso, irrita le vie aeree",
}

func (a *AirQuality) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	if city == "" {
		return say("Per favore, dimmi prima una città.")
	}

	place, err := a.provider.Geocode(ctx, city)
	if errors.Is(err, openweather.ErrCityNotFound) {
		return say(fmt.Sprintf("Città '%s' non trovata.", displayCity(city)))
	}
	if err != nil {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("geocoding failed")
		return say(msgWeatherUnavailable)
	}

	air, err := a.provider.AirPollution(ctx, place.Lat, place.Lon)
	if err != nil {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("air pollution fetch failed")
		return say("⚠️ Servizio qualità dell'aria non disponibile al momento.")
	}
	if len(air.List) == 0 {
		return say("Non ci sono dati di qualità dell'aria per questa località.")
	}

	sample := air.List[0]
	aqiText, ok := aqiLabels[sample.Main.AQI]
	if !ok {
		aqiText = "N/D"
	}

	lines := []string{
		fmt.Sprintf("Qualità dell'aria a %s:", displayCity(city)),
		fmt.Sprintf("• AQI: %s", aqiText),
	}
	for _, p := range pollutantOrder {
		desc := pollutantDescriptions[p]
		value, ok := sample.Components[p]
		if !ok {
			lines = append(lines, fmt.Sprintf("• %s: N/D – %s", strings.ToUpper(p), desc))
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %.1f µg/m³ (%s) – %s",
			strings.ToUpper(p), value, qualify(p, value), desc))
	}

	return say(strings.Join(lines, "\n"))
}

func qualify(pollutant string, value float64) string {
	for _, band := range pollutantBands[pollutant] {
		if value <= band.max {
			return band.label
		}
	}
	return "N/D"
}
