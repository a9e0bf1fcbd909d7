package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/forecast"
	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
	"github.com/climabot/meteo-actions/internal/timeslot"
)

// ClothingAdvice builds an outfit narrative per day part from the
// averaged forecast segments.
type ClothingAdvice struct {
	provider weatherProvider
	logger   zerolog.Logger
	now      func() time.Time
}

func NewClothingAdvice(provider weatherProvider, logger zerolog.Logger) *ClothingAdvice {
	return &ClothingAdvice{
		provider: provider,
		logger:   logger.With().Str("action", "action_clothing_advice").Logger(),
		now:      time.Now,
	}
}

func (a *ClothingAdvice) Name() string { return "action_clothing_advice" }

func (a *ClothingAdvice) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	if city == "" {
		return say("Per favore, dimmi per quale città.")
	}
	dateSlot := tracker.Slot(slotDate)
	if dateSlot == "" {
		dateSlot = "oggi"
	}

	fc, err := a.provider.Forecast(ctx, city)
	if errors.Is(err, openweather.ErrCityNotFound) {
		return say(fmt.Sprintf("Città '%s' non trovata.", displayCity(city)))
	}
	if err != nil || len(fc.List) == 0 {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("forecast fetch failed")
		return say(msgWeatherUnavailable)
	}

	localToday := forecast.ToLocal(fc.City.Timezone, a.now())
	target := timeslot.ResolveDate(dateSlot, localToday)

	entries := forecast.DayEntries(fc, target)
	if len(entries) == 0 {
		return say(fmt.Sprintf("Non ho previsioni utili per «%s».", dateSlot))
	}

	segments := forecast.AveragedSegments(entries)

	paragraphs := make([]string, 0, len(segments))
	for _, seg := range segments {
		paragraphs = append(paragraphs, outfitParagraph(seg))
	}

	text := fmt.Sprintf("Per la giornata di %s a %s:\n\n", dateSlot, displayCity(city)) +
		strings.Join(paragraphs, "\n\n")
	return say(text)
}

type outfitRule struct {
	maxTemp float64
	text    string
}

var outfitRules = map[string][]outfitRule{
	"Mattino": {
		{10, "indossa un cappotto caldo, un maglione in lana e pantaloni lunghi; non dimenticare guanti e sciarpa"},
		{15, "scegli un cardigan o una giacca in pile con pantaloni lunghi e scarpe chiuse"},
		{20, "una maglia a maniche lunghe e pantaloni lunghi, accompagnati da sneakers, sono perfetti"},
		{maxTempCeiling, "una t-shirt in cotone fresco e pantaloni corti, accompagnati da sneakers traspiranti; non dimenticare occhiali da sole e un cappellino"},
	},
	"Pomeriggio": {
		{10, "indossa un piumino leggero o una giacca imbottita, pantaloni lunghi e scarpe chiuse"},
		{15, "optare per un giubbotto in pile e pantaloni lunghi è ideale"},
		{20, "una felpa leggera e pantaloni lunghi o jeans sono sufficienti; tieni a portata di mano una borraccia d'acqua"},
		{maxTempCeiling, "optare per un top in lino o tessuto tecnico e shorts leggeri è ideale; tieni a portata di mano una borraccia d'acqua e cerca qualche momento d'ombra"},
	},
	"Sera": {
		{10, "indossa un cappotto o un piumino leggero, maglione in lana e pantaloni lunghi"},
		{15, "porta un coprispalle o una giacca in pile insieme a pantaloni lunghi"},
		{20, "una camicia in lino o un maglioncino leggero con pantaloni lunghi va benissimo"},
		{maxTempCeiling, "le temperature rimarranno miti ma porta con te un coprispalle leggero o una camicia in lino da indossare al tramonto"},
	},
}

const maxTempCeiling = 1 << 10

var periodIntros = map[string]string{
	"Mattino":    "Al mattino",
	"Pomeriggio": "A metà pomeriggio",
	"Sera":       "Verso sera",
}

var (
	umbrellaWords = []string{"pioggia", "rovesci", "temporale", "acquazzone"}
	bootsWords    = []string{"neve", "grandine"}
)

// outfitParagraph renders one day-part sentence: wind wording, outfit
// by temperature band, weather-dependent extras, precipitation gear.
func outfitParagraph(seg forecast.Segment) string {
	var windStr string
	switch {
	case seg.AvgWind > 8:
		windStr = fmt.Sprintf("vento sostenuto a %.1f m/s", seg.AvgWind)
	case seg.AvgWind > 4:
		windStr = fmt.Sprintf("brezza leggera a %.1f m/s", seg.AvgWind)
	default:
		windStr = "aria calma"
	}

	intro, ok := periodIntros[seg.Name]
	if !ok {
		intro = "Durante la giornata"
	}

	rules, ok := outfitRules[seg.Name]
	if !ok {
		rules = outfitRules["Mattino"]
	}
	var outfit string
	for _, r := range rules {
		if seg.AvgTemp <= r.maxTemp {
			outfit = r.text
			break
		}
	}

	var extras []string
	if seg.Name == "Pomeriggio" && seg.AvgWind > 4 && seg.AvgTemp > 15 {
		extras = append(extras, "se senti un refolo, una bandana leggera può fare la differenza")
	}
	if seg.Name == "Mattino" && seg.AvgTemp >= 28 {
		extras = append(extras, "porta con te una bottiglia d'acqua")
	}
	if seg.Name == "Pomeriggio" && seg.AvgTemp >= 30 {
		extras = append(extras, "ricorda di fare pause all'ombra e mantenerti idratato")
	}
	if seg.Name == "Sera" && seg.AvgTemp >= 25 {
		extras = append(extras, "non dimenticare di restare idratato con un po' d'acqua")
	}

	descLower := strings.ToLower(seg.Dominant)
	var gear []string
	if containsAny(descLower, umbrellaWords) {
		gear = append(gear, "un ombrello e un impermeabile leggero")
	}
	if containsAny(descLower, bootsWords) {
		gear = append(gear, "stivali o scarpe impermeabili")
	}

	sentence := fmt.Sprintf("%s, con %s e circa %.0f°C e %s, %s",
		intro, seg.Dominant, seg.AvgTemp, windStr, outfit)
	if len(extras) > 0 {
		sentence += "; " + strings.Join(extras, "; ")
	}
	if len(gear) > 0 {
		sentence += fmt.Sprintf(". Non dimenticare di portare %s.", strings.Join(gear, " e "))
	} else {
		sentence += "."
	}
	return sentence
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
