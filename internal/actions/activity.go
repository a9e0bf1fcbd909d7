package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/forecast"
	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/timeslot"
)

// ActivityAdvice judges whether an outdoor activity fits the expected
// conditions and suggests alternatives when it does not.
type ActivityAdvice struct {
	provider weatherProvider
	logger   zerolog.Logger
	now      func() time.Time
}

func NewActivityAdvice(provider weatherProvider, logger zerolog.Logger) *ActivityAdvice {
	return &ActivityAdvice{
		provider: provider,
		logger:   logger.With().Str("action", "action_activity_advice").Logger(),
		now:      time.Now,
	}
}

func (a *ActivityAdvice) Name() string { return "action_activity_advice" }

func (a *ActivityAdvice) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	dateRaw := tracker.Slot(slotDate)
	if dateRaw == "" {
		dateRaw = "oggi"
	}
	activity := tracker.Slot(slotActivity)

	if city == "" {
		return say("❓ Per favore, indicami una città.")
	}
	if activity == "" {
		return say(msgAskActivity)
	}

	events := []models.Event{models.NewSlotEvent(slotActivity, activity)}

	snap, label, ok := a.fetch(ctx, city, dateRaw)
	if !ok {
		resp := say(fmt.Sprintf("😕 Scusami, non ho previsioni per “%s” a %s.", dateRaw, displayCity(city)))
		resp.Events = events
		return resp
	}

	resp := say(buildActivityMessage(label, snap, activity))
	resp.Events = events
	return resp
}

// snapshot is the single weather picture an activity verdict is based on.
type snapshot struct {
	Temp     float64
	Feels    float64
	Humidity int
	WindMS   float64
	Desc     string
	Pop      float64
	RainMM   float64
	SnowMM   float64
}

// fetch returns the weather snapshot and a human label for the
// requested date: current conditions for "now" phrases, otherwise the
// forecast sample closest to the desired hour.
func (a *ActivityAdvice) fetch(ctx context.Context, city, dateRaw string) (snapshot, string, bool) {
	if timeslot.IsNow(dateRaw) {
		cond, err := a.provider.Current(ctx, city)
		if err != nil {
			a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("current weather fetch failed")
			return snapshot{}, "", false
		}
		return snapshot{
			Temp:     cond.Main.Temp,
			Feels:    cond.Main.FeelsLike,
			Humidity: cond.Main.Humidity,
			WindMS:   cond.Wind.Speed,
			Desc:     cond.Description(),
			RainMM:   firstNonZero(cond.Rain.OneH, cond.Rain.ThreeH),
			SnowMM:   firstNonZero(cond.Snow.OneH, cond.Snow.ThreeH),
		}, "Oggi a " + displayCity(city), true
	}

	fc, err := a.provider.Forecast(ctx, city)
	if err != nil || len(fc.List) == 0 {
		a.logger.Error().Err(err).Ctx(ctx).Str("city", city).Msg("forecast fetch failed")
		return snapshot{}, "", false
	}

	localToday := forecast.ToLocal(fc.City.Timezone, a.now())
	target := timeslot.ResolveDate(dateRaw, localToday)

	entries := forecast.DayEntries(fc, target)
	if len(entries) == 0 {
		return snapshot{}, "", false
	}

	desiredHour := 12
	if h, ok := timeslot.DesiredHour(dateRaw); ok {
		desiredHour = h
	}
	sample, _ := forecast.Nearest(entries, desiredHour)
	e := sample.Entry

	return snapshot{
		Temp:     e.Main.Temp,
		Feels:    e.Main.FeelsLike,
		Humidity: e.Main.Humidity,
		WindMS:   e.Wind.Speed,
		Desc:     e.Description(),
		Pop:      e.Pop,
		RainMM:   firstNonZero(e.Rain.OneH, e.Rain.ThreeH),
		SnowMM:   firstNonZero(e.Snow.OneH, e.Snow.ThreeH),
	}, fmt.Sprintf("%s a %s", capitalizeFirst(dateRaw), displayCity(city)), true
}

func buildActivityMessage(label string, s snapshot, activity string) string {
	windKmh := s.WindMS * 3.6

	isPrecip := containsAny(strings.ToLower(s.Desc), []string{"pioggia", "rain", "rovesci", "temporale", "neve"}) ||
		s.Pop >= 0.5 || s.RainMM > 0 || s.SnowMM > 0

	verdict, tips := scoreActivity(activity, s.Temp, s.Feels, windKmh, s.Humidity, isPrecip)

	var verdictText string
	switch verdict {
	case verdictOK:
		verdictText = fmt.Sprintf("%s ok ✅", activity)
	case verdictCaution:
		verdictText = fmt.Sprintf("%s fattibile con qualche accortezza ⚠️", activity)
	default:
		verdictText = fmt.Sprintf("meglio evitare %s ❌", activity)
	}

	cond := formatConditions(s, windKmh)

	var timeHint string
	if (s.Temp >= 30 || s.Feels >= 30) && verdict != verdictNo {
		timeHint = " Orario migliore: 7–10 o dopo le 19."
	}

	var altSentence string
	if verdict != verdictOK {
		if alts := suggestAlternatives(activity, isPrecip, windKmh, s.Temp); len(alts) > 0 {
			altSentence = " In alternativa puoi optare per " + humanJoin(alts, ", ", " o ") + "."
		}
	}

	msg := fmt.Sprintf("%s: %s (%s).", label, verdictText, cond)
	if tips != "" {
		msg += " " + tips + "."
	}
	return msg + timeHint + altSentence
}

func formatConditions(s snapshot, windKmh float64) string {
	var parts []string
	if s.Desc != "" {
		parts = append(parts, capitalizeFirst(s.Desc))
	} else {
		parts = append(parts, "Meteo variabile")
	}
	parts = append(parts, fmt.Sprintf("%.1f°C", s.Temp))
	if diff := s.Feels - s.Temp; diff >= 1.0 || diff <= -1.0 {
		parts = append(parts, fmt.Sprintf("percepita %.1f°C", s.Feels))
	}
	parts = append(parts, fmt.Sprintf("vento %.0f km/h", windKmh))
	parts = append(parts, fmt.Sprintf("umidità %d%%", s.Humidity))
	if s.RainMM > 0 {
		parts = append(parts, fmt.Sprintf("pioggia %.1f mm", s.RainMM))
	}
	if s.SnowMM > 0 {
		parts = append(parts, fmt.Sprintf("neve %.1f mm", s.SnowMM))
	}
	return humanJoin(parts, ", ", " e ")
}

type verdict string

const (
	verdictOK      verdict = "ok"
	verdictCaution verdict = "caution"
	verdictNo      verdict = "no"
)

// scoreActivity applies per-activity-family comfort thresholds and
// returns the verdict plus a semicolon-joined tip list.
func scoreActivity(activity string, temp, feels, windKmh float64, humidity int, isPrecip bool) (verdict, string) {
	a := strings.ToLower(strings.TrimSpace(activity))
	hot := temp >= 29
	cold := temp <= 6
	veryCold := temp <= 2
	windy := windKmh >= 30
	veryWindy := windKmh >= 40

	baseTips := func() []string {
		var tips []string
		if hot {
			tips = append(tips, "preferisci mattino presto o sera e idratati")
		}
		if cold {
			tips = append(tips, "vestiti a strati; scalda mani e orecchie")
		}
		if windy {
			tips = append(tips, "scegli percorsi riparati dal vento")
		}
		if humidity >= 80 && hot {
			tips = append(tips, "rallenta il ritmo: umidità alta")
		}
		if isPrecip {
			tips = append(tips, "porta k-way o impermeabile")
		}
		return tips
	}

	packTips := func(extra string) string {
		tips := baseTips()
		if extra != "" {
			tips = append([]string{extra}, tips...)
		}
		return strings.Join(tips, "; ")
	}

	switch {
	case strings.Contains(a, "cicl") || strings.Contains(a, "bici"):
		if isPrecip || veryWindy || hot {
			return verdictNo, packTips("oggi la bici è sconsigliata")
		}
		if windy || cold {
			return verdictCaution, packTips("ok, ma attenzione a folate e freddo")
		}
		return verdictOK, packTips("condizioni buone")

	case strings.Contains(a, "corr") || strings.Contains(a, "corsa") || strings.Contains(a, "running"):
		veryHot := temp >= 32 || feels >= 33
		hotish := temp >= 30 || feels >= 30
		if veryHot {
			return verdictNo, packTips("meglio evitare la corsa nelle ore calde; sposta a mattino presto o sera")
		}
		if hotish {
			return verdictCaution, packTips("ok solo a ritmo facile e fuori dal picco caldo (7–10 / dopo le 19)")
		}
		if (humidity >= 75 && temp >= 28) || veryWindy {
			return verdictNo, packTips("condizioni gravose per correre")
		}
		if isPrecip || windy || cold {
			return verdictCaution, packTips("ok, ma scegli tratti riparati")
		}
		return verdictOK, packTips("ottimo momento per correre")

	case strings.Contains(a, "passegg") || strings.Contains(a, "cammin"):
		if isPrecip && (windy || veryCold) {
			return verdictNo, packTips("oggi la passeggiata non è ideale")
		}
		if isPrecip || hot || cold {
			return verdictCaution, packTips("ok, ma valuta durata e ripari")
		}
		return verdictOK, packTips("perfetto per una camminata")

	case strings.Contains(a, "picnic"):
		if isPrecip || windKmh >= 25 || temp < 15 || temp > 30 {
			return verdictNo, packTips("poco confortevole per un picnic")
		}
		return verdictOK, "trova ombra, porta acqua e repellente"

	case strings.Contains(a, "yoga"):
		if isPrecip || windKmh >= 35 || temp <= 5 || temp >= 33 {
			return verdictCaution, packTips("meglio yoga indoor oggi")
		}
		return verdictOK, "scegli un punto all'ombra e tappetino antiscivolo"
	}

	if isPrecip || windy || hot || cold {
		return verdictCaution, packTips("meteo un po' impegnativo")
	}
	return verdictOK, packTips("condizioni buone")
}

// suggestAlternatives proposes fallback activities matching the
// weather that made the verdict cautious or negative.
func suggestAlternatives(activity string, isPrecip bool, windKmh, temp float64) []string {
	a := strings.ToLower(strings.TrimSpace(activity))
	hot := temp >= 29
	cold := temp <= 6
	windy := windKmh >= 30

	switch {
	case (strings.Contains(a, "cicl") || strings.Contains(a, "bici")) && (windy || isPrecip):
		return []string{"spinning 🚴‍♂️", "passeggiata in parco riparato 🌳", "nuoto 🏊"}

	case (strings.Contains(a, "corr") || strings.Contains(a, "corsa") || strings.Contains(a, "running")) && (hot || isPrecip || windy):
		return []string{"tapis roulant 🏃‍♂️", "camminata veloce all'ombra 🌳", "nuoto 🏊"}

	case strings.Contains(a, "picnic"):
		if isPrecip {
			return []string{"passeggiata breve tra le schiarite 🚶", "brunch al coperto 🥐", "museo 📚"}
		}
		return []string{"passeggiata all'ombra 🌳", "brunch al coperto 🥐", "museo 📚"}

	case (strings.Contains(a, "passegg") || strings.Contains(a, "cammin")) && (isPrecip || cold):
		return []string{"visita museo 📚", "piscina 🏊", "yoga indoor 🧘"}
	}

	if isPrecip || windy || hot || cold {
		return []string{"yoga indoor 🧘", "palestra/HIIT 🏋️", "arrampicata indoor 🧗", "piscina 🏊"}
	}
	return []string{"bicicletta 🚴", "corsa leggera 🏃", "camminata collinare ⛰️"}
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
