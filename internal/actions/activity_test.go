package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climabot/meteo-actions/internal/models"
)

func newActivityAdvice(provider *stubProvider) *ActivityAdvice {
	a := NewActivityAdvice(provider, zerolog.Nop())
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestActivityAdvice_MissingSlots(t *testing.T) {
	a := newActivityAdvice(&stubProvider{})

	resp := a.Run(context.Background(), tracker(nil))
	assert.Equal(t, "❓ Per favore, indicami una città.", firstText(t, resp))

	resp = a.Run(context.Background(), tracker(map[string]interface{}{"city": "roma"}))
	assert.Equal(t, msgAskActivity, firstText(t, resp))
}

func TestActivityAdvice_GoodRunNow(t *testing.T) {
	provider := &stubProvider{}
	provider.current.Weather = []models.WeatherDesc{{Description: "cielo sereno"}}
	provider.current.Main.Temp = 22
	provider.current.Main.FeelsLike = 22.5
	provider.current.Main.Humidity = 50
	provider.current.Wind.Speed = 2

	a := newActivityAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{
		"city": "roma", "date": "oggi", "activity": "corsa",
	}))
	text := firstText(t, resp)

	assert.Contains(t, text, "Oggi a Roma: corsa ok ✅")
	assert.Contains(t, text, "Cielo sereno, 22.0°C, vento 7 km/h e umidità 50%")
	assert.Contains(t, text, "ottimo momento per correre")
	assert.NotContains(t, text, "In alternativa")

	// The activity slot persists across turns.
	require.Len(t, resp.Events, 1)
	assert.Equal(t, models.NewSlotEvent("activity", "corsa"), resp.Events[0])
}

func TestActivityAdvice_RainyPicnicTomorrow(t *testing.T) {
	entry := fcEntry(21, 15, 22, 3, 70, "pioggia leggera")
	entry.Pop = 0.8
	provider := &stubProvider{forecast: romeForecast(entry)}

	a := newActivityAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{
		"city": "roma", "date": "domani pomeriggio", "activity": "picnic",
	}))
	text := firstText(t, resp)

	assert.Contains(t, text, "meglio evitare picnic ❌")
	assert.Contains(t, text, "poco confortevole per un picnic")
	assert.Contains(t, text, "porta k-way o impermeabile")
	assert.Contains(t, text, "In alternativa puoi optare per passeggiata breve tra le schiarite 🚶, brunch al coperto 🥐 o museo 📚.")
}

func TestActivityAdvice_HotRunGetsTimeHint(t *testing.T) {
	provider := &stubProvider{}
	provider.current.Weather = []models.WeatherDesc{{Description: "cielo sereno"}}
	provider.current.Main.Temp = 31
	provider.current.Main.FeelsLike = 31
	provider.current.Main.Humidity = 40
	provider.current.Wind.Speed = 1

	a := newActivityAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{
		"city": "roma", "activity": "running",
	}))
	text := firstText(t, resp)

	assert.Contains(t, text, "running fattibile con qualche accortezza ⚠️")
	assert.Contains(t, text, "Orario migliore: 7–10 o dopo le 19.")
}

func TestActivityAdvice_FetchFailureKeepsSlot(t *testing.T) {
	provider := &stubProvider{forecastErr: errors.New("provider down")}
	a := newActivityAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{
		"city": "roma", "date": "domani", "activity": "bici",
	}))

	assert.Equal(t, "😕 Scusami, non ho previsioni per “domani” a Roma.", firstText(t, resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, models.NewSlotEvent("activity", "bici"), resp.Events[0])
}

func TestScoreActivity(t *testing.T) {
	testCases := []struct {
		name     string
		activity string
		temp     float64
		windKmh  float64
		humidity int
		isPrecip bool
		want     verdict
	}{
		{"bike in rain", "bicicletta", 18, 10, 60, true, verdictNo},
		{"bike in strong wind", "giro in bici", 18, 45, 60, false, verdictNo},
		{"bike in cold", "ciclismo", 4, 10, 60, false, verdictCaution},
		{"bike in good weather", "bici", 22, 10, 50, false, verdictOK},
		{"walk in light rain", "passeggiata", 18, 10, 70, true, verdictCaution},
		{"walk in rain and wind", "camminata", 18, 35, 70, true, verdictNo},
		{"picnic too cold", "picnic", 12, 5, 50, false, verdictNo},
		{"yoga outdoors fine", "yoga", 24, 10, 50, false, verdictOK},
		{"unknown activity decent weather", "arrampicata", 20, 10, 50, false, verdictOK},
		{"unknown activity hot", "arrampicata", 33, 10, 50, false, verdictCaution},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := scoreActivity(tc.activity, tc.temp, tc.temp, tc.windKmh, tc.humidity, tc.isPrecip)
			assert.Equal(t, tc.want, got)
		})
	}
}
