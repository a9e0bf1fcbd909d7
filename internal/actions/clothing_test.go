package actions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/climabot/meteo-actions/internal/forecast"
)

func newClothingAdvice(provider *stubProvider) *ClothingAdvice {
	a := NewClothingAdvice(provider, zerolog.Nop())
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestClothingAdvice_MissingCity(t *testing.T) {
	a := newClothingAdvice(&stubProvider{})

	resp := a.Run(context.Background(), tracker(nil))
	assert.Equal(t, "Per favore, dimmi per quale città.", firstText(t, resp))
}

func TestClothingAdvice_FullDay(t *testing.T) {
	provider := &stubProvider{
		forecast: romeForecast(
			fcEntry(21, 9, 18.4, 3.2, 60, "cielo sereno"),
			fcEntry(21, 15, 27.6, 4.5, 45, "nubi sparse"),
			fcEntry(21, 21, 21.2, 2.1, 55, "pioggia leggera"),
		),
	}
	a := newClothingAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "roma", "date": "domani"}))
	text := firstText(t, resp)

	assert.True(t, strings.HasPrefix(text, "Per la giornata di domani a Roma:\n\n"))

	// Mild morning, calm air, long sleeves.
	assert.Contains(t, text, "Al mattino, con cielo sereno e circa 18°C e aria calma")
	assert.Contains(t, text, "una maglia a maniche lunghe e pantaloni lunghi")

	// Warm breezy afternoon: summer outfit plus the bandana extra.
	assert.Contains(t, text, "A metà pomeriggio")
	assert.Contains(t, text, "brezza leggera a 4.5 m/s")
	assert.Contains(t, text, "un top in lino o tessuto tecnico")
	assert.Contains(t, text, "una bandana leggera può fare la differenza")

	// Rainy evening adds umbrella gear.
	assert.Contains(t, text, "Verso sera")
	assert.Contains(t, text, "Non dimenticare di portare un ombrello e un impermeabile leggero.")
}

func TestClothingAdvice_ColdMorningOutfit(t *testing.T) {
	provider := &stubProvider{
		forecast: romeForecast(fcEntry(21, 9, 4.0, 9.5, 70, "neve debole")),
	}
	a := newClothingAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "torino", "date": "domani"}))
	text := firstText(t, resp)

	assert.Contains(t, text, "vento sostenuto a 9.5 m/s")
	assert.Contains(t, text, "un cappotto caldo, un maglione in lana e pantaloni lunghi")
	assert.Contains(t, text, "stivali o scarpe impermeabili")
}

func TestClothingAdvice_NoUsefulEntries(t *testing.T) {
	provider := &stubProvider{
		forecast: romeForecast(fcEntry(21, 12, 25, 3, 50, "cielo sereno")),
	}
	a := newClothingAdvice(provider)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "roma", "date": "sabato"}))
	assert.Equal(t, "Non ho previsioni utili per «sabato».", firstText(t, resp))
}

func TestOutfitParagraph_HeatExtras(t *testing.T) {
	text := outfitParagraph(forecast.Segment{
		Name:     "Pomeriggio",
		AvgTemp:  31,
		AvgWind:  2,
		Dominant: "cielo sereno",
	})

	assert.Contains(t, text, "aria calma")
	assert.Contains(t, text, "ricorda di fare pause all'ombra e mantenerti idratato")
	assert.NotContains(t, text, "ombrello")
}
