package actions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
)

func newGetWeather(provider *stubProvider, places *stubPlaces) *GetWeather {
	a := NewGetWeather(provider, places, zerolog.Nop())
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestGetWeather_MissingCity(t *testing.T) {
	a := newGetWeather(&stubProvider{}, &stubPlaces{cityErr: errStubNotFound})

	resp := a.Run(context.Background(), tracker(nil))
	assert.Equal(t, msgAskCity, firstText(t, resp))
}

func TestGetWeather_Current(t *testing.T) {
	provider := &stubProvider{}
	provider.current.Name = "Roma"
	provider.current.Weather = []models.WeatherDesc{{Description: "cielo sereno"}}
	provider.current.Main.Temp = 24.3
	provider.current.Main.FeelsLike = 25.1
	provider.current.Main.Humidity = 55
	provider.current.Main.Pressure = 1013
	provider.current.Wind.Speed = 3.2
	provider.current.Visibility = 10000
	provider.current.Clouds.All = 20

	places := &stubPlaces{city: models.City{Name: "Roma", Region: "Lazio", Country: "Italia"}}
	a := newGetWeather(provider, places)

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "roma", "date": "oggi"}))

	want := "Oggi a Roma (Lazio, Italia), cielo sereno ☀️, la temperatura è di 24 °C (percepiti 25 °C). " +
		"L'umidità è al 55%, la pressione a 1013 hPa e il vento soffia a 3.2 m/s. " +
		"La visibilità è di circa 10 km e la copertura nuvolosa al 20%."
	assert.Equal(t, want, firstText(t, resp))
}

func TestGetWeather_CurrentCityNotFound(t *testing.T) {
	provider := &stubProvider{currentErr: fmt.Errorf("weather: %w", openweather.ErrCityNotFound)}
	a := newGetWeather(provider, &stubPlaces{cityErr: errStubNotFound})

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "atlantide"}))
	assert.Equal(t, "Città 'Atlantide' non trovata.", firstText(t, resp))
}

func TestGetWeather_ForecastNarrative(t *testing.T) {
	provider := &stubProvider{
		forecast: romeForecast(
			fcEntry(21, 9, 18.4, 3.2, 60, "cielo sereno"),
			fcEntry(21, 15, 27.6, 4.5, 45, "nubi sparse"),
			fcEntry(21, 21, 21.2, 2.1, 55, "pioggia leggera"),
		),
	}
	a := newGetWeather(provider, &stubPlaces{cityErr: errStubNotFound})

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "milano", "date": "domani"}))

	want := "Giovedì 21/08/2025 - Milano:\n" +
		"In mattinata avremo cielo sereno ☀️, con temperature attorno ai 18°C, umidità al 60% e vento a 3.2 m/s." +
		" Durante il pomeriggio il cielo tenderà a essere nubi sparse 🌥️, con punte di 28°C, umidità al 45% e brezze a 4.5 m/s." +
		" In serata ci aspettiamo pioggia leggera 🌧️, temperature in calo verso i 21°C, umidità al 55% e vento a 2.1 m/s."
	assert.Equal(t, want, firstText(t, resp))
}

func TestGetWeather_ForecastNoEntriesForDate(t *testing.T) {
	provider := &stubProvider{
		forecast: romeForecast(fcEntry(21, 12, 25, 3, 50, "cielo sereno")),
	}
	a := newGetWeather(provider, &stubPlaces{cityErr: errStubNotFound})

	// Next Monday is beyond the fixture's single forecast day.
	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "roma", "date": "lunedì"}))
	assert.Equal(t, "Non ho trovato previsioni per Lunedì.", firstText(t, resp))
}

func TestGetWeather_ForecastUnavailable(t *testing.T) {
	provider := &stubProvider{forecastErr: errors.New("provider down")}
	a := newGetWeather(provider, &stubPlaces{cityErr: errStubNotFound})

	resp := a.Run(context.Background(), tracker(map[string]interface{}{"city": "roma", "date": "domani"}))
	assert.Equal(t, "Non sono disponibili previsioni per quella data.", firstText(t, resp))
}
