package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
)

// ErrCityNotFound is returned when the provider reports an unknown city.
var ErrCityNotFound = errors.New("city not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the OpenWeatherMap REST endpoints with metric units
// and Italian condition descriptions.
type Client struct {
	apiKey  string
	baseURL string
	geoURL  string
	client  HTTPClient
	logger  zerolog.Logger
}

func NewClient(apiKey, baseURL, geoURL string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		geoURL:  geoURL,
		client:  httpClient,
		logger:  logger.With().Str("component", "OpenWeatherClient").Logger(),
	}
}

// Current fetches current conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (models.Conditions, error) {
	var out models.Conditions
	err := c.get(ctx, c.baseURL+"/weather", url.Values{"q": {city}}, &out)
	return out, err
}

// Forecast fetches the 5-day/3-hour forecast for a city.
func (c *Client) Forecast(ctx context.Context, city string) (models.Forecast, error) {
	var out models.Forecast
	err := c.get(ctx, c.baseURL+"/forecast", url.Values{"q": {city}}, &out)
	return out, err
}

// AirPollution fetches the current air-pollution measurement for coordinates.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (models.AirPollution, error) {
	params := url.Values{
		"lat": {fmt.Sprintf("%g", lat)},
		"lon": {fmt.Sprintf("%g", lon)},
	}
	var out models.AirPollution
	err := c.get(ctx, c.baseURL+"/air_pollution", params, &out)
	return out, err
}

// Geocode resolves a city name into coordinates via the direct
// geocoding endpoint. An empty result set maps to ErrCityNotFound.
func (c *Client) Geocode(ctx context.Context, city string) (models.GeoPlace, error) {
	var out []models.GeoPlace
	if err := c.get(ctx, c.geoURL+"/direct", url.Values{"q": {city}, "limit": {"1"}}, &out); err != nil {
		return models.GeoPlace{}, err
	}
	if len(out) == 0 {
		return models.GeoPlace{}, fmt.Errorf("geocode %q: %w", city, ErrCityNotFound)
	}
	return out[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	start := time.Now()

	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "it")
	reqURL := endpoint + "?" + params.Encode()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Msg("starting OpenWeatherMap request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error().Err(err).
			Str("endpoint", endpoint).
			Msg("failed to create HTTP request")
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("endpoint", endpoint).
			Msg("error sending HTTP request to OpenWeatherMap")
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().Err(cerr).
				Str("endpoint", endpoint).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", endpoint, ErrCityNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Str("endpoint", endpoint).
			Str("status", resp.Status).
			Msg("OpenWeatherMap API returned non-200 status")
		return fmt.Errorf("OpenWeatherMap error: status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).
			Str("endpoint", endpoint).
			Msg("failed to decode OpenWeatherMap response")
		return err
	}

	c.logger.Info().
		Str("endpoint", endpoint).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched weather data")
	return nil
}
