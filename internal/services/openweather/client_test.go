//go:build unit

package openweather_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/openweather"
	"github.com/climabot/meteo-actions/pkg/logger"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok {
		return &http.Response{}, args.Error(1)
	}
	return resp, args.Error(1)
}

func newTestClient(t *testing.T, m openweather.HTTPClient) *openweather.Client {
	t.Helper()
	l, err := logger.New("", "openweather_test")
	require.NoError(t, err)
	return openweather.NewClient("1234567890", "", "", m, l)
}

func Test_Current_Success(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		q := req.URL.Query()
		return q.Get("q") == "Roma" &&
			q.Get("units") == "metric" &&
			q.Get("lang") == "it" &&
			q.Get("appid") == "1234567890"
	})).Return(
		&http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(
				`{
				  "main": {
					"temp": 24.3,
					"feels_like": 25.1,
					"pressure": 1013,
					"humidity": 55
				  },
				  "weather": [
					{
					  "main": "Clear",
					  "description": "cielo sereno"
					}
				  ],
				  "timezone": 7200,
				  "name": "Roma"
				}`)),
		}, nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	client := newTestClient(t, m)

	data, err := client.Current(context.Background(), "Roma")
	assert.NoError(t, err)
	assert.Equal(t, "Roma", data.Name)
	assert.Equal(t, 24.3, data.Main.Temp)
	assert.Equal(t, "cielo sereno", data.Description())
	assert.Equal(t, 7200, data.Timezone)
}

func Test_Current_CityNotFound(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.Anything).Return(
		&http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`{"cod":"404","message":"city not found"}`)),
		}, nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	client := newTestClient(t, m)

	data, err := client.Current(context.Background(), "Atlantide")
	assert.ErrorIs(t, err, openweather.ErrCityNotFound)
	assert.Equal(t, models.Conditions{}, data)
}

func Test_Forecast_APIError(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.Anything).Return(
		&http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader(`{"error": "internal server error"}`)),
		}, nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	client := newTestClient(t, m)

	data, err := client.Forecast(context.Background(), "Roma")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, openweather.ErrCityNotFound)
	assert.Empty(t, data.List)
}

func Test_AirPollution_Success(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		q := req.URL.Query()
		return q.Get("lat") == "41.9" && q.Get("lon") == "12.5"
	})).Return(
		&http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(
				`{"list":[{"main":{"aqi":2},"components":{"pm2_5":8.4,"no2":14.1}}]}`)),
		}, nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	client := newTestClient(t, m)

	data, err := client.AirPollution(context.Background(), 41.9, 12.5)
	require.NoError(t, err)
	require.Len(t, data.List, 1)
	assert.Equal(t, 2, data.List[0].Main.AQI)
	assert.Equal(t, 8.4, data.List[0].Components["pm2_5"])
}

func Test_Geocode_EmptyResult(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.Anything).Return(
		&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`[]`)),
		}, nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	client := newTestClient(t, m)

	_, err := client.Geocode(context.Background(), "Atlantide")
	assert.ErrorIs(t, err, openweather.ErrCityNotFound)
}

func Test_Geocode_FirstResultWins(t *testing.T) {
	m := &mockHTTPClient{}

	m.On("Do", mock.Anything).Return(
		&http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(
				`[{"name":"Roma","lat":41.89,"lon":12.48,"country":"IT","state":"Lazio"},
				  {"name":"Rome","lat":43.21,"lon":-75.45,"country":"US","state":"New York"}]`)),
		}, nil).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	client := newTestClient(t, m)

	place, err := client.Geocode(context.Background(), "Roma")
	require.NoError(t, err)
	assert.Equal(t, "Roma", place.Name)
	assert.Equal(t, "IT", place.Country)
	assert.Equal(t, 41.89, place.Lat)
}
