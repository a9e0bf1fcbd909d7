package models

// WeatherDesc is the condition block OpenWeatherMap attaches to every sample.
type WeatherDesc struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Precipitation struct {
	OneH   float64 `json:"1h"`
	ThreeH float64 `json:"3h"`
}

// Conditions mirrors the current-weather endpoint payload.
type Conditions struct {
	Coord   Coord         `json:"coord"`
	Weather []WeatherDesc `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain Precipitation `json:"rain"`
	Snow Precipitation `json:"snow"`
	Sys  struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	// Timezone is the UTC offset of the location, in seconds.
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

// Description returns the primary condition description, if any.
func (c Conditions) Description() string {
	if len(c.Weather) == 0 {
		return ""
	}
	return c.Weather[0].Description
}

// ForecastEntry is one 3-hour sample of the 5-day forecast.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []WeatherDesc `json:"weather"`
	Clouds  struct {
		All int `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	// Pop is the probability of precipitation, 0..1.
	Pop  float64       `json:"pop"`
	Rain Precipitation `json:"rain"`
	Snow Precipitation `json:"snow"`
}

func (e ForecastEntry) Description() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Description
}

// Forecast mirrors the 5-day/3-hour forecast payload.
type Forecast struct {
	List []ForecastEntry `json:"list"`
	City struct {
		Name     string `json:"name"`
		Coord    Coord  `json:"coord"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// AirSample is one air-pollution measurement.
type AirSample struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	// Components maps pollutant codes (co, no2, pm2_5, ...) to µg/m³.
	Components map[string]float64 `json:"components"`
}

type AirPollution struct {
	List []AirSample `json:"list"`
}

// GeoPlace is one result of the direct geocoding endpoint.
type GeoPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}
