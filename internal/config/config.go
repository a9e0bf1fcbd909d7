package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Address     string `envconfig:"SERVER_ADDRESS" default:":8055"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME" default:"30"`
}

type DB struct {
	Source         string `envconfig:"DB_SOURCE" default:"./data/meteo.db"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_PATH" default:"./migrations"`
}

type Datasets struct {
	CitiesPath      string `envconfig:"CITIES_CSV_PATH" default:"./data/cities.csv"`
	AttractionsPath string `envconfig:"ATTRACTIONS_CSV_PATH" default:"./data/attractions.csv"`
	RefreshSpec     string `envconfig:"DATASETS_REFRESH_SPEC" default:"0 0 4 * * *"`
}

type Config struct {
	OpenWeatherAPIKey string `envconfig:"OPEN_WEATHER_MAP_API_KEY" required:"true"`
	OpenWeatherURL    string `envconfig:"OPEN_WEATHER_MAP_URL" default:"https://api.openweathermap.org/data/2.5"`
	OpenWeatherGeoURL string `envconfig:"OPEN_WEATHER_MAP_GEO_URL" default:"https://api.openweathermap.org/geo/1.0"`

	Server   Server
	Breaker  Breaker
	Redis    Redis
	DB       DB
	Datasets Datasets

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/meteo-actions.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/meteo-actions-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}
