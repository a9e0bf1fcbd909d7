package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/climabot/meteo-actions/internal/actions"
	"github.com/climabot/meteo-actions/internal/config"
	"github.com/climabot/meteo-actions/internal/handlers/webhook"
	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/repository/places"
	"github.com/climabot/meteo-actions/internal/services/cache"
	loggerT "github.com/climabot/meteo-actions/internal/services/logger"
	metricsSvc "github.com/climabot/meteo-actions/internal/services/metrics"
	"github.com/climabot/meteo-actions/internal/services/openweather"
	serviceWeather "github.com/climabot/meteo-actions/internal/services/weather"
	"github.com/climabot/meteo-actions/internal/services/weather/decorators"
	fLogger "github.com/climabot/meteo-actions/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// ServiceContainer holds initialized dependencies for the server.
type ServiceContainer struct {
	Registry  *actions.Registry
	Refresher *places.Refresher

	Router     *gin.Engine
	Srv        *http.Server
	DB         *sql.DB
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start initializes services, mounts routes, and serves until the
// context is canceled.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.init(ctx)
	if err != nil {
		return err
	}

	a.l.Info().
		Str("address", a.cfg.Server.Address).
		Msg("starting action server")

	srvContainer.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	srvContainer.Router.Use(a.m.HTTPMiddleware())

	webhookHandler := webhook.NewHandler(srvContainer.Registry, a.l, a.m)
	srvContainer.Router.POST("/webhook", webhookHandler.Run)
	srvContainer.Router.GET("/healthz", webhookHandler.Health)

	go func() {
		if serveErr := srvContainer.Srv.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			a.l.Error().Err(serveErr).Msg("HTTP server failed")
		}
	}()

	a.l.Info().Msg("action server started successfully")

	<-ctx.Done()
	a.l.Info().Msg("shutdown signal received, stopping action server")

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the scheduler, the HTTP server, and closes resources.
func (a *App) Shutdown(srvContainer *ServiceContainer) error {
	a.l.Info().Msg("stopping action server…")

	srvContainer.Refresher.Stop()
	a.l.Info().Msg("dataset refresher stopped")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	if err := srvContainer.DB.Close(); err != nil {
		a.l.Error().Err(err).Msg("DB close error")
	} else {
		a.l.Info().Msg("database closed")
	}

	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		}
	}(srvContainer.fileLogger)

	a.l.Info().Msg("shutdown complete")
	return nil
}

// init wires the provider decorator chain, the reference store, and
// the action registry without starting any server.
func (a *App) init(ctx context.Context) (*ServiceContainer, error) {
	a.l.Info().Msgf("initializing action server with config: %+v", a.cfg)

	db, err := newSqliteDB(a.cfg.DB.Source)
	if err != nil {
		return nil, err
	}
	if err := migrateSqliteDB(db, a.cfg.DB.MigrationsPath); err != nil {
		return nil, err
	}

	placesRepo := places.NewRepository(db, a.l)
	refresher := places.NewRefresher(
		placesRepo, a.l,
		a.cfg.Datasets.CitiesPath,
		a.cfg.Datasets.AttractionsPath,
		a.cfg.Datasets.RefreshSpec,
	)
	if err := refresher.Run(ctx); err != nil {
		return nil, err
	}
	if err := refresher.Start(); err != nil {
		return nil, err
	}

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		return nil, err
	}

	roundTripper := loggerT.NewRoundTripper(fileLogger)
	httpLogClient := &http.Client{Transport: roundTripper}

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	openWeather := serviceWeather.NewBreakerProvider("OpenWeather", breakerCfg,
		openweather.NewClient(
			a.cfg.OpenWeatherAPIKey,
			a.cfg.OpenWeatherURL,
			a.cfg.OpenWeatherGeoURL,
			httpLogClient,
			a.l,
		),
	)

	redisClient := newRedisConnection(a.cfg.Redis.Addr(), a.cfg.Redis.DB)
	collector := metricsSvc.NewPromCollector()
	ttl := time.Duration(a.cfg.Redis.LiveTime) * time.Minute

	provider := decorators.NewCachedProvider(
		openWeather,
		cache.NewMetricsDecorator[models.Conditions](
			cache.NewRedisClient[models.Conditions](redisClient, a.l, ttl), collector),
		cache.NewMetricsDecorator[models.Forecast](
			cache.NewRedisClient[models.Forecast](redisClient, a.l, ttl), collector),
		cache.NewMetricsDecorator[models.AirPollution](
			cache.NewRedisClient[models.AirPollution](redisClient, a.l, ttl), collector),
		cache.NewMetricsDecorator[models.GeoPlace](
			cache.NewRedisClient[models.GeoPlace](redisClient, a.l, 24*time.Hour), collector),
		a.l,
	)

	registry := actions.NewRegistry(
		actions.NewGetWeather(provider, placesRepo, a.l),
		actions.NewClothingAdvice(provider, a.l),
		actions.NewActivityAdvice(provider, a.l),
		actions.NewAirQuality(provider, a.l),
		actions.NewSunTimes(provider, a.l),
		actions.NewAttractions(placesRepo, a.l),
		actions.NewValidateWeatherForm(provider, a.l),
	)

	router := gin.New()
	router.Use(gin.Recovery())

	httpServer := &http.Server{
		Addr:        a.cfg.Server.Address,
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return &ServiceContainer{
		Registry:   registry,
		Refresher:  refresher,
		Router:     router,
		Srv:        httpServer,
		DB:         db,
		fileLogger: fileLogger,
	}, nil
}

func newSqliteDB(source string) (*sql.DB, error) {
	if source == "" {
		return nil, errors.New("database source cannot be empty")
	}
	db, err := sql.Open("sqlite", "file:"+source+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func migrateSqliteDB(db *sql.DB, migrationsPath string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, migrationsPath)
}

func newRedisConnection(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, DB: db})
}
