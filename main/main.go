package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/climabot/meteo-actions/internal/app"
	"github.com/climabot/meteo-actions/internal/config"
	metricsSvc "github.com/climabot/meteo-actions/internal/services/metrics"
	"github.com/climabot/meteo-actions/pkg/logger"
)

const serviceName = "meteo-actions"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.New(cfg.LogsPath, serviceName)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	met := metricsSvc.NewMetrics("meteo_actions")

	application := app.New(*cfg, l, met)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		log.Panicf("application failed to run: %v", err)
	}
}
