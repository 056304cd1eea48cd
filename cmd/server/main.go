package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/ac-cost-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ac-cost-service/internal/adapter/kafka"
	"github.com/couchcryptid/ac-cost-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/ac-cost-service/internal/adapter/zippopotam"
	"github.com/couchcryptid/ac-cost-service/internal/config"
	"github.com/couchcryptid/ac-cost-service/internal/estimator"
	"github.com/couchcryptid/ac-cost-service/internal/history"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
	"github.com/couchcryptid/ac-cost-service/internal/rates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	geocoder := zippopotam.NewCachedGeocoder(
		zippopotam.NewClient(cfg.GeocoderBaseURL, cfg.ProviderTimeout, metrics, logger),
		cfg.GeocodeCacheSize, metrics)
	weather := openmeteo.NewClient(cfg.WeatherBaseURL, cfg.HistoricalBaseURL,
		cfg.ProviderTimeout, metrics, logger)

	store, err := history.New(cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		logger.Error("failed to open history store", "path", cfg.HistoryPath, "error", err)
		os.Exit(1)
	}

	// Event publication is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher estimator.EventPublisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = kafkaWriter
		logger.Info("estimate event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("estimate event publishing disabled")
	}

	svc := estimator.New(geocoder, weather, weather, rates.New(), store, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
