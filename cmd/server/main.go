package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/Anand123098sitare/Weather-Insights/internal/adapter/http"
	kafkaadapter "github.com/Anand123098sitare/Weather-Insights/internal/adapter/kafka"
	"github.com/Anand123098sitare/Weather-Insights/internal/adapter/openweather"
	"github.com/Anand123098sitare/Weather-Insights/internal/adapter/scraper"
	"github.com/Anand123098sitare/Weather-Insights/internal/config"
	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
	"github.com/Anand123098sitare/Weather-Insights/internal/notify"
	"github.com/Anand123098sitare/Weather-Insights/internal/observability"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Weather provider: real OpenWeatherMap client behind a cache when a
	// key is configured, deterministic simulator otherwise.
	var provider domain.WeatherProvider
	if cfg.OpenWeatherAPIKey != "" {
		client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.ProviderTimeout, logger)
		provider = openweather.NewCachedProvider(client, cfg.ProviderCacheSize, cfg.ProviderCacheTTL, metrics)
		logger.Info("openweather provider enabled",
			"cache_size", cfg.ProviderCacheSize, "cache_ttl", cfg.ProviderCacheTTL)
	} else {
		provider = openweather.NewSimulator()
		logger.Info("no OPENWEATHER_API_KEY set, using simulated weather")
	}

	// Kafka publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher notify.Publisher
	var closePublisher func() error
	if cfg.KafkaEnabled {
		p := kafkaadapter.NewPublisher(cfg, logger)
		publisher = p
		closePublisher = p.Close
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	service := notify.New(provider, publisher, logger, metrics)
	scr := scraper.New(cfg.ScrapeTimeout, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, scr, cfg.DefaultCity, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Warm the provider and flip readiness before traffic arrives.
	go func() {
		if _, err := service.SmartNotifications(ctx, cfg.DefaultCity, cfg.ForecastDays); err != nil {
			logger.Warn("warmup fetch failed", "city", cfg.DefaultCity, "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if closePublisher != nil {
		if err := closePublisher(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
