package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather provider configuration. With no API key the service runs on
	// simulated data.
	OpenWeatherAPIKey string
	ProviderTimeout   time.Duration
	ProviderCacheSize int
	ProviderCacheTTL  time.Duration
	ForecastDays      int
	DefaultCity       string

	// Kafka publishing of notification bundles, off unless brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool

	ScrapeTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	providerTimeout, err := parseDuration("PROVIDER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("PROVIDER_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	scrapeTimeout, err := parseDuration("SCRAPE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("PROVIDER_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	forecastDays, err := parseInt("FORECAST_DAYS", 7)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		ProviderTimeout:   providerTimeout,
		ProviderCacheSize: cacheSize,
		ProviderCacheTTL:  cacheTTL,
		ForecastDays:      forecastDays,
		DefaultCity:       envOrDefault("DEFAULT_CITY", "London"),

		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "weather-notifications"),
		KafkaEnabled: kafkaEnabled,

		ScrapeTimeout: scrapeTimeout,
	}

	if cfg.ForecastDays < 1 || cfg.ForecastDays > 14 {
		return nil, errors.New("FORECAST_DAYS must be between 1 and 14")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
