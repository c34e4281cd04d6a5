// Package notify orchestrates weather retrieval, rule evaluation, and
// bundle publishing.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
	"github.com/Anand123098sitare/Weather-Insights/internal/observability"
)

// Publisher delivers generated bundles to downstream consumers.
type Publisher interface {
	PublishBundle(ctx context.Context, bundle domain.Bundle) error
}

const (
	minForecastDays     = 3
	maxForecastDays     = 14
	defaultForecastDays = 7
)

// Service generates smart notifications from provider forecasts. Publishing
// is best effort: a Kafka outage never fails the request that triggered it.
type Service struct {
	provider  domain.WeatherProvider
	publisher Publisher // nil when publishing is disabled
	rules     domain.Ruleset
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates the notification service with the default ruleset.
func New(provider domain.WeatherProvider, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider:  provider,
		publisher: publisher,
		rules:     domain.DefaultRuleset(),
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the service has produced at least one
// bundle or reading from its provider.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no provider data fetched yet")
	}
	return nil
}

// SmartNotifications fetches the forecast for a city, evaluates the full
// ruleset over it, and returns the sorted bundle. The day count is clamped
// to the supported window; zero selects the default.
func (s *Service) SmartNotifications(ctx context.Context, city string, days int) (domain.Bundle, error) {
	switch {
	case days == 0:
		days = defaultForecastDays
	case days < minForecastDays:
		days = minForecastDays
	case days > maxForecastDays:
		days = maxForecastDays
	}

	obs, err := s.dailyForecast(ctx, city, days)
	if err != nil {
		return domain.Bundle{}, err
	}

	// The current air-quality reading stands in for today when the
	// forecast itself carries no AQI.
	if len(obs) > 0 && obs[0].AQI == 0 {
		if reading, err := s.airQuality(ctx, city); err == nil {
			obs[0].AQI = reading.Value
		} else {
			s.logger.Warn("air quality unavailable", "city", city, "error", err)
		}
	}

	bundle, err := domain.GenerateNotifications(obs, city, s.rules)
	if err != nil {
		return domain.Bundle{}, err
	}

	s.metrics.BundlesGenerated.Inc()
	for _, n := range bundle.Notifications {
		s.metrics.NotificationsGenerated.WithLabelValues(string(n.Type)).Inc()
	}
	s.ready.Store(true)

	s.publish(ctx, bundle)
	return bundle, nil
}

// CityAQIReport is a classified air-quality reading.
type CityAQIReport struct {
	City              string             `json:"city"`
	AQI               int                `json:"aqi"`
	Level             domain.AQILevel    `json:"level"`
	DominantPollutant string             `json:"dominant_pollutant,omitempty"`
	Pollutants        map[string]float64 `json:"pollutants,omitempty"`
}

// CityAQI fetches and classifies the current air quality for a city.
func (s *Service) CityAQI(ctx context.Context, city string) (CityAQIReport, error) {
	reading, err := s.airQuality(ctx, city)
	if err != nil {
		return CityAQIReport{}, err
	}
	if err := reading.Validate(); err != nil {
		return CityAQIReport{}, err
	}

	level, err := domain.ClassifyAQI(reading.Value)
	if err != nil {
		return CityAQIReport{}, err
	}

	report := CityAQIReport{
		City:       reading.City,
		AQI:        reading.Value,
		Level:      level,
		Pollutants: reading.Pollutants,
	}
	if name, ok := reading.DominantPollutant(); ok {
		report.DominantPollutant = name
	}
	s.ready.Store(true)
	return report, nil
}

// CurrentWeather returns the latest conditions for a city.
func (s *Service) CurrentWeather(ctx context.Context, city string) (domain.CurrentConditions, error) {
	start := time.Now()
	conditions, err := s.provider.CurrentWeather(ctx, city)
	s.observeProvider("weather", start, err)
	if err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("current weather: %w", err)
	}
	s.ready.Store(true)
	return conditions, nil
}

// DailyForecast returns per-day forecast summaries for a city.
func (s *Service) DailyForecast(ctx context.Context, city string, days int) ([]domain.DailyObservation, error) {
	if days == 0 {
		days = defaultForecastDays
	}
	obs, err := s.dailyForecast(ctx, city, days)
	if err != nil {
		return nil, err
	}
	s.ready.Store(true)
	return obs, nil
}

func (s *Service) dailyForecast(ctx context.Context, city string, days int) ([]domain.DailyObservation, error) {
	start := time.Now()
	periods, err := s.provider.Forecast(ctx, city, days)
	s.observeProvider("forecast", start, err)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	obs := domain.SummarizeForecast(periods)
	if len(obs) > days {
		obs = obs[:days]
	}
	return obs, nil
}

func (s *Service) airQuality(ctx context.Context, city string) (domain.AQIReading, error) {
	start := time.Now()
	reading, err := s.provider.AirQuality(ctx, city)
	s.observeProvider("air_quality", start, err)
	if err != nil {
		return domain.AQIReading{}, fmt.Errorf("air quality: %w", err)
	}
	return reading, nil
}

func (s *Service) observeProvider(call string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ProviderRequests.WithLabelValues(call, outcome).Inc()
	s.metrics.ProviderDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
}

func (s *Service) publish(ctx context.Context, bundle domain.Bundle) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBundle(ctx, bundle); err != nil {
		s.logger.Warn("bundle publish failed", "city", bundle.City, "error", err)
		s.metrics.PublishErrors.Inc()
		return
	}
	s.metrics.BundlesPublished.Inc()
}
