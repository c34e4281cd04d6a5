package notify_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
	"github.com/Anand123098sitare/Weather-Insights/internal/notify"
	"github.com/Anand123098sitare/Weather-Insights/internal/observability"
)

// --- mocks ---

type mockProvider struct {
	periods     []domain.ForecastPeriod
	reading     domain.AQIReading
	forecastErr error
	airErr      error

	forecastDays atomic.Int64
}

func (m *mockProvider) CurrentWeather(context.Context, string) (domain.CurrentConditions, error) {
	return domain.CurrentConditions{City: "Oslo", Temperature: 18}, nil
}

func (m *mockProvider) Forecast(_ context.Context, _ string, days int) ([]domain.ForecastPeriod, error) {
	m.forecastDays.Store(int64(days))
	return m.periods, m.forecastErr
}

func (m *mockProvider) AirQuality(context.Context, string) (domain.AQIReading, error) {
	return m.reading, m.airErr
}

type mockPublisher struct {
	published []domain.Bundle
	err       error
}

func (m *mockPublisher) PublishBundle(_ context.Context, b domain.Bundle) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, b)
	return nil
}

func newService(p domain.WeatherProvider, pub notify.Publisher) *notify.Service {
	return notify.New(p, pub, slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
}

// hotPeriods builds hot, dry 3-hourly samples for the given number of days.
func hotPeriods(days int) []domain.ForecastPeriod {
	var periods []domain.ForecastPeriod
	start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days*8; i++ {
		periods = append(periods, domain.ForecastPeriod{
			Time:        start.Add(time.Duration(i) * 3 * time.Hour),
			Temperature: 33,
			Humidity:    75,
			WindSpeed:   8,
			CloudCover:  40,
			Condition:   "Clear",
		})
	}
	return periods
}

// --- tests ---

func TestSmartNotifications(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	provider := &mockProvider{
		periods: hotPeriods(5),
		reading: domain.AQIReading{City: "Madrid", Value: 160},
	}
	publisher := &mockPublisher{}
	svc := newService(provider, publisher)

	bundle, err := svc.SmartNotifications(context.Background(), "Madrid", 5)
	require.NoError(t, err)

	assert.Equal(t, "Madrid", bundle.City)
	require.NotEmpty(t, bundle.Notifications)

	rules := make(map[string]bool)
	for _, n := range bundle.Notifications {
		rules[n.Rule] = true
	}
	assert.True(t, rules["heat_wave"], "expected a heat wave warning")
	assert.True(t, rules["air_quality"], "expected an air quality warning from the current reading")
	assert.True(t, rules["heat_stress"], "expected agricultural heat stress advice")

	// The bundle that went to Kafka is the one returned to the caller.
	require.Len(t, publisher.published, 1)
	assert.Empty(t, cmp.Diff(bundle, publisher.published[0]))

	require.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestSmartNotificationsClampsDays(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int64
	}{
		{"zero uses default", 0, 7},
		{"below minimum", 1, 3},
		{"above maximum", 30, 14},
		{"in range", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{periods: hotPeriods(5)}
			svc := newService(provider, nil)

			_, err := svc.SmartNotifications(context.Background(), "Madrid", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, provider.forecastDays.Load())
		})
	}
}

func TestSmartNotificationsEmptyForecast(t *testing.T) {
	svc := newService(&mockProvider{}, nil)

	_, err := svc.SmartNotifications(context.Background(), "Madrid", 5)
	require.ErrorIs(t, err, domain.ErrInsufficientData)
	require.Error(t, svc.CheckReadiness(context.Background()))
}

func TestSmartNotificationsProviderError(t *testing.T) {
	svc := newService(&mockProvider{forecastErr: errors.New("upstream down")}, nil)

	_, err := svc.SmartNotifications(context.Background(), "Madrid", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestSmartNotificationsPublishFailureIsNotFatal(t *testing.T) {
	provider := &mockProvider{periods: hotPeriods(5)}
	publisher := &mockPublisher{err: errors.New("broker unavailable")}
	svc := newService(provider, publisher)

	bundle, err := svc.SmartNotifications(context.Background(), "Madrid", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.Notifications)
}

func TestSmartNotificationsAirQualityFailureIsNotFatal(t *testing.T) {
	provider := &mockProvider{
		periods: hotPeriods(5),
		airErr:  errors.New("air quality down"),
	}
	svc := newService(provider, nil)

	bundle, err := svc.SmartNotifications(context.Background(), "Madrid", 5)
	require.NoError(t, err)

	for _, n := range bundle.Notifications {
		assert.NotEqual(t, "air_quality", n.Rule)
	}
}

func TestCityAQI(t *testing.T) {
	provider := &mockProvider{
		reading: domain.AQIReading{
			City:  "Delhi",
			Value: 180,
			Pollutants: map[string]float64{
				"pm2_5": 95.1,
				"no2":   40.2,
			},
		},
	}
	svc := newService(provider, nil)

	report, err := svc.CityAQI(context.Background(), "Delhi")
	require.NoError(t, err)

	assert.Equal(t, "Delhi", report.City)
	assert.Equal(t, 180, report.AQI)
	assert.Equal(t, "Unhealthy", report.Level.Label)
	assert.Equal(t, 4, report.Level.Severity)
	assert.Equal(t, "pm2_5", report.DominantPollutant)
}

func TestCityAQIInvalidReading(t *testing.T) {
	svc := newService(&mockProvider{reading: domain.AQIReading{City: "Delhi", Value: -1}}, nil)

	_, err := svc.CityAQI(context.Background(), "Delhi")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailyForecastTruncatesToRequestedDays(t *testing.T) {
	svc := newService(&mockProvider{periods: hotPeriods(5)}, nil)

	obs, err := svc.DailyForecast(context.Background(), "Madrid", 3)
	require.NoError(t, err)
	assert.Len(t, obs, 3)
}

func TestCheckReadinessBeforeAnyFetch(t *testing.T) {
	svc := newService(&mockProvider{}, nil)
	require.Error(t, svc.CheckReadiness(context.Background()))
}
