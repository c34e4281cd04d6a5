package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/Anand123098sitare/Weather-Insights/internal/adapter/http"
	"github.com/Anand123098sitare/Weather-Insights/internal/adapter/scraper"
	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
	"github.com/Anand123098sitare/Weather-Insights/internal/notify"
	"github.com/Anand123098sitare/Weather-Insights/internal/observability"
)

// --- mocks ---

type mockService struct {
	bundle   domain.Bundle
	report   notify.CityAQIReport
	err      error
	readyErr error

	lastCity string
	lastDays int
}

func (m *mockService) SmartNotifications(_ context.Context, city string, days int) (domain.Bundle, error) {
	m.lastCity, m.lastDays = city, days
	return m.bundle, m.err
}

func (m *mockService) CityAQI(_ context.Context, city string) (notify.CityAQIReport, error) {
	m.lastCity = city
	return m.report, m.err
}

func (m *mockService) CurrentWeather(_ context.Context, city string) (domain.CurrentConditions, error) {
	if m.err != nil {
		return domain.CurrentConditions{}, m.err
	}
	return domain.CurrentConditions{City: city, Temperature: 18.5, Condition: "Clouds"}, nil
}

func (m *mockService) DailyForecast(_ context.Context, city string, days int) ([]domain.DailyObservation, error) {
	m.lastCity, m.lastDays = city, days
	if m.err != nil {
		return nil, m.err
	}
	return []domain.DailyObservation{{Date: domain.NewDate(2026, time.July, 1), TempMax: 21}}, nil
}

func (m *mockService) CheckReadiness(_ context.Context) error { return m.readyErr }

type mockScraper struct {
	content scraper.PageContent
	info    scraper.AQIInfo
	updates []scraper.SourceUpdate
	err     error
	lastURL string
}

func (m *mockScraper) ExtractText(_ context.Context, url string) (scraper.PageContent, error) {
	m.lastURL = url
	return m.content, m.err
}

func (m *mockScraper) AQIInfo(_ context.Context, url string) (scraper.AQIInfo, error) {
	m.lastURL = url
	return m.info, m.err
}

func (m *mockScraper) Updates(_ context.Context) []scraper.SourceUpdate { return m.updates }

func newTestServer(svc *mockService, scr *mockScraper) *httpadapter.Server {
	return httpadapter.NewServer(":0", svc, scr, "London",
		slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
}

func get(t *testing.T, srv *httpadapter.Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func sampleBundle() domain.Bundle {
	end := domain.NewDate(2026, time.July, 4)
	return domain.Bundle{
		City:        "Madrid",
		GeneratedAt: time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC),
		Notifications: []domain.Notification{
			{
				Type:            domain.TypeWarning,
				Rule:            "heat_wave",
				Message:         "Heat wave alert",
				Icon:            "temperature-high",
				Priority:        domain.PriorityWarning,
				StartDate:       domain.NewDate(2026, time.July, 2),
				EndDate:         &end,
				ConsecutiveDays: 3,
			},
			{
				Type:      domain.TypeSeasonal,
				Rule:      "earth_day",
				Message:   "Earth Day!",
				Icon:      "globe-americas",
				Priority:  domain.PriorityAdvisory,
				StartDate: domain.NewDate(2026, time.July, 3),
			},
		},
	}
}

// --- tests ---

func TestHealthz(t *testing.T) {
	rec, body := get(t, newTestServer(&mockService{}, &mockScraper{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec, body := get(t, newTestServer(&mockService{}, &mockScraper{}), "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", body["status"])
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&mockService{readyErr: fmt.Errorf("no data yet")}, &mockScraper{})
		rec, body := get(t, srv, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "no data yet", body["error"])
	})
}

func TestSmartNotifications(t *testing.T) {
	svc := &mockService{bundle: sampleBundle()}
	rec, body := get(t, newTestServer(svc, &mockScraper{}), "/api/smart-notifications?city=Madrid&days=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Madrid", svc.lastCity)
	assert.Equal(t, 5, svc.lastDays)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Madrid", data["city"])
	assert.Equal(t, "2026-07-01T09:00:00Z", data["generated_at"])

	notifications := data["notifications"].([]any)
	require.Len(t, notifications, 2)

	first := notifications[0].(map[string]any)
	assert.Equal(t, "warning", first["type"])
	assert.Equal(t, "2026-07-02", first["start_date"])
	assert.Equal(t, "2026-07-04", first["end_date"])
	assert.Equal(t, float64(3), first["consecutive_days"])

	// Optional fields are omitted, not null.
	second := notifications[1].(map[string]any)
	assert.NotContains(t, second, "end_date")
	assert.NotContains(t, second, "consecutive_days")
}

func TestSmartNotificationsDefaultsCity(t *testing.T) {
	svc := &mockService{bundle: sampleBundle()}
	rec, _ := get(t, newTestServer(svc, &mockScraper{}), "/api/smart-notifications")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "London", svc.lastCity)
	assert.Zero(t, svc.lastDays)
}

func TestSmartNotificationsBadDays(t *testing.T) {
	rec, body := get(t, newTestServer(&mockService{}, &mockScraper{}), "/api/smart-notifications?days=soon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("bad AQI: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{"insufficient data", fmt.Errorf("empty: %w", domain.ErrInsufficientData), http.StatusUnprocessableEntity},
		{"upstream failure", errors.New("provider down"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockService{err: tt.err}, &mockScraper{})
			rec, body := get(t, srv, "/api/smart-notifications?city=Oslo")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "error", body["status"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCityAQI(t *testing.T) {
	svc := &mockService{report: notify.CityAQIReport{
		City: "Delhi",
		AQI:  180,
		Level: domain.AQILevel{
			Label:    "Unhealthy",
			Severity: 4,
			Color:    "#cc0033",
		},
		DominantPollutant: "pm2_5",
	}}
	rec, body := get(t, newTestServer(svc, &mockScraper{}), "/api/city-aqi/Delhi")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delhi", svc.lastCity)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(180), data["aqi"])
	level := data["level"].(map[string]any)
	assert.Equal(t, "Unhealthy", level["label"])
	assert.Equal(t, "#cc0033", level["color"])
}

func TestWeather(t *testing.T) {
	rec, body := get(t, newTestServer(&mockService{}, &mockScraper{}), "/api/weather/Oslo")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Oslo", data["city"])
	assert.Equal(t, 18.5, data["temperature"])
}

func TestForecast(t *testing.T) {
	svc := &mockService{}
	rec, body := get(t, newTestServer(svc, &mockScraper{}), "/api/weather-forecast/Bergen?days=3")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bergen", svc.lastCity)
	assert.Equal(t, 3, svc.lastDays)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Bergen", data["city"])
	days := data["days"].([]any)
	require.Len(t, days, 1)
}

func TestScrapeContent(t *testing.T) {
	scr := &mockScraper{content: scraper.PageContent{
		URL:        "https://example.com/report",
		Title:      "Report",
		Paragraphs: []string{"Air quality improved this week."},
	}}
	rec, body := get(t, newTestServer(&mockService{}, scr),
		"/api/scrape-content?url=https%3A%2F%2Fexample.com%2Freport")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com/report", scr.lastURL)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Report", data["title"])
}

func TestScrapeContentRequiresURL(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", "/api/scrape-content"},
		{"relative", "/api/scrape-content?url=%2Fpath"},
		{"bad scheme", "/api/scrape-content?url=ftp%3A%2F%2Fexample.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, newTestServer(&mockService{}, &mockScraper{}), tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestScrapeAQIInfo(t *testing.T) {
	scr := &mockScraper{info: scraper.AQIInfo{
		URL:      "https://example.com/aqi",
		MaxValue: 152,
		Level:    &domain.AQILevel{Label: "Unhealthy for Sensitive Groups", Severity: 3, Color: "#ff9933"},
	}}
	rec, body := get(t, newTestServer(&mockService{}, scr),
		"/api/scrape-aqi-info?url=https%3A%2F%2Fexample.com%2Faqi")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(152), data["max_value"])
}

func TestAirQualityUpdates(t *testing.T) {
	scr := &mockScraper{updates: []scraper.SourceUpdate{
		{Source: "WHO Air Quality", Title: "Air pollution"},
		{Source: "EPA AirNow", Error: "fetch failed"},
	}}
	rec, body := get(t, newTestServer(&mockService{}, scr), "/api/air-quality-updates")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	updates := data["updates"].([]any)
	require.Len(t, updates, 2)
}

func TestIndexListsEndpoints(t *testing.T) {
	rec, body := get(t, newTestServer(&mockService{}, &mockScraper{}), "/api")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	endpoints := data["endpoints"].([]any)
	assert.NotEmpty(t, endpoints)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockScraper{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
