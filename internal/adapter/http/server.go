// Package http exposes the service's JSON API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Anand123098sitare/Weather-Insights/internal/adapter/scraper"
	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
	"github.com/Anand123098sitare/Weather-Insights/internal/notify"
	"github.com/Anand123098sitare/Weather-Insights/internal/observability"
)

// NotificationService is the application surface the API serves.
type NotificationService interface {
	SmartNotifications(ctx context.Context, city string, days int) (domain.Bundle, error)
	CityAQI(ctx context.Context, city string) (notify.CityAQIReport, error)
	CurrentWeather(ctx context.Context, city string) (domain.CurrentConditions, error)
	DailyForecast(ctx context.Context, city string, days int) ([]domain.DailyObservation, error)
	CheckReadiness(ctx context.Context) error
}

// ContentScraper mines public pages for readable text and AQI figures.
type ContentScraper interface {
	ExtractText(ctx context.Context, url string) (scraper.PageContent, error)
	AQIInfo(ctx context.Context, url string) (scraper.AQIInfo, error)
	Updates(ctx context.Context) []scraper.SourceUpdate
}

// Server exposes the API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer  *http.Server
	service     NotificationService
	scraper     ContentScraper
	defaultCity string
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, svc NotificationService, scr ContentScraper, defaultCity string, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service:     svc,
		scraper:     scr,
		defaultCity: defaultCity,
		logger:      logger,
		metrics:     metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.route(mux, "GET /api", s.handleIndex)
	s.route(mux, "GET /api/smart-notifications", s.handleSmartNotifications)
	s.route(mux, "GET /api/city-aqi/{city}", s.handleCityAQI)
	s.route(mux, "GET /api/weather/{city}", s.handleWeather)
	s.route(mux, "GET /api/weather-forecast/{city}", s.handleForecast)
	s.route(mux, "GET /api/scrape-content", s.handleScrapeContent)
	s.route(mux, "GET /api/scrape-aqi-info", s.handleScrapeAQIInfo)
	s.route(mux, "GET /api/air-quality-updates", s.handleAirQualityUpdates)

	return s
}

// route registers a handler wrapped with request metrics, labeled by the
// route pattern rather than the raw path.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
