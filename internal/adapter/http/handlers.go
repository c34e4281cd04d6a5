package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

// envelope is the uniform JSON response shape: status is "success" with a
// data payload, or "error" with a message.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "error", Error: msg})
}

// writeDomainError maps domain sentinels to HTTP statuses; anything else is
// treated as an upstream failure.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{
		"service": "weather-insights",
		"endpoints": []string{
			"/api/smart-notifications?city={city}&days={days}",
			"/api/city-aqi/{city}",
			"/api/weather/{city}",
			"/api/weather-forecast/{city}?days={days}",
			"/api/scrape-content?url={url}",
			"/api/scrape-aqi-info?url={url}",
			"/api/air-quality-updates",
		},
	})
}

func (s *Server) handleSmartNotifications(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = s.defaultCity
	}
	days, ok := parseDays(w, r)
	if !ok {
		return
	}

	bundle, err := s.service.SmartNotifications(r.Context(), city, days)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeSuccess(w, domain.FormatBundle(bundle))
}

func (s *Server) handleCityAQI(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.CityAQI(r.Context(), r.PathValue("city"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeSuccess(w, report)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	conditions, err := s.service.CurrentWeather(r.Context(), r.PathValue("city"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeSuccess(w, conditions)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	days, ok := parseDays(w, r)
	if !ok {
		return
	}

	city := r.PathValue("city")
	obs, err := s.service.DailyForecast(r.Context(), city, days)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"city": city, "days": obs})
}

func (s *Server) handleScrapeContent(w http.ResponseWriter, r *http.Request) {
	target, ok := parseTargetURL(w, r)
	if !ok {
		return
	}

	content, err := s.scraper.ExtractText(r.Context(), target)
	if err != nil {
		s.metrics.ScrapeRequests.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)
		return
	}
	s.metrics.ScrapeRequests.WithLabelValues("success").Inc()
	writeSuccess(w, content)
}

func (s *Server) handleScrapeAQIInfo(w http.ResponseWriter, r *http.Request) {
	target, ok := parseTargetURL(w, r)
	if !ok {
		return
	}

	info, err := s.scraper.AQIInfo(r.Context(), target)
	if err != nil {
		s.metrics.ScrapeRequests.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)
		return
	}
	s.metrics.ScrapeRequests.WithLabelValues("success").Inc()
	writeSuccess(w, info)
}

func (s *Server) handleAirQualityUpdates(w http.ResponseWriter, r *http.Request) {
	updates := s.scraper.Updates(r.Context())
	for _, u := range updates {
		if u.Error != "" {
			s.metrics.ScrapeRequests.WithLabelValues("error").Inc()
		} else {
			s.metrics.ScrapeRequests.WithLabelValues("success").Inc()
		}
	}
	writeSuccess(w, map[string]any{"updates": updates})
}

// parseDays reads the optional days query parameter. Zero means "use the
// service default"; a non-numeric value is a client error.
func parseDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		writeError(w, http.StatusBadRequest, "days must be a positive integer")
		return 0, false
	}
	return days, true
}

func parseTargetURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		writeError(w, http.StatusBadRequest, "url must be absolute http or https")
		return "", false
	}
	return raw, true
}
