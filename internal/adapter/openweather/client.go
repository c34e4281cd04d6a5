package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

// Client implements domain.WeatherProvider using the OpenWeatherMap API.
// All values are requested in metric units; wind speeds arrive in m/s and
// are converted to km/h.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org",
		logger:  logger,
	}
}

// CurrentWeather fetches the latest conditions for a city.
func (c *Client) CurrentWeather(ctx context.Context, city string) (domain.CurrentConditions, error) {
	params := url.Values{
		"q":     {city},
		"units": {"metric"},
		"appid": {c.apiKey},
	}

	var resp weatherResponse
	if err := c.getJSON(ctx, "/data/2.5/weather", params, &resp); err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("current weather for %q: %w", city, err)
	}

	out := domain.CurrentConditions{
		City:        city,
		Time:        time.Unix(resp.Dt, 0).UTC(),
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed * 3.6,
		CloudCover:  resp.Clouds.All,
	}
	if len(resp.Weather) > 0 {
		out.Condition = resp.Weather[0].Main
		out.Description = resp.Weather[0].Description
	}
	return out, nil
}

// Forecast fetches 3-hourly forecast periods covering the requested number
// of days, capped at the API's 5-day horizon.
func (c *Client) Forecast(ctx context.Context, city string, days int) ([]domain.ForecastPeriod, error) {
	cnt := days * 8
	if cnt > 40 {
		cnt = 40
	}
	params := url.Values{
		"q":     {city},
		"units": {"metric"},
		"cnt":   {fmt.Sprintf("%d", cnt)},
		"appid": {c.apiKey},
	}

	var resp forecastResponse
	if err := c.getJSON(ctx, "/data/2.5/forecast", params, &resp); err != nil {
		return nil, fmt.Errorf("forecast for %q: %w", city, err)
	}

	periods := make([]domain.ForecastPeriod, 0, len(resp.List))
	for _, item := range resp.List {
		p := domain.ForecastPeriod{
			Time:          time.Unix(item.Dt, 0).UTC(),
			Temperature:   item.Main.Temp,
			Humidity:      item.Main.Humidity,
			WindSpeed:     item.Wind.Speed * 3.6,
			CloudCover:    item.Clouds.All,
			Precipitation: item.Rain.ThreeHours,
			PrecipProb:    item.Pop,
		}
		if len(item.Weather) > 0 {
			p.Condition = item.Weather[0].Main
		}
		periods = append(periods, p)
	}
	return periods, nil
}

// AirQuality geocodes the city and fetches the current air pollution
// reading. The AQI value is derived from the PM2.5 concentration using the
// EPA conversion, since the API reports its own 1-5 scale.
func (c *Client) AirQuality(ctx context.Context, city string) (domain.AQIReading, error) {
	lat, lon, err := c.geocode(ctx, city)
	if err != nil {
		return domain.AQIReading{}, fmt.Errorf("air quality for %q: %w", city, err)
	}

	params := url.Values{
		"lat":   {fmt.Sprintf("%.6f", lat)},
		"lon":   {fmt.Sprintf("%.6f", lon)},
		"appid": {c.apiKey},
	}

	var resp airResponse
	if err := c.getJSON(ctx, "/data/2.5/air_pollution", params, &resp); err != nil {
		return domain.AQIReading{}, fmt.Errorf("air quality for %q: %w", city, err)
	}
	if len(resp.List) == 0 {
		return domain.AQIReading{}, fmt.Errorf("air quality for %q: empty response", city)
	}

	components := resp.List[0].Components
	value, err := domain.AQIFromPM25(components["pm2_5"])
	if err != nil {
		return domain.AQIReading{}, fmt.Errorf("air quality for %q: %w", city, err)
	}

	return domain.AQIReading{
		City:       city,
		Value:      value,
		Pollutants: components,
	}, nil
}

func (c *Client) geocode(ctx context.Context, city string) (lat, lon float64, err error) {
	params := url.Values{
		"q":     {city},
		"limit": {"1"},
		"appid": {c.apiKey},
	}

	var resp []geoResult
	if err := c.getJSON(ctx, "/geo/1.0/direct", params, &resp); err != nil {
		return 0, 0, err
	}
	if len(resp) == 0 {
		return 0, 0, fmt.Errorf("city %q not found", city)
	}
	return resp[0].Lat, resp[0].Lon, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// OpenWeatherMap API response types.

type weatherResponse struct {
	Dt      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Wind    windBlock      `json:"wind"`
	Clouds  cloudsBlock    `json:"clouds"`
	Weather []weatherBlock `json:"weather"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Wind    windBlock      `json:"wind"`
	Clouds  cloudsBlock    `json:"clouds"`
	Pop     float64        `json:"pop"`
	Rain    rainBlock      `json:"rain"`
	Weather []weatherBlock `json:"weather"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"` // m/s
}

type cloudsBlock struct {
	All float64 `json:"all"` // percent
}

type weatherBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type rainBlock struct {
	ThreeHours float64 `json:"3h"` // mm
}

type geoResult struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type airResponse struct {
	List []airResult `json:"list"`
}

type airResult struct {
	Components map[string]float64 `json:"components"` // µg/m³ by pollutant
}
