package domain

import (
	"context"
	"time"
)

// CurrentConditions is a point-in-time weather reading for a city.
type CurrentConditions struct {
	City        string    `json:"city"`
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	CloudCover  float64   `json:"cloud_cover"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
}

// WeatherProvider supplies weather and air-quality data for a city.
// Implementations live in the adapter layer.
type WeatherProvider interface {
	// CurrentWeather returns the latest conditions for the city.
	CurrentWeather(ctx context.Context, city string) (CurrentConditions, error)

	// Forecast returns upcoming forecast periods for the city, in
	// chronological order, covering the requested number of days up to
	// the provider's horizon.
	Forecast(ctx context.Context, city string, days int) ([]ForecastPeriod, error)

	// AirQuality returns the current air-quality reading for the city.
	AirQuality(ctx context.Context, city string) (AQIReading, error)
}
