package domain

import (
	"fmt"
	"sort"
	"time"
)

// ForecastPeriod is one 3-hourly forecast sample as returned by a weather
// provider, already normalized to metric units.
type ForecastPeriod struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`    // °C
	Humidity      float64   `json:"humidity"`       // percent
	WindSpeed     float64   `json:"wind_speed"`     // km/h
	CloudCover    float64   `json:"cloud_cover"`    // percent
	Precipitation float64   `json:"precipitation"`  // mm over the period
	PrecipProb    float64   `json:"precip_prob"`    // 0..1
	Condition     string    `json:"condition"`      // provider condition, e.g. "Clear"
	UVIndex       float64   `json:"uv_index,omitempty"`
	AQI           int       `json:"aqi,omitempty"`
}

// DailyObservation summarizes one forecast day. Sequences handed to the
// rule engine are chronological with no duplicate dates.
type DailyObservation struct {
	Date        Date    `json:"date"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	TempMean    float64 `json:"temp_mean"`
	HumidityMin float64 `json:"humidity_min"`
	HumidityMax float64 `json:"humidity_max"`
	WindMax     float64 `json:"wind_max"`    // km/h
	CloudMean   float64 `json:"cloud_mean"`  // percent
	PrecipSum   float64 `json:"precip_sum"`  // mm
	PrecipProb  float64 `json:"precip_prob"` // 0..1, mean over the day
	Condition   string  `json:"condition"`   // dominant condition for the day
	UVIndex     float64 `json:"uv_index,omitempty"` // daily maximum; 0 when unknown
	AQI         int     `json:"aqi,omitempty"`      // daily maximum; 0 when unknown
}

// WillRain reports whether the day counts as a rain day: either the mean
// precipitation probability exceeds 40% or more than 0.5mm is expected.
func (d DailyObservation) WillRain() bool {
	return d.PrecipProb > 0.4 || d.PrecipSum > 0.5
}

// SummarizeForecast collapses 3-hourly forecast periods into one observation
// per UTC calendar day, in chronological order. Periods may arrive in any
// order; days with no periods simply do not appear.
func SummarizeForecast(periods []ForecastPeriod) []DailyObservation {
	byDay := make(map[Date][]ForecastPeriod)
	for _, p := range periods {
		day := DateOf(p.Time)
		byDay[day] = append(byDay[day], p)
	}

	days := make([]Date, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	obs := make([]DailyObservation, 0, len(days))
	for _, day := range days {
		obs = append(obs, summarizeDay(day, byDay[day]))
	}
	return obs
}

func summarizeDay(day Date, periods []ForecastPeriod) DailyObservation {
	o := DailyObservation{
		Date:        day,
		TempMin:     periods[0].Temperature,
		TempMax:     periods[0].Temperature,
		HumidityMin: periods[0].Humidity,
		HumidityMax: periods[0].Humidity,
	}

	var tempSum, cloudSum, probSum float64
	counts := make(map[string]int)
	for _, p := range periods {
		o.TempMin = min(o.TempMin, p.Temperature)
		o.TempMax = max(o.TempMax, p.Temperature)
		o.HumidityMin = min(o.HumidityMin, p.Humidity)
		o.HumidityMax = max(o.HumidityMax, p.Humidity)
		o.WindMax = max(o.WindMax, p.WindSpeed)
		o.UVIndex = max(o.UVIndex, p.UVIndex)
		o.AQI = max(o.AQI, p.AQI)
		o.PrecipSum += p.Precipitation
		tempSum += p.Temperature
		cloudSum += p.CloudCover
		probSum += p.PrecipProb
		if p.Condition != "" {
			counts[p.Condition]++
		}
	}

	n := float64(len(periods))
	o.TempMean = tempSum / n
	o.CloudMean = cloudSum / n
	o.PrecipProb = probSum / n
	o.Condition = dominantCondition(counts)
	return o
}

// dominantCondition picks the most frequent condition; ties break lexically
// so summaries are deterministic.
func dominantCondition(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var best string
	var bestCount int
	for _, name := range names {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	if best == "" {
		return "Clear"
	}
	return best
}

// validateChronology rejects empty, out-of-order, or duplicate-date
// observation sequences.
func validateChronology(obs []DailyObservation) error {
	if len(obs) == 0 {
		return fmt.Errorf("observation sequence is empty: %w", ErrInsufficientData)
	}
	for i := 1; i < len(obs); i++ {
		if !obs[i].Date.After(obs[i-1].Date) {
			return fmt.Errorf("observations out of order at %s: %w", obs[i].Date, ErrInvalidInput)
		}
	}
	return nil
}
