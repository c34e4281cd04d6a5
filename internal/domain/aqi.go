package domain

import (
	"fmt"
	"math"
	"sort"
)

// AQILevel describes one band of the EPA Air Quality Index scale.
type AQILevel struct {
	Label    string `json:"label"`
	Severity int    `json:"severity"` // 1 (Good) through 6 (Hazardous)
	Color    string `json:"color"`    // display hex color
}

// aqiBands is the single ordered banding table. Upper bounds are inclusive;
// the final band has no upper bound.
var aqiBands = []struct {
	upper int
	level AQILevel
}{
	{50, AQILevel{Label: "Good", Severity: 1, Color: "#009966"}},
	{100, AQILevel{Label: "Moderate", Severity: 2, Color: "#ffde33"}},
	{150, AQILevel{Label: "Unhealthy for Sensitive Groups", Severity: 3, Color: "#ff9933"}},
	{200, AQILevel{Label: "Unhealthy", Severity: 4, Color: "#cc0033"}},
	{300, AQILevel{Label: "Very Unhealthy", Severity: 5, Color: "#660099"}},
}

// hazardous is the open-ended top band.
var hazardous = AQILevel{Label: "Hazardous", Severity: 6, Color: "#7e0023"}

// ClassifyAQI maps an AQI value to its band. Values above 300 are Hazardous;
// negative values fail with ErrInvalidInput.
func ClassifyAQI(aqi int) (AQILevel, error) {
	if aqi < 0 {
		return AQILevel{}, fmt.Errorf("classify AQI %d: %w", aqi, ErrInvalidInput)
	}
	for _, b := range aqiBands {
		if aqi <= b.upper {
			return b.level, nil
		}
	}
	return hazardous, nil
}

// AQIReading is a point-in-time air-quality measurement for a city. It is
// derived per request and never persisted.
type AQIReading struct {
	City       string             `json:"city"`
	Value      int                `json:"value"`
	Pollutants map[string]float64 `json:"pollutants,omitempty"` // name -> µg/m³
}

// Validate rejects negative index values.
func (r AQIReading) Validate() error {
	if r.Value < 0 {
		return fmt.Errorf("AQI reading %d for %q: %w", r.Value, r.City, ErrInvalidInput)
	}
	return nil
}

// DominantPollutant returns the pollutant with the highest concentration.
// Ties break lexically so repeated calls agree. ok is false when the
// breakdown is empty.
func (r AQIReading) DominantPollutant() (name string, ok bool) {
	names := make([]string, 0, len(r.Pollutants))
	for n := range r.Pollutants {
		names = append(names, n)
	}
	sort.Strings(names)

	var best float64
	for _, n := range names {
		if !ok || r.Pollutants[n] > best {
			name, best, ok = n, r.Pollutants[n], true
		}
	}
	return name, ok
}

// pm25Breakpoints maps PM2.5 concentration segments (µg/m³) to AQI segments,
// following the EPA conversion table (2024 revision).
var pm25Breakpoints = []struct {
	cLow, cHigh float64
	iLow, iHigh int
}{
	{0.0, 9.0, 0, 50},
	{9.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 125.4, 151, 200},
	{125.5, 225.4, 201, 300},
	{225.5, 325.4, 301, 500},
}

// AQIFromPM25 converts a PM2.5 concentration in µg/m³ to an AQI value by
// linear interpolation within the matching breakpoint segment. The result
// is clamped to 500; negative concentrations fail with ErrInvalidInput.
func AQIFromPM25(concentration float64) (int, error) {
	if concentration < 0 {
		return 0, fmt.Errorf("PM2.5 concentration %.1f: %w", concentration, ErrInvalidInput)
	}
	// Truncate to one decimal, the precision of the breakpoint table.
	c := math.Floor(concentration*10) / 10

	for _, bp := range pm25Breakpoints {
		if c > bp.cHigh {
			continue
		}
		if c < bp.cLow {
			c = bp.cLow
		}
		span := bp.cHigh - bp.cLow
		frac := (c - bp.cLow) / span
		return bp.iLow + int(math.Round(frac*float64(bp.iHigh-bp.iLow))), nil
	}
	return 500, nil
}
