// Command genmock generates reproducible weather and notification fixtures
// for test suites and demos. It runs the deterministic simulator and the
// real rule engine on a frozen clock, so regenerating fixtures for the same
// city and date yields byte-identical output.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -city Madrid \
//	  -days 7 \
//	  -date 2026-07-01 \
//	  -out data/mock
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Anand123098sitare/Weather-Insights/internal/adapter/openweather"
	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	city := flag.String("city", "Madrid", "city to simulate")
	days := flag.Int("days", 7, "forecast days")
	date := flag.String("date", "2026-07-01", "frozen clock date (YYYY-MM-DD)")
	outDir := flag.String("out", "data/mock", "output directory")
	flag.Parse()

	day, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}
	frozen := day.Add(9 * time.Hour) // mid-morning, so the first day has periods

	clock := clockwork.NewFakeClockAt(frozen)
	domain.SetClock(clock)
	defer domain.SetClock(nil)

	sim := openweather.NewSimulatorWithClock(clock)
	ctx := context.Background()

	periods, err := sim.Forecast(ctx, *city, *days)
	if err != nil {
		return fmt.Errorf("simulate forecast: %w", err)
	}
	obs := domain.SummarizeForecast(periods)

	reading, err := sim.AirQuality(ctx, *city)
	if err != nil {
		return fmt.Errorf("simulate air quality: %w", err)
	}
	if len(obs) > 0 && obs[0].AQI == 0 {
		obs[0].AQI = reading.Value
	}

	bundle, err := domain.GenerateNotifications(obs, *city, domain.DefaultRuleset())
	if err != nil {
		return fmt.Errorf("generate notifications: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	slug := strings.ToLower(strings.ReplaceAll(*city, " ", "_"))
	outputs := map[string]any{
		fmt.Sprintf("%s_forecast.json", slug):      periods,
		fmt.Sprintf("%s_daily.json", slug):         obs,
		fmt.Sprintf("%s_aqi.json", slug):           reading,
		fmt.Sprintf("%s_notifications.json", slug): domain.FormatBundle(bundle),
	}
	for name, v := range outputs {
		if err := writeFixture(filepath.Join(*outDir, name), v); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d fixtures for %s (%d days, %d notifications) to %s\n",
		len(outputs), *city, *days, len(bundle.Notifications), *outDir)
	return nil
}

func writeFixture(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
