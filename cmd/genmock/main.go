// Command genmock generates deterministic weather fixtures for downstream
// test suites. It uses the actual simulation domain package with a fixed
// clock and seed, so fixtures match what the service would serve.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock -seed 42 -at 2026-01-15T12:00:00Z
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "data/mock", "output directory for JSON fixtures")
	seed := flag.Int64("seed", 42, "simulation seed")
	atStr := flag.String("at", "2026-01-15T12:00:00Z", "fixture generation instant (RFC3339)")
	flag.Parse()

	at, err := time.Parse(time.RFC3339, *atStr)
	if err != nil {
		return fmt.Errorf("invalid -at timestamp: %w", err)
	}

	// Fixed clock so forecast start boundaries are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(at))
	defer domain.SetClock(nil)

	sim := domain.NewSimulator(domain.DefaultRegistry(), domain.WithSeed(*seed))

	snaps, err := sim.AllCities(at)
	if err != nil {
		return fmt.Errorf("synthesize current weather: %w", err)
	}
	if err := writeJSON(filepath.Join(*outDir, "weather_current.json"), snaps); err != nil {
		return fmt.Errorf("writing current weather fixture: %w", err)
	}
	log.Printf("wrote %d current snapshots", len(snaps))

	forecast, err := sim.Forecast("potsdam", domain.MaxForecastDays, 0)
	if err != nil {
		return fmt.Errorf("synthesize forecast: %w", err)
	}
	if err := writeJSON(filepath.Join(*outDir, "forecast_potsdam.json"), forecast); err != nil {
		return fmt.Errorf("writing forecast fixture: %w", err)
	}
	log.Printf("wrote %d forecast slots for potsdam", len(forecast.Snapshots))

	air, err := sim.AirQuality("cottbus", at)
	if err != nil {
		return fmt.Errorf("synthesize air quality: %w", err)
	}
	if err := writeJSON(filepath.Join(*outDir, "air_cottbus.json"), air); err != nil {
		return fmt.Errorf("writing air quality fixture: %w", err)
	}
	log.Printf("wrote air quality sample for cottbus (aqi=%d)", air.AQI)

	printStats(snaps)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(snaps []domain.WeatherSnapshot) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Cities: %d\n", len(snaps))

	condCounts := map[domain.Condition]int{}
	minTemp, maxTemp := snaps[0].Temperature, snaps[0].Temperature
	for i := range snaps {
		condCounts[snaps[i].Condition]++
		if snaps[i].Temperature < minTemp {
			minTemp = snaps[i].Temperature
		}
		if snaps[i].Temperature > maxTemp {
			maxTemp = snaps[i].Temperature
		}
	}
	fmt.Printf("Temperature range: %.1f to %.1f\n", minTemp, maxTemp)
	fmt.Printf("Distinct conditions: %d\n", len(condCounts))
	fmt.Printf("Per city:")
	for i := range snaps {
		fmt.Printf(" %s=%s", snaps[i].CityKey, snaps[i].Condition)
	}
	fmt.Println()
}
