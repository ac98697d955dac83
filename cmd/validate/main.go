// Command validate checks the invariants of generated weather fixtures:
// field ranges, condition/field consistency, forecast continuity, and air
// quality index derivation. It exits non-zero when any check fails.
//
// Usage:
//
//	go run ./cmd/validate -dir data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dir := flag.String("dir", "data/mock", "directory containing genmock fixtures")
	flag.Parse()

	if code := run(*dir); code != 0 {
		os.Exit(code)
	}
}

func run(dir string) int {
	fmt.Println("=== Weather Fixture Validation ===")
	fmt.Println()

	snaps, err := loadJSON[[]domain.WeatherSnapshot](filepath.Join(dir, "weather_current.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load current weather fixture: %v\n", err)
		return 1
	}
	forecast, err := loadJSON[domain.ForecastSeries](filepath.Join(dir, "forecast_potsdam.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load forecast fixture: %v\n", err)
		return 1
	}
	air, err := loadJSON[domain.AirQualitySample](filepath.Join(dir, "air_cottbus.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load air quality fixture: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSnapshots(snaps),
		validateForecast(forecast),
		validateAirQuality(air),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d snapshots, %d forecast slots, 1 air quality sample\n",
		len(snaps), len(forecast.Snapshots))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// ── Phase 1: Snapshot field ranges and consistency ──

func validateSnapshots(snaps []domain.WeatherSnapshot) *phase {
	p := &phase{name: "Phase 1: Snapshot Consistency"}

	if len(snaps) != domain.DefaultRegistry().Len() {
		p.errorf("expected %d snapshots, got %d", domain.DefaultRegistry().Len(), len(snaps))
	}

	seen := map[string]bool{}
	for i := range snaps {
		checkSnapshot(p, fmt.Sprintf("snapshot %d (%s)", i, snaps[i].CityKey), &snaps[i])
		if seen[snaps[i].CityKey] {
			p.errorf("duplicate city %q", snaps[i].CityKey)
		}
		seen[snaps[i].CityKey] = true
	}
	return p
}

func checkSnapshot(p *phase, label string, s *domain.WeatherSnapshot) {
	pf := func(format string, args ...any) {
		p.errorf(label+": "+format, args...)
	}

	if s.CityKey == "" {
		pf("city key is empty")
	}
	if s.Timestamp.IsZero() {
		pf("timestamp is zero")
	}
	if s.Source != domain.SourceSimulated {
		pf("source is %q (expected %q)", s.Source, domain.SourceSimulated)
	}
	if s.Humidity < 30 || s.Humidity > 95 {
		pf("humidity %d out of range [30, 95]", s.Humidity)
	}
	if s.Pressure < 980 || s.Pressure > 1040 {
		pf("pressure %d out of range [980, 1040]", s.Pressure)
	}
	if s.WindSpeed < 0 {
		pf("negative wind speed %g", s.WindSpeed)
	}
	if s.WindDirection < 0 || s.WindDirection > 359 {
		pf("wind direction %d out of range [0, 359]", s.WindDirection)
	}
	if s.CloudCover < 0 || s.CloudCover > 100 {
		pf("cloud cover %d out of range [0, 100]", s.CloudCover)
	}
	if s.PrecipProbability < 0 || s.PrecipProbability > 1 {
		pf("precipitation probability %g out of range [0, 1]", s.PrecipProbability)
	}
	if s.TempMin > s.Temperature || s.TempMax < s.Temperature {
		pf("temperature %g outside its own min/max [%g, %g]", s.Temperature, s.TempMin, s.TempMax)
	}

	if s.Condition == domain.ClearSky && s.CloudCover > domain.ClearSkyMaxCloudCover {
		pf("clear sky with cloud cover %d", s.CloudCover)
	}
	if s.Condition.IsPrecipitation() && s.Humidity < domain.PrecipMinHumidity {
		pf("%s with humidity %d", s.Condition, s.Humidity)
	}
	if s.Condition == domain.LightSnow && s.Temperature > 3.0 {
		pf("snow at %g degrees", s.Temperature)
	}
}

// ── Phase 2: Forecast shape and continuity ──

func validateForecast(f domain.ForecastSeries) *phase {
	p := &phase{name: "Phase 2: Forecast Continuity"}

	if f.StepHours < 1 || 24%f.StepHours != 0 {
		p.errorf("step of %d hours does not divide a day", f.StepHours)
		return p
	}
	slotsPerDay := 24 / f.StepHours
	if len(f.Snapshots)%slotsPerDay != 0 {
		p.errorf("%d slots is not a whole number of days at %dh steps", len(f.Snapshots), f.StepHours)
	}

	step := f.StepHours
	for i := range f.Snapshots {
		checkSnapshot(p, fmt.Sprintf("slot %d", i), &f.Snapshots[i])
		if i == 0 {
			continue
		}
		prev := &f.Snapshots[i-1]
		cur := &f.Snapshots[i]

		if delta := math.Abs(cur.Temperature - prev.Temperature); delta > domain.MaxTempStepDelta+1e-9 {
			p.errorf("slot %d: temperature jumps %.2f (limit %.1f)", i, delta, domain.MaxTempStepDelta)
		}
		if gap := cur.Timestamp.Sub(prev.Timestamp).Hours(); math.Abs(gap-float64(step)) > 1e-9 {
			p.errorf("slot %d: %gh gap (expected %dh)", i, gap, step)
		}
	}
	return p
}

// ── Phase 3: Air quality derivation ──

func validateAirQuality(a domain.AirQualitySample) *phase {
	p := &phase{name: "Phase 3: Air Quality Index"}

	if a.AQI < 1 || a.AQI > 5 {
		p.errorf("aqi %d out of range [1, 5]", a.AQI)
	}
	if len(a.Components) != 8 {
		p.errorf("expected 8 pollutant components, got %d", len(a.Components))
	}

	worst := 1
	for pollutant, concentration := range a.Components {
		if concentration < 0 {
			p.errorf("%s concentration is negative: %g", pollutant, concentration)
		}
		if b := domain.AQIBucket(pollutant, concentration); b > worst {
			worst = b
		}
	}
	if a.AQI != worst {
		p.errorf("aqi %d does not match worst pollutant bucket %d", a.AQI, worst)
	}
	return p
}
