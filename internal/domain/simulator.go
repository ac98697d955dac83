package domain

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync/atomic"
	"time"
)

// Forecast limits. Horizons beyond five days are refused outright rather than
// synthesized with false confidence.
const (
	MaxForecastDays  = 5
	DefaultStepHours = 3

	// MaxTempStepDelta bounds the temperature change between consecutive
	// forecast snapshots (°C). Only temperature continuity is a hard
	// invariant; humidity, pressure and wind resynthesize freely.
	MaxTempStepDelta = 3.0
)

// Simulator synthesizes weather and air-quality data for the cities in its
// registry. All methods are pure apart from reading the immutable registry
// and drawing randomness, so a single Simulator is safe for concurrent use.
type Simulator struct {
	registry *Registry
	seed     int64
	seeded   bool
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed fixes the base seed. With a seed set, identical
// (city, timestamp) requests reproduce identical output.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.seed = seed
		s.seeded = true
	}
}

// NewSimulator creates a Simulator over the given registry.
func NewSimulator(registry *Registry, opts ...Option) *Simulator {
	s := &Simulator{registry: registry}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cities returns the registry contents in stable order.
func (s *Simulator) Cities() []City {
	return s.registry.List()
}

// freshSeedCounter decorrelates unseeded requests that land in the same
// nanosecond.
var freshSeedCounter atomic.Int64

// rng builds the request-scoped random generator. Seeded simulators derive it
// from (seed, salt, instant) via FNV-1a; unseeded ones draw fresh entropy.
func (s *Simulator) rng(salt string, t time.Time) *rand.Rand {
	if !s.seeded {
		return rand.New(rand.NewSource(time.Now().UnixNano() + freshSeedCounter.Add(1)))
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%d", s.seed, salt, t.Unix())
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// CurrentWeather synthesizes a snapshot for the city at the given instant.
// A zero timestamp means "now".
func (s *Simulator) CurrentWeather(cityKey string, at time.Time) (WeatherSnapshot, error) {
	city, err := s.registry.Get(cityKey)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	if at.IsZero() {
		at = clock.Now()
	}
	return s.snapshotAt(city, at)
}

func (s *Simulator) snapshotAt(city City, at time.Time) (WeatherSnapshot, error) {
	base, err := baseline(city, at)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	snap, err := synthesize(base, SeasonOf(at.Month()), s.rng(city.Key, at))
	if err != nil {
		return WeatherSnapshot{}, err
	}

	snap.CityKey = city.Key
	snap.CityName = city.Name
	snap.Timestamp = at
	return snap, nil
}

// AllCities synthesizes a snapshot per registered city, in registry order.
// A zero timestamp means "now".
func (s *Simulator) AllCities(at time.Time) ([]WeatherSnapshot, error) {
	if at.IsZero() {
		at = clock.Now()
	}

	snaps := make([]WeatherSnapshot, 0, s.registry.Len())
	for _, city := range s.registry.List() {
		snap, err := s.snapshotAt(city, at)
		if err != nil {
			return nil, fmt.Errorf("synthesize %s: %w", city.Key, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Forecast produces days*24/stepHours snapshots at fixed intervals, starting
// at the next step boundary after now. stepHours 0 selects the default 3h
// step; otherwise it must divide a day evenly.
func (s *Simulator) Forecast(cityKey string, days, stepHours int) (ForecastSeries, error) {
	city, err := s.registry.Get(cityKey)
	if err != nil {
		return ForecastSeries{}, err
	}

	if days < 1 || days > MaxForecastDays {
		return ForecastSeries{}, fmt.Errorf("%w: %d days (supported 1-%d)",
			ErrUnsupportedHorizon, days, MaxForecastDays)
	}
	if stepHours == 0 {
		stepHours = DefaultStepHours
	}
	if stepHours < 1 || stepHours > 24 || 24%stepHours != 0 {
		return ForecastSeries{}, fmt.Errorf("%w: step of %d hours does not divide a day",
			ErrInvalidInput, stepHours)
	}

	now := clock.Now()
	step := time.Duration(stepHours) * time.Hour
	start := nextStepBoundary(now, step)
	count := days * 24 / stepHours

	series := ForecastSeries{
		CityKey:   city.Key,
		CityName:  city.Name,
		StepHours: stepHours,
		Snapshots: make([]WeatherSnapshot, 0, count),
	}

	var prev *WeatherSnapshot
	for i := 0; i < count; i++ {
		snap, err := s.snapshotAt(city, start.Add(step*time.Duration(i)))
		if err != nil {
			return ForecastSeries{}, err
		}
		if prev != nil {
			snap = clampTempStep(snap, prev.Temperature)
		}
		series.Snapshots = append(series.Snapshots, snap)
		prev = &series.Snapshots[len(series.Snapshots)-1]
	}
	return series, nil
}

// nextStepBoundary returns the first multiple of step after t, measured from
// the start of t's day so slots land on wall-clock boundaries (00:00, 03:00, ...).
func nextStepBoundary(t time.Time, step time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	elapsed := t.Sub(midnight)
	slots := elapsed/step + 1
	return midnight.Add(slots * step)
}

// clampTempStep bounds the snapshot's temperature to within MaxTempStepDelta
// of the previous one and rederives the temperature-dependent fields.
func clampTempStep(snap WeatherSnapshot, prevTemp float64) WeatherSnapshot {
	delta := snap.Temperature - prevTemp
	if delta > MaxTempStepDelta {
		snap.Temperature = round1(prevTemp + MaxTempStepDelta)
	} else if delta < -MaxTempStepDelta {
		snap.Temperature = round1(prevTemp - MaxTempStepDelta)
	} else {
		return snap
	}

	snap.FeelsLike = feelsLike(snap.Temperature, snap.WindSpeed, snap.Humidity)
	if snap.TempMin > snap.Temperature {
		snap.TempMin = snap.Temperature
	}
	if snap.TempMax < snap.Temperature {
		snap.TempMax = snap.Temperature
	}
	// Clamping can pull a snow slot above the plausible snow temperature.
	if snap.Condition == LightSnow && snap.Temperature > snowMaxTemp {
		snap.Condition = LightRain
	}
	return snap
}

// WeatherForCoordinates resolves the nearest registered city and synthesizes
// its current weather.
func (s *Simulator) WeatherForCoordinates(lat, lon float64) (WeatherSnapshot, error) {
	city, err := s.registry.Nearest(lat, lon)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	return s.snapshotAt(city, clock.Now())
}

// AirQuality synthesizes pollutant concentrations and the derived AQI bucket
// for the city. Wind from the same instant's weather drives dispersion, so
// the sample never contradicts the reported snapshot. A zero timestamp means
// "now".
func (s *Simulator) AirQuality(cityKey string, at time.Time) (AirQualitySample, error) {
	city, err := s.registry.Get(cityKey)
	if err != nil {
		return AirQualitySample{}, err
	}
	if at.IsZero() {
		at = clock.Now()
	}

	snap, err := s.snapshotAt(city, at)
	if err != nil {
		return AirQualitySample{}, err
	}

	aqi, components := synthesizeAirQuality(SeasonOf(at.Month()), snap.WindSpeed, s.rng("air:"+city.Key, at))
	return AirQualitySample{
		CityKey:    city.Key,
		Timestamp:  at,
		AQI:        aqi,
		Components: components,
		Source:     SourceSimulated,
	}, nil
}
