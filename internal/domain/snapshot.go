package domain

import "time"

// SourceSimulated tags every record this package produces, so downstream
// consumers can tell synthetic data from real observations.
const SourceSimulated = "simulated"

// WeatherSnapshot is a single consistent weather observation for one city at
// one instant. Value type: created fresh per request, never mutated after
// construction.
type WeatherSnapshot struct {
	CityKey   string    `json:"city_key"`
	CityName  string    `json:"city_name"`
	Timestamp time.Time `json:"timestamp"`

	Temperature float64 `json:"temperature"` // °C
	FeelsLike   float64 `json:"feels_like"`  // °C
	TempMin     float64 `json:"temp_min"`    // °C
	TempMax     float64 `json:"temp_max"`    // °C

	Humidity      int     `json:"humidity"`       // %
	Pressure      int     `json:"pressure"`       // hPa
	WindSpeed     float64 `json:"wind_speed"`     // m/s
	WindGust      float64 `json:"wind_gust"`      // m/s
	WindDirection int     `json:"wind_direction"` // degrees, 0-359
	CloudCover    int     `json:"cloud_cover"`    // %
	Visibility    int     `json:"visibility"`     // meters

	Condition         Condition `json:"condition"`
	PrecipProbability float64   `json:"precip_probability"` // 0-1

	Source string `json:"source"`
}

// ForecastSeries is an ordered sequence of snapshots at a fixed step covering
// a requested horizon. Consecutive temperatures differ by at most
// MaxTempStepDelta.
type ForecastSeries struct {
	CityKey   string            `json:"city_key"`
	CityName  string            `json:"city_name"`
	StepHours int               `json:"step_hours"`
	Snapshots []WeatherSnapshot `json:"snapshots"`
}

// AirQualitySample holds the 1-5 AQI bucket and the pollutant concentrations
// (µg/m³) it was derived from. The AQI is always the bucket of the worst
// pollutant per the breakpoint table.
type AirQualitySample struct {
	CityKey    string             `json:"city_key"`
	Timestamp  time.Time          `json:"timestamp"`
	AQI        int                `json:"aqi"`
	Components map[string]float64 `json:"components"`
	Source     string             `json:"source"`
}
