package domain

import (
	"fmt"
	"math"
	"time"
)

// Season is derived from the calendar month, never stored.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

func (s Season) String() string {
	switch s {
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	default:
		return "unknown"
	}
}

// SeasonOf maps a month to its meteorological season (Dec-Feb = winter).
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// ClimateBand is a [Min,Max] temperature range in °C.
type ClimateBand struct {
	Min float64
	Max float64
}

// Mid returns the band's midpoint.
func (b ClimateBand) Mid() float64 {
	return (b.Min + b.Max) / 2
}

// monthlyBands holds the Brandenburg climate profile: continental, cold
// winters, mild summers.
var monthlyBands = [13]ClimateBand{
	time.January:   {-5, 3},
	time.February:  {-3, 5},
	time.March:     {2, 10},
	time.April:     {6, 15},
	time.May:       {11, 20},
	time.June:      {15, 24},
	time.July:      {17, 26},
	time.August:    {16, 25},
	time.September: {12, 20},
	time.October:   {7, 14},
	time.November:  {2, 8},
	time.December:  {-2, 4},
}

// diurnalAmplitude scales the within-day temperature swing per season. The
// swing is widest under long summer days and flattest under winter overcast.
var diurnalAmplitude = [4]float64{
	Winter: 2.0,
	Spring: 3.5,
	Summer: 4.5,
	Autumn: 3.0,
}

// diurnalOffset is a smooth periodic curve over the day: peak near 15:00,
// trough near 03:00.
func diurnalOffset(s Season, t time.Time) float64 {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	return diurnalAmplitude[s] * math.Sin((hour-9)*math.Pi/12)
}

// Baseline is the expected temperature and the variability band that bounds
// the noise the attribute correlator may add.
type Baseline struct {
	Mean float64
	Band ClimateBand
}

// baseline computes the mean synthetic temperature for a city at an instant:
// seasonal midpoint + diurnal offset + regional offset. The variability band
// spans a third of the monthly range on either side of the mean.
func baseline(city City, t time.Time) (Baseline, error) {
	if t.IsZero() {
		return Baseline{}, fmt.Errorf("%w: zero timestamp", ErrInvalidInput)
	}
	m := t.Month()
	if m < time.January || m > time.December {
		return Baseline{}, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, m)
	}

	band := monthlyBands[m]
	mean := band.Mid() + diurnalOffset(SeasonOf(m), t) + city.RegionalOffset
	spread := (band.Max - band.Min) / 3

	return Baseline{
		Mean: mean,
		Band: ClimateBand{Min: mean - spread, Max: mean + spread},
	}, nil
}
