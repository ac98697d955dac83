package domain

import (
	"fmt"
	"math"
	"math/rand"
)

// seasonalWindBase is the mean wind speed (m/s) per season; Brandenburg winds
// pick up in the storm-prone cold half of the year.
var seasonalWindBase = [4]float64{
	Winter: 4.5,
	Spring: 3.2,
	Summer: 2.6,
	Autumn: 4.0,
}

const (
	humidityMin = 30
	humidityMax = 95

	pressureMean = 1013
	pressureMin  = 980
	pressureMax  = 1040

	// Snow drawn above this temperature is physically implausible and is
	// downgraded to rain.
	snowMaxTemp = 3.0
)

// synthesize derives the full correlated attribute set from a baseline. The
// caller owns rng, so concurrent requests never share random state.
func synthesize(b Baseline, s Season, rng *rand.Rand) (WeatherSnapshot, error) {
	if b.Band.Min > b.Band.Max {
		return WeatherSnapshot{}, fmt.Errorf("%w: climate band min %.1f exceeds max %.1f",
			ErrConfiguration, b.Band.Min, b.Band.Max)
	}

	half := (b.Band.Max - b.Band.Min) / 2
	temp := b.Mean + (rng.Float64()*2-1)*half

	// Hotter than the seasonal mean means drier air.
	deviation := temp - b.Mean
	humidity := clampInt(62-int(math.Round(deviation*4))+rng.Intn(17)-8, humidityMin, humidityMax)

	pressure := clampInt(pressureMean+int(math.Round(rng.NormFloat64()*8)), pressureMin, pressureMax)

	wind := seasonalWindBase[s] + rng.NormFloat64()*1.8
	if wind < 0 {
		wind = 0
	}
	gust := wind + rng.Float64()*4

	prof := drawCondition(s, rng)
	if prof.cond == LightSnow && temp > snowMaxTemp {
		prof, _ = profileFor(LightRain)
	}

	cloud := prof.cloudMin + rng.Intn(prof.cloudMax-prof.cloudMin+1)
	if humidity < prof.minHumidity {
		humidity = prof.minHumidity + rng.Intn(humidityMax-prof.minHumidity+1)
	}
	pop := prof.popMin + rng.Float64()*(prof.popMax-prof.popMin)

	visibility := 8000 + rng.Intn(2001)
	if prof.cond == Mist {
		visibility = 1000 + rng.Intn(3001)
	}

	temp = round1(temp)
	wind = round1(wind)

	return WeatherSnapshot{
		Temperature:       temp,
		FeelsLike:         feelsLike(temp, wind, humidity),
		TempMin:           round1(temp - 1 - rng.Float64()*3),
		TempMax:           round1(temp + 1 + rng.Float64()*3),
		Humidity:          humidity,
		Pressure:          pressure,
		WindSpeed:         wind,
		WindGust:          round1(gust),
		WindDirection:     rng.Intn(360),
		CloudCover:        cloud,
		Visibility:        visibility,
		Condition:         prof.cond,
		PrecipProbability: round2(pop),
		Source:            SourceSimulated,
	}, nil
}

// feelsLike computes apparent temperature: JAG/TI wind chill in cold windy
// conditions, Steadman heat index in hot humid ones, air temperature
// otherwise.
func feelsLike(tempC, windMS float64, humidity int) float64 {
	windKmh := windMS * 3.6

	if tempC <= 10 && windKmh >= 4.8 {
		v := math.Pow(windKmh, 0.16)
		return round1(13.12 + 0.6215*tempC - 11.37*v + 0.3965*tempC*v)
	}

	if tempC >= 27 && humidity >= 40 {
		vapor := float64(humidity) / 100 * 6.105 * math.Exp(17.27*tempC/(237.7+tempC))
		return round1(tempC + 0.33*vapor - 4.0)
	}

	return tempC
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
