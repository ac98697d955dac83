package domain

import "math/rand"

// Condition is the discrete weather state, using OpenWeatherMap-style
// description strings.
type Condition string

const (
	ClearSky        Condition = "clear sky"
	FewClouds       Condition = "few clouds"
	ScatteredClouds Condition = "scattered clouds"
	BrokenClouds    Condition = "broken clouds"
	OvercastClouds  Condition = "overcast clouds"
	LightRain       Condition = "light rain"
	ModerateRain    Condition = "moderate rain"
	LightDrizzle    Condition = "light drizzle"
	Thunderstorm    Condition = "thunderstorm"
	LightSnow       Condition = "light snow"
	Mist            Condition = "mist"
)

// Consistency thresholds between the discrete condition and the continuous
// fields. Clear sky must not co-occur with heavy cloud cover; precipitation
// must not co-occur with dry air.
const (
	ClearSkyMaxCloudCover = 15
	PrecipMinHumidity     = 65
	mistMinHumidity       = 80
)

// conditionProfile binds a condition to the field ranges it admits. Drawing
// cloud cover and precipitation probability from the profile (rather than
// reconciling afterwards) makes condition/field consistency hold by
// construction.
type conditionProfile struct {
	cond        Condition
	cloudMin    int
	cloudMax    int
	minHumidity int // 0 when unconstrained
	popMin      float64
	popMax      float64
	precip      bool
}

// conditionProfiles lists every condition in the fixed order the seasonal
// weight tables index into.
var conditionProfiles = []conditionProfile{
	{cond: ClearSky, cloudMin: 0, cloudMax: ClearSkyMaxCloudCover, popMax: 0.05},
	{cond: FewClouds, cloudMin: 10, cloudMax: 30, popMax: 0.1},
	{cond: ScatteredClouds, cloudMin: 25, cloudMax: 50, popMin: 0.05, popMax: 0.2},
	{cond: BrokenClouds, cloudMin: 50, cloudMax: 84, popMin: 0.1, popMax: 0.3},
	{cond: OvercastClouds, cloudMin: 85, cloudMax: 100, popMin: 0.2, popMax: 0.4},
	{cond: LightRain, cloudMin: 60, cloudMax: 100, minHumidity: PrecipMinHumidity, popMin: 0.5, popMax: 0.8, precip: true},
	{cond: ModerateRain, cloudMin: 75, cloudMax: 100, minHumidity: PrecipMinHumidity, popMin: 0.7, popMax: 0.95, precip: true},
	{cond: LightDrizzle, cloudMin: 60, cloudMax: 95, minHumidity: PrecipMinHumidity, popMin: 0.4, popMax: 0.7, precip: true},
	{cond: Thunderstorm, cloudMin: 70, cloudMax: 100, minHumidity: PrecipMinHumidity, popMin: 0.6, popMax: 0.9, precip: true},
	{cond: LightSnow, cloudMin: 60, cloudMax: 100, minHumidity: PrecipMinHumidity, popMin: 0.5, popMax: 0.8, precip: true},
	{cond: Mist, cloudMin: 40, cloudMax: 90, minHumidity: mistMinHumidity, popMin: 0.1, popMax: 0.3},
}

// seasonConditionWeights weights each profile per season: more clear skies in
// summer, more overcast and snow in winter, more rain in autumn. Weights need
// not sum to one.
var seasonConditionWeights = [4][]float64{
	Winter: {0.30, 0.20, 0.25, 0.15, 0.05, 0.02, 0.01, 0.01, 0.01, 0.08, 0.02},
	Spring: {0.25, 0.20, 0.20, 0.15, 0.08, 0.05, 0.03, 0.02, 0.01, 0.01, 0.02},
	Summer: {0.40, 0.25, 0.15, 0.10, 0.03, 0.03, 0.02, 0.01, 0.01, 0.00, 0.01},
	Autumn: {0.20, 0.15, 0.25, 0.20, 0.10, 0.05, 0.02, 0.02, 0.01, 0.00, 0.03},
}

// IsPrecipitation reports whether the condition implies falling precipitation.
func (c Condition) IsPrecipitation() bool {
	p, ok := profileFor(c)
	return ok && p.precip
}

func profileFor(c Condition) (conditionProfile, bool) {
	for _, p := range conditionProfiles {
		if p.cond == c {
			return p, true
		}
	}
	return conditionProfile{}, false
}

// drawCondition picks a profile from the season-weighted distribution.
func drawCondition(s Season, rng *rand.Rand) conditionProfile {
	weights := seasonConditionWeights[s]

	var total float64
	for _, w := range weights {
		total += w
	}

	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return conditionProfiles[i]
		}
	}
	return conditionProfiles[len(conditionProfiles)-1]
}
