// Package domain synthesizes plausible weather and air-quality data for
// Brandenburg cities without touching any external API.
//
// # Climate Model
//
// Brandenburg has a continental climate: cold winters, mild summers, modest
// maritime influence from the northwest. The synthetic baseline is composed
// from four independent processes:
//
//	season_base   monthly [min,max] temperature band (see monthlyBands)
//	diurnal       sine curve over the day, peak ~15:00, trough ~03:00,
//	              amplitude scaled per season (±2°C winter, ±4.5°C summer)
//	regional      fixed per-city offset, northern cities cooler
//	noise         bounded uniform perturbation inside the variability band
//
// Monthly bands (°C), matching the region's long-term averages:
//
//	Jan −5..3 | Feb −3..5 | Mar 2..10 | Apr 6..15 | May 11..20 | Jun 15..24
//	Jul 17..26 | Aug 16..25 | Sep 12..20 | Oct 7..14 | Nov 2..8 | Dec −2..4
//
// # Attribute Correlation
//
// Derived attributes must never contradict each other. The correlator draws a
// temperature inside the variability band, then:
//
//   - humidity moves inversely with the temperature's deviation from the
//     baseline mean, clamped to [30,95]%
//   - pressure is a narrow normal draw around 1013 hPa, clamped [980,1040]
//   - wind speed is a seasonal base rate plus noise, floored at 0 m/s
//   - the discrete condition is drawn from a season-weighted distribution
//     (snow only plausible in cold months, thunderstorms mostly in summer)
//
// Consistency holds by construction: cloud cover is drawn from the selected
// condition's admissible range (clear sky ≤ 15%, overcast ≥ 85%, ...), and
// precipitating conditions raise humidity to at least 65% (mist: 80%). Snow
// drawn above 3°C is downgraded to rain.
//
// # Forecasts
//
// A forecast is a sequence of independently synthesized snapshots at a fixed
// step (default 3h), starting at the next step boundary. Temperature is the
// only hard continuity invariant: consecutive snapshots are clamped to at
// most 3°C apart. Humidity, pressure and wind resynthesize freely.
//
// # Air Quality
//
// Pollutant concentrations (co, no, no2, o3, so2, pm2_5, pm10, nh3, µg/m³)
// scale up in the winter heating season and down with wind dispersion. The
// 1–5 AQI index is the bucket of the worst pollutant against the breakpoint
// table in [pollutantBreakpoints] (thresholds follow the OpenWeatherMap AQI
// scale). Ozone is the exception to the seasonal scaling: it peaks in summer.
//
// # Determinism
//
// Every synthesis call owns a private RNG. With a simulator seed configured,
// the RNG is derived from (seed, city key, unix timestamp), so identical
// requests reproduce identical output and concurrent callers never share
// state. Without a seed each call draws fresh randomness.
package domain
