package domain

import (
	"fmt"

	"github.com/umahmood/haversine"
)

// City identifies a simulated location. RegionalOffset is added linearly to
// the seasonal baseline temperature; northern cities carry negative offsets.
type City struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	RegionalOffset float64 `json:"regional_offset"`
}

// Registry is an immutable, ordered collection of cities. It is built once at
// startup and read-only thereafter, so concurrent lookups need no locking.
type Registry struct {
	cities []City
	byKey  map[string]int
}

// NewRegistry builds a registry preserving the given order. Later duplicates
// of a key are ignored.
func NewRegistry(cities []City) *Registry {
	r := &Registry{
		cities: make([]City, 0, len(cities)),
		byKey:  make(map[string]int, len(cities)),
	}
	for _, c := range cities {
		if _, ok := r.byKey[c.Key]; ok {
			continue
		}
		r.byKey[c.Key] = len(r.cities)
		r.cities = append(r.cities, c)
	}
	return r
}

// DefaultRegistry returns the ten major Brandenburg cities.
func DefaultRegistry() *Registry {
	return NewRegistry([]City{
		{Key: "potsdam", Name: "Potsdam", Lat: 52.3906, Lon: 13.0645, RegionalOffset: 0.0},
		{Key: "cottbus", Name: "Cottbus", Lat: 51.7606, Lon: 14.3349, RegionalOffset: 0.6},
		{Key: "brandenburg_havel", Name: "Brandenburg an der Havel", Lat: 52.4125, Lon: 12.5492, RegionalOffset: 0.1},
		{Key: "frankfurt_oder", Name: "Frankfurt (Oder)", Lat: 52.3481, Lon: 14.5507, RegionalOffset: 0.2},
		{Key: "eberswalde", Name: "Eberswalde", Lat: 52.8339, Lon: 13.8217, RegionalOffset: -0.5},
		{Key: "oranienburg", Name: "Oranienburg", Lat: 52.7545, Lon: 13.2369, RegionalOffset: -0.3},
		{Key: "rathenow", Name: "Rathenow", Lat: 52.6047, Lon: 12.3367, RegionalOffset: -0.1},
		{Key: "senftenberg", Name: "Senftenberg", Lat: 51.5255, Lon: 14.0025, RegionalOffset: 0.7},
		{Key: "neuruppin", Name: "Neuruppin", Lat: 52.9245, Lon: 12.8012, RegionalOffset: -0.6},
		{Key: "schwedt", Name: "Schwedt/Oder", Lat: 53.0606, Lon: 14.2825, RegionalOffset: -0.8},
	})
}

// List returns the cities in registry order. The slice is a copy.
func (r *Registry) List() []City {
	out := make([]City, len(r.cities))
	copy(out, r.cities)
	return out
}

// Get resolves a city by key.
func (r *Registry) Get(key string) (City, error) {
	i, ok := r.byKey[key]
	if !ok {
		return City{}, fmt.Errorf("%w: %q", ErrUnknownCity, key)
	}
	return r.cities[i], nil
}

// Len reports the number of registered cities.
func (r *Registry) Len() int {
	return len(r.cities)
}

// Nearest returns the registered city closest to the given coordinates by
// great-circle distance. Ties resolve to the earlier registry entry.
func (r *Registry) Nearest(lat, lon float64) (City, error) {
	if len(r.cities) == 0 {
		return City{}, ErrNoCitiesConfigured
	}

	target := haversine.Coord{Lat: lat, Lon: lon}
	best := 0
	bestKm := -1.0
	for i, c := range r.cities {
		_, km := haversine.Distance(target, haversine.Coord{Lat: c.Lat, Lon: c.Lon})
		if bestKm < 0 || km < bestKm {
			best = i
			bestKm = km
		}
	}
	return r.cities[best], nil
}
