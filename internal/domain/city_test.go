package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	assert.Equal(t, 10, reg.Len())

	t.Run("stable order", func(t *testing.T) {
		first := reg.List()
		second := reg.List()
		assert.Empty(t, cmp.Diff(first, second))
		assert.Equal(t, "potsdam", first[0].Key)
		assert.Equal(t, "schwedt", first[len(first)-1].Key)
	})

	t.Run("list returns a copy", func(t *testing.T) {
		list := reg.List()
		list[0].Key = "mutated"
		assert.Equal(t, "potsdam", reg.List()[0].Key)
	})

	t.Run("northern cities carry negative offsets", func(t *testing.T) {
		for _, c := range reg.List() {
			if c.Lat > 52.7 {
				assert.Negative(t, c.RegionalOffset, "city %s", c.Key)
			}
		}
	})
}

func TestRegistryGet(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("known key", func(t *testing.T) {
		city, err := reg.Get("eberswalde")
		require.NoError(t, err)
		assert.Equal(t, "Eberswalde", city.Name)
		assert.InDelta(t, 52.8339, city.Lat, 0.0001)
	})

	t.Run("unknown key echoed in error", func(t *testing.T) {
		_, err := reg.Get("nonexistent")
		require.ErrorIs(t, err, ErrUnknownCity)
		assert.Contains(t, err.Error(), "nonexistent")
	})
}

func TestNewRegistryIgnoresDuplicateKeys(t *testing.T) {
	reg := NewRegistry([]City{
		{Key: "a", Name: "First"},
		{Key: "a", Name: "Second"},
		{Key: "b", Name: "Third"},
	})

	assert.Equal(t, 2, reg.Len())
	city, err := reg.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "First", city.Name)
}

func TestRegistryNearest(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("exact registered coordinates resolve to that city", func(t *testing.T) {
		for _, c := range reg.List() {
			got, err := reg.Nearest(c.Lat, c.Lon)
			require.NoError(t, err)
			assert.Equal(t, c.Key, got.Key)
		}
	})

	t.Run("point between cities resolves to the closer one", func(t *testing.T) {
		// Slightly north-east of Potsdam, far from everything else.
		got, err := reg.Nearest(52.45, 13.10)
		require.NoError(t, err)
		assert.Equal(t, "potsdam", got.Key)
	})

	t.Run("empty registry", func(t *testing.T) {
		empty := NewRegistry(nil)
		_, err := empty.Nearest(52.4, 13.1)
		require.ErrorIs(t, err, ErrNoCitiesConfigured)
	})

	t.Run("ties break by registry order", func(t *testing.T) {
		twin := NewRegistry([]City{
			{Key: "first", Lat: 52.0, Lon: 13.0},
			{Key: "second", Lat: 52.0, Lon: 13.0},
		})
		got, err := twin.Nearest(52.0, 13.0)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Key)
	})
}
