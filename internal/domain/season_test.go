package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected Season
	}{
		{time.December, Winter},
		{time.January, Winter},
		{time.February, Winter},
		{time.March, Spring},
		{time.May, Spring},
		{time.June, Summer},
		{time.August, Summer},
		{time.September, Autumn},
		{time.November, Autumn},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, SeasonOf(tt.month))
		})
	}
}

func TestSeasonString(t *testing.T) {
	assert.Equal(t, "winter", Winter.String())
	assert.Equal(t, "spring", Spring.String())
	assert.Equal(t, "summer", Summer.String())
	assert.Equal(t, "autumn", Autumn.String())
}

func TestMonthlyBandsCoverEveryMonth(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		band := monthlyBands[m]
		assert.Less(t, band.Min, band.Max, "month %s", m)
	}
}

func TestDiurnalOffset(t *testing.T) {
	day := func(hour int) time.Time {
		return time.Date(2025, time.July, 10, hour, 0, 0, 0, time.UTC)
	}

	t.Run("peaks mid-afternoon", func(t *testing.T) {
		peak := diurnalOffset(Summer, day(15))
		assert.InDelta(t, diurnalAmplitude[Summer], peak, 0.01)
		assert.Greater(t, peak, diurnalOffset(Summer, day(9)))
		assert.Greater(t, peak, diurnalOffset(Summer, day(21)))
	})

	t.Run("troughs pre-dawn", func(t *testing.T) {
		trough := diurnalOffset(Summer, day(3))
		assert.InDelta(t, -diurnalAmplitude[Summer], trough, 0.01)
	})

	t.Run("winter swing smaller than summer", func(t *testing.T) {
		assert.Less(t, diurnalOffset(Winter, day(15)), diurnalOffset(Summer, day(15)))
	})
}

func TestBaseline(t *testing.T) {
	city := City{Key: "potsdam", Lat: 52.39, Lon: 13.06}

	t.Run("winter noon inside expected range", func(t *testing.T) {
		at := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
		b, err := baseline(city, at)

		require.NoError(t, err)
		// January midpoint is -1°C; the diurnal curve can add at most ±2.
		assert.InDelta(t, -1.0, b.Mean, 2.01)
		assert.Less(t, b.Band.Min, b.Band.Max)
	})

	t.Run("regional offset shifts the mean linearly", func(t *testing.T) {
		at := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)
		north := City{Key: "schwedt", RegionalOffset: -0.8}
		south := City{Key: "senftenberg", RegionalOffset: 0.7}

		bn, err := baseline(north, at)
		require.NoError(t, err)
		bs, err := baseline(south, at)
		require.NoError(t, err)

		assert.InDelta(t, 1.5, bs.Mean-bn.Mean, 0.001)
	})

	t.Run("zero timestamp rejected", func(t *testing.T) {
		_, err := baseline(city, time.Time{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("band centered on mean", func(t *testing.T) {
		at := time.Date(2025, time.April, 1, 6, 0, 0, 0, time.UTC)
		b, err := baseline(city, at)

		require.NoError(t, err)
		assert.InDelta(t, b.Mean, b.Band.Mid(), 0.001)
	})
}
