package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "weather.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestArchive_LoadBatchAndCount(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	sim := domain.NewSimulator(domain.DefaultRegistry(), domain.WithSeed(42))
	snaps, err := sim.AllCities(time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, snaps, 10)

	require.NoError(t, a.LoadBatch(ctx, snaps))

	total, err := a.SnapshotCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	perCity, err := a.SnapshotCount(ctx, "potsdam")
	require.NoError(t, err)
	assert.Equal(t, 1, perCity)
}

func TestArchive_LoadBatch_EmptyIsNoop(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.LoadBatch(ctx, nil))

	total, err := a.SnapshotCount(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestArchive_Recent_RoundTripsPayload(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	sim := domain.NewSimulator(domain.DefaultRegistry(), domain.WithSeed(42))

	earlier, err := sim.CurrentWeather("cottbus", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	later, err := sim.CurrentWeather("cottbus", time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, a.LoadBatch(ctx, []domain.WeatherSnapshot{earlier, later}))

	recent, err := a.Recent(ctx, "cottbus", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first, fields intact through the JSON payload column.
	assert.True(t, recent[0].Timestamp.Equal(later.Timestamp))
	assert.Equal(t, later.Temperature, recent[0].Temperature)
	assert.Equal(t, later.Condition, recent[0].Condition)
	assert.Equal(t, "Cottbus", recent[0].CityName)
	assert.True(t, recent[1].Timestamp.Equal(earlier.Timestamp))
}

func TestArchive_Recent_UnknownCityIsEmpty(t *testing.T) {
	a := openTestArchive(t)

	recent, err := a.Recent(context.Background(), "atlantis", 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
