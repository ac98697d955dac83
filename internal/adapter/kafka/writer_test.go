package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	snap := domain.WeatherSnapshot{
		CityKey:     "potsdam",
		CityName:    "Potsdam",
		Timestamp:   time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Temperature: -1.3,
		Humidity:    78,
		Condition:   domain.LightSnow,
		Source:      domain.SourceSimulated,
	}

	msg, err := serializeToMessage(snap)
	require.NoError(t, err)

	assert.Equal(t, []byte("potsdam"), msg.Key)

	var decoded domain.WeatherSnapshot
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, snap.CityName, decoded.CityName)
	assert.Equal(t, snap.Temperature, decoded.Temperature)
	assert.Equal(t, snap.Condition, decoded.Condition)
	assert.True(t, snap.Timestamp.Equal(decoded.Timestamp))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, string(domain.LightSnow), headers["condition"])
	assert.Equal(t, "2026-01-15T12:00:00Z", headers["generated_at"])
}
