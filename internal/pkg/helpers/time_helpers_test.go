package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISOTimestamp(t *testing.T) {
	tcases := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-03-01T10:30:00Z", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"2025-03-01T10:30:00.250Z", time.Date(2025, 3, 1, 10, 30, 0, 250_000_000, time.UTC), true},
		{"2025-03-01T10:30:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"2025-03-01T10:30", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"2025-03-01T12:30:00+02:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{" 2025-03-01 10:30:00 ", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"tomorrow", time.Time{}, false},
		{"2025-13-01T10:30:00", time.Time{}, false},
		{"", time.Time{}, false},
		{"Z", time.Time{}, false},
	}

	for _, tc := range tcases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseISOTimestamp(tc.input)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}

func TestFormatISO(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2025-03-01T11:30:00", FormatISO(ts))
	assert.Nil(t, FormatISOPtr(nil))
	assert.Equal(t, "2025-03-01T11:30:00", *FormatISOPtr(&ts))
}
