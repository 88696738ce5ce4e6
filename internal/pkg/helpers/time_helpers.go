package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrInvalidTimestamp is returned when a client timestamp cannot be parsed
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// naive ISO-8601 layouts accepted after an optional trailing Z is removed
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseISOTimestamp parses client supplied ISO-8601 timestamps. A trailing
// "Z" is stripped and zone-less values are read as UTC. Explicit offsets
// such as "+02:00" are honoured. The result is always in UTC.
func ParseISOTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTimestamp
	}

	value = strings.TrimSuffix(value, "Z")

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidTimestamp
}

// FormatISO renders a timestamp the way API responses expose it
func FormatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}

// FormatISOPtr renders an optional timestamp, returning nil when absent
func FormatISOPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatISO(*t)
	return &s
}
