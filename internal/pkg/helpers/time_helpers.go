package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ISODateLayout is the wire format for date-only fields (daily focus keys).
const ISODateLayout = "2006-01-02"

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseISODate validates a YYYY-MM-DD date string and returns it
// normalized. The canonical string, not a time.Time, is what keys the
// daily-focus table and cache.
func ParseISODate(value string) (string, error) {
	parsed, err := time.Parse(ISODateLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return parsed.Format(ISODateLayout), nil
}
