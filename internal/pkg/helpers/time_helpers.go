package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aravind/rollbook/internal/pkg/apperrors"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DateRange is an optional time window. A nil bound means unbounded on that
// side. Both bounds are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether t falls inside the window, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// dateOnlyLayout matches calendar dates without a time component.
const dateOnlyLayout = "2006-01-02"

// ParseDate parses an ISO-8601 date parameter. Full RFC 3339 timestamps and
// bare calendar dates are both accepted.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewCustomError(apperrors.ErrInvalidDate,
		fmt.Sprintf("invalid date %q, use ISO 8601 format", value))
}

// ParseDateRange builds a DateRange from optional start/end query strings.
// A bare-date end bound is widened to the end of that day so that day windows
// stay inclusive.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	var window DateRange

	if startStr != "" {
		start, err := ParseDate(startStr)
		if err != nil {
			return DateRange{}, err
		}
		window.Start = &start
	}

	if endStr != "" {
		end, err := ParseDate(endStr)
		if err != nil {
			return DateRange{}, err
		}
		if _, parseErr := time.Parse(dateOnlyLayout, endStr); parseErr == nil {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		window.End = &end
	}

	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return DateRange{}, apperrors.NewCustomError(apperrors.ErrInvalidDateRange,
			"end_date must not be before start_date")
	}

	return window, nil
}

// FormatTimePtr renders a timestamp pointer as RFC 3339, or nil when unset.
// Used for the nullable start_date/end_date echo fields in stats responses.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
