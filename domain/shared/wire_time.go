package shared

import (
	"errors"
	"strings"
	"time"
)

// WireTimeLayout is the timestamp format exchanged with the order API: local
// wall clock, second precision, no zone designator.
const WireTimeLayout = "2006-01-02T15:04:05"

// DateLayout is the day format accepted by filters and the CLI.
const DateLayout = "2006-01-02"

// ErrInvalidTime is returned when a timestamp matches none of the accepted
// layouts.
var ErrInvalidTime = errors.New("invalid timestamp")

var wireParseLayouts = []string{
	WireTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// FormatWireTime renders t's wall clock in WireTimeLayout. Sub-second
// precision is dropped and the zone is neither converted nor written.
func FormatWireTime(t time.Time) string {
	return t.Format(WireTimeLayout)
}

// ParseWireTime parses a server or user supplied timestamp. Zone-less values
// are read as wall clock in loc; RFC 3339 values keep their instant and are
// expressed in loc. A nil loc means time.Local.
func ParseWireTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTime
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	// fractional seconds after the seconds field are accepted by ParseInLocation
	for _, layout := range wireParseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// StartOfDay returns 00:00:00 of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
