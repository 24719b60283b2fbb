package domain

import "time"

// TimestampLayout is the second-precision text form stored on every event.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp truncates t to the second and renders it in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

// ParseTimestamp parses an event timestamp as a wall-clock time in loc.
// A nil loc means UTC.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(TimestampLayout, s, loc)
}
