package models

import (
	"strings"
	"time"
)

// ISOMillis is the timestamp layout used for generated series
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats ingestion produces.
// The second result is false when none of the layouts match.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WindowDuration returns the span covered by a named window.
// WindowAll and unknown names return false.
func WindowDuration(w TimeWindow) (time.Duration, bool) {
	switch w {
	case WindowLast24h:
		return 24 * time.Hour, true
	case WindowLast7d:
		return 7 * 24 * time.Hour, true
	case WindowLast30d:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}
