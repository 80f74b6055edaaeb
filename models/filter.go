package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTimeWindow = errors.New("unknown time window")
	ErrUnknownSortKey    = errors.New("unknown sort key")
	ErrUnknownSortOrder  = errors.New("unknown sort order")
)

// TimeWindow names a trailing window ending at now
type TimeWindow string

const (
	WindowAll     TimeWindow = "all"
	WindowLast24h TimeWindow = "last24h"
	WindowLast7d  TimeWindow = "last7d"
	WindowLast30d TimeWindow = "last30d"
)

// SortKey selects the field used for ordering
type SortKey string

const (
	SortByTimestamp SortKey = "timestamp"
	SortByValue     SortKey = "value"
	SortByDeviation SortKey = "deviation"
)

// SortOrder is ascending or descending
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterState is owned by the caller and fully describes a filtered view
type FilterState struct {
	TimeWindow    TimeWindow `json:"time_window" yaml:"time_window"`
	ValueMin      *float64   `json:"value_min,omitempty" yaml:"value_min,omitempty"` // nil = unconstrained
	ValueMax      *float64   `json:"value_max,omitempty" yaml:"value_max,omitempty"`
	ShowAnomalies bool       `json:"show_anomalies" yaml:"show_anomalies"`
	ShowNormal    bool       `json:"show_normal" yaml:"show_normal"`
	SortKey       SortKey    `json:"sort_key" yaml:"sort_key"`
	SortOrder     SortOrder  `json:"sort_order" yaml:"sort_order"`
}

// ParseTimeWindow validates a window name. Empty means all.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch w := TimeWindow(strings.ToLower(strings.TrimSpace(s))); w {
	case "":
		return WindowAll, nil
	case WindowAll, WindowLast24h, WindowLast7d, WindowLast30d:
		return w, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeWindow, s)
}

// ParseSortKey validates a sort key. Empty means timestamp.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByTimestamp, nil
	case SortByTimestamp, SortByValue, SortByDeviation:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// ParseSortOrder validates a sort order. Empty means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortAsc, nil
	case SortAsc, SortDesc:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
}
