package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPattern = errors.New("unknown pattern")
	ErrUnknownTrend   = errors.New("unknown trend")
)

// Pattern selects the shape function of a synthetic series
type Pattern string

const (
	PatternLinear     Pattern = "linear"
	PatternSinusoidal Pattern = "sinusoidal"
	PatternSeasonal   Pattern = "seasonal"
	PatternCyclical   Pattern = "cyclical"
	PatternVolatile   Pattern = "volatile"
	PatternSmooth     Pattern = "smooth"
	PatternMixed      Pattern = "mixed"
)

// Patterns lists every supported pattern in presentation order
var Patterns = []Pattern{
	PatternLinear, PatternSinusoidal, PatternSeasonal, PatternCyclical,
	PatternVolatile, PatternSmooth, PatternMixed,
}

// Trend selects the drift applied on top of the pattern
type Trend string

const (
	TrendStable    Trend = "stable"
	TrendGrowing   Trend = "growing"
	TrendDeclining Trend = "declining"
	TrendVolatile  Trend = "volatile"
)

// Trends lists every supported trend in presentation order
var Trends = []Trend{TrendStable, TrendGrowing, TrendDeclining, TrendVolatile}

// ParsePattern validates a pattern name
func ParsePattern(s string) (Pattern, error) {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Patterns {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// ParseTrend validates a trend name
func ParseTrend(s string) (Trend, error) {
	t := Trend(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Trends {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTrend, s)
}

// GenerationConfig is the declarative input of the series generator
type GenerationConfig struct {
	PointCount  int     `json:"data_points" yaml:"data_points"`
	Pattern     Pattern `json:"pattern" yaml:"pattern"`
	NoiseLevel  float64 `json:"noise_level" yaml:"noise_level"`   // 0..1
	AnomalyRate float64 `json:"anomaly_rate" yaml:"anomaly_rate"` // 0..1
	Trend       Trend   `json:"trend" yaml:"trend"`
}

// Normalize clamps the rates into [0,1] and the point count to be non-negative
func (c GenerationConfig) Normalize() GenerationConfig {
	if c.PointCount < 0 {
		c.PointCount = 0
	}
	c.NoiseLevel = clamp01(c.NoiseLevel)
	c.AnomalyRate = clamp01(c.AnomalyRate)
	return c
}

// String renders the same preview sentence the generator form shows
func (c GenerationConfig) String() string {
	return fmt.Sprintf("%d points with %s pattern, %.0f%% noise, %.0f%% anomalies and %s trend",
		c.PointCount, c.Pattern, c.NoiseLevel*100, c.AnomalyRate*100, c.Trend)
}

func clamp01(v float64) float64 {
	// NaN fails both comparisons, map it to zero
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
