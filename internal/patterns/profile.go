package patterns

import (
	"math"

	"github.com/Alias1177/SeriesLens/internal/calculate"
)

const (
	volatilityChangeHigh = 20.0 // percent
	shapeThreshold       = 1.0
)

// SeriesProfile classifies the overall shape of a series from its snapshot
type SeriesProfile struct {
	Direction         string  `json:"direction" yaml:"direction"`                   // INCREASING, DECREASING or FLAT
	TrendStrength     float64 `json:"trend_strength" yaml:"trend_strength"`         // |slope| / stddev
	Variability       string  `json:"variability" yaml:"variability"`               // HIGH when CV exceeds 0.3
	VolatilityLevel   string  `json:"volatility_level" yaml:"volatility_level"`     // HIGH, NORMAL or LOW
	Skewed            bool    `json:"skewed" yaml:"skewed"`                         // |skewness| > 1
	HeavyTailed       bool    `json:"heavy_tailed" yaml:"heavy_tailed"`             // |excess kurtosis| > 1
	VolatilityChange  float64 `json:"volatility_change_pct" yaml:"volatility_change_pct"`
	RecentPointsCount int     `json:"recent_points" yaml:"recent_points"`
}

// Profile reduces a snapshot to a few labels. A nil snapshot yields an empty FLAT profile.
func Profile(snap *calculate.Snapshot) SeriesProfile {
	profile := SeriesProfile{
		Direction:       "FLAT",
		Variability:     "NORMAL",
		VolatilityLevel: "NORMAL",
	}
	if snap == nil {
		return profile
	}

	if snap.TrendSlope > 0 {
		profile.Direction = "INCREASING"
	} else if snap.TrendSlope < 0 {
		profile.Direction = "DECREASING"
	}
	profile.TrendStrength = snap.TrendStrength

	if snap.Mean != 0 && snap.CV > highVariabilityCV {
		profile.Variability = "HIGH"
	}

	profile.VolatilityChange = snap.VolatilityChange
	if snap.VolatilityChange > volatilityChangeHigh {
		profile.VolatilityLevel = "HIGH"
	} else if snap.VolatilityChange < -volatilityChangeHigh {
		profile.VolatilityLevel = "LOW"
	}

	profile.Skewed = math.Abs(snap.Skewness) > shapeThreshold
	profile.HeavyTailed = math.Abs(snap.Kurtosis) > shapeThreshold
	profile.RecentPointsCount = calculate.RecentWindow(snap.Count)

	return profile
}
