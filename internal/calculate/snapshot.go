package calculate

import (
	"fmt"
	"math"
)

// Snapshot holds the descriptive statistics of one series. It is computed once per labeled
// series and shared by every consumer.
type Snapshot struct {
	Count            int     `json:"count" yaml:"count"`
	Mean             float64 `json:"mean" yaml:"mean"`
	Median           float64 `json:"median" yaml:"median"`
	Min              float64 `json:"min" yaml:"min"`
	Max              float64 `json:"max" yaml:"max"`
	Range            float64 `json:"range" yaml:"range"`
	Variance         float64 `json:"variance" yaml:"variance"`
	StdDev           float64 `json:"std_dev" yaml:"std_dev"`
	CV               float64 `json:"coefficient_of_variation" yaml:"coefficient_of_variation"` // stddev/mean, 0 when mean is 0
	Q1               float64 `json:"q1" yaml:"q1"`
	Q3               float64 `json:"q3" yaml:"q3"`
	IQR              float64 `json:"iqr" yaml:"iqr"`
	Skewness         float64 `json:"skewness" yaml:"skewness"`
	Kurtosis         float64 `json:"kurtosis" yaml:"kurtosis"`
	TrendSlope       float64 `json:"trend_slope" yaml:"trend_slope"`
	TrendStrength    float64 `json:"trend_strength" yaml:"trend_strength"` // |slope| / stddev
	RecentStdDev     float64 `json:"recent_std_dev" yaml:"recent_std_dev"`
	VolatilityChange float64 `json:"volatility_change_pct" yaml:"volatility_change_pct"`
}

// Describe computes every statistic of the snapshot in one call
func Describe(values []float64) (*Snapshot, error) {
	if err := requireValues("describe", values); err != nil {
		return nil, err
	}

	if err := CheckRange(values); err != nil {
		return nil, fmt.Errorf("describe: %w", err)
	}

	snap := &Snapshot{Count: len(values)}

	// Errors below are impossible once the input is known to be non-empty
	snap.Mean, _ = Mean(values)
	snap.Median, _ = Median(values)
	snap.Min, _ = Min(values)
	snap.Max, _ = Max(values)
	snap.Range = snap.Max - snap.Min
	snap.Q1, snap.Q3, _ = Quartiles(values)
	snap.IQR = snap.Q3 - snap.Q1
	snap.Skewness, _ = Skewness(values)
	snap.Kurtosis, _ = Kurtosis(values)
	snap.TrendSlope, _ = TrendSlope(values)

	if !isDegenerate(values) {
		snap.Variance, _ = Variance(values)
		snap.StdDev = math.Sqrt(snap.Variance)
	}

	if snap.Mean != 0 {
		snap.CV = snap.StdDev / snap.Mean
	}
	if snap.StdDev > 0 {
		snap.TrendStrength = math.Abs(snap.TrendSlope) / snap.StdDev
	}
	snap.RecentStdDev, snap.VolatilityChange = RecentVolatility(values, snap.StdDev)

	if !snap.finite() {
		return nil, fmt.Errorf("describe: %w", ErrOutOfRange)
	}
	return snap, nil
}

func (s *Snapshot) finite() bool {
	for _, v := range []float64{
		s.Mean, s.Median, s.Min, s.Max, s.Range, s.Variance, s.StdDev, s.CV, s.Q1, s.Q3, s.IQR,
		s.Skewness, s.Kurtosis, s.TrendSlope, s.TrendStrength, s.RecentStdDev, s.VolatilityChange,
	} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
