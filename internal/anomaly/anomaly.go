package anomaly

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/models"
)

const (
	DefaultWindowSize          = 10
	DefaultThresholdMultiplier = 1.5
)

// Detector labels points whose distance from the trailing rolling mean exceeds a multiple of
// the global standard deviation
type Detector struct {
	WindowSize          int
	ThresholdMultiplier float64
}

// NewDetector creates a detector. Non-positive parameters fall back to the defaults.
func NewDetector(windowSize int, thresholdMultiplier float64) *Detector {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if !(thresholdMultiplier > 0) || math.IsInf(thresholdMultiplier, 0) {
		thresholdMultiplier = DefaultThresholdMultiplier
	}
	return &Detector{
		WindowSize:          windowSize,
		ThresholdMultiplier: thresholdMultiplier,
	}
}

// DefaultDetector uses a window of 10 points and a 1.5 multiplier
func DefaultDetector() *Detector {
	return NewDetector(DefaultWindowSize, DefaultThresholdMultiplier)
}

// DetectAnomalies labels a raw series with the default parameters
func DetectAnomalies(raw []models.RawPoint) models.Series {
	return DefaultDetector().Label(raw)
}

// Threshold is the deviation above which a point becomes anomalous
func Threshold(values []float64, multiplier float64) float64 {
	if calculate.IsDegenerate(values) {
		return 0
	}
	return multiplier * stat.PopStdDev(values, nil)
}

// Label assigns a deviation and a label to every point. The global stddev is computed once over
// the whole series; each point is compared with the mean of its trailing window, which shrinks
// near the start instead of being padded. A constant series never produces anomalies.
func (d *Detector) Label(raw []models.RawPoint) models.Series {
	if len(raw) == 0 {
		return models.Series{}
	}

	values := models.RawValues(raw)

	degenerate := calculate.IsDegenerate(values)
	threshold := Threshold(values, d.ThresholdMultiplier)

	series := make(models.Series, len(raw))
	for i, p := range raw {
		point := models.DataPoint{
			Index:     i,
			Timestamp: p.Timestamp,
			Value:     p.Value,
			Label:     models.LabelNormal,
		}
		if t, ok := models.ParseTimestamp(p.Timestamp); ok {
			point.Time = t
		}

		if !degenerate {
			point.Deviation = math.Abs(p.Value - calculate.RollingMean(values, i, d.WindowSize))
			if point.Deviation > threshold {
				point.Label = models.LabelAnomalous
			}
		}

		series[i] = point
	}

	return series
}
