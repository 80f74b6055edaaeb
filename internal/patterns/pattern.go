package patterns

import (
	"fmt"
	"math"

	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/models"
)

const (
	KindCyclical   = "cyclical"
	KindVolatility = "volatility"

	cyclicalThreshold     = 0.3
	cyclicalHighThreshold = 0.5
	volatilityWindow      = 10
	volatilityFactor      = 1.5
	volatilityHighCount   = 5
)

// CandidatePeriods are the cycle lengths checked for autocorrelation
var CandidatePeriods = []int{7, 14, 30}

// DetectCyclicalPatterns looks for autocorrelation at lags up to each candidate period.
// Periods longer than half the series are skipped.
func DetectCyclicalPatterns(values []float64) []models.Insight {
	var insights []models.Insight

	for _, period := range CandidatePeriods {
		if len(values) < period*2 {
			continue
		}

		bestLag, bestCorr := 0, 0.0
		for lag := 1; lag <= period; lag++ {
			corr := math.Abs(calculate.LagCorrelation(values, lag))
			// strict comparison keeps the first lag on ties
			if corr > bestCorr {
				bestLag, bestCorr = lag, corr
			}
		}

		if bestCorr <= cyclicalThreshold {
			continue
		}

		confidence := models.LevelMedium
		if bestCorr > cyclicalHighThreshold {
			confidence = models.LevelHigh
		}

		insights = append(insights, models.Insight{
			Category:    models.CategoryPattern,
			Kind:        KindCyclical,
			Description: fmt.Sprintf("Potential %d-point cyclical pattern detected (correlation: %.1f%%)", period, bestCorr*100),
			Level:       confidence,
			Metadata: map[string]any{
				"period":      period,
				"lag":         bestLag,
				"correlation": bestCorr,
			},
		})
	}

	return insights
}

// DetectVolatilityClusters counts 20-point windows whose spread around the global mean
// exceeds 1.5 times the global stddev
func DetectVolatilityClusters(values []float64, mean, stdDev float64) []models.Insight {
	clusters := 0
	for i := volatilityWindow; i < len(values)-volatilityWindow; i++ {
		local := calculate.WindowStdDev(values, i-volatilityWindow, i+volatilityWindow, mean)
		if local > stdDev*volatilityFactor {
			clusters++
		}
	}

	if clusters == 0 {
		return nil
	}

	impact := models.LevelLow
	if clusters > volatilityHighCount {
		impact = models.LevelHigh
	}

	return []models.Insight{{
		Category:    models.CategoryPattern,
		Kind:        KindVolatility,
		Description: fmt.Sprintf("%d high-volatility clusters detected", clusters),
		Level:       models.LevelMedium,
		Metadata: map[string]any{
			"count":  clusters,
			"impact": impact,
		},
	}}
}

// HasCyclicalPattern reports whether any of the insights is a cyclical pattern
func HasCyclicalPattern(insights []models.Insight) bool {
	for _, in := range insights {
		if in.Category == models.CategoryPattern && in.Kind == KindCyclical {
			return true
		}
	}
	return false
}
