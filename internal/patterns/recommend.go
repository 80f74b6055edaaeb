package patterns

import (
	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/models"
)

const (
	KindInvestigateRootCause = "investigate_root_cause"
	KindStabilizeProcess     = "stabilize_process"
	KindLeveragePatterns     = "leverage_patterns"

	highAnomalyRate   = 10.0 // percent
	highVariabilityCV = 0.3
)

// Recommend derives actions from the series and the patterns already found. Each rule is
// independent, so several recommendations can fire together.
func Recommend(series models.Series, snap *calculate.Snapshot, patterns []models.Insight) []models.Insight {
	var recs []models.Insight

	if len(series) > 0 {
		rate := float64(series.AnomalyCount()) / float64(len(series)) * 100
		if rate > highAnomalyRate {
			recs = append(recs, recommendation(KindInvestigateRootCause, "Investigate Root Cause",
				"High anomaly rate suggests systematic issues. Review data collection process.",
				models.LevelHigh))
		}
	}

	if snap != nil && snap.Mean != 0 && snap.StdDev/snap.Mean > highVariabilityCV {
		recs = append(recs, recommendation(KindStabilizeProcess, "Stabilize Process",
			"High variability detected. Consider implementing control measures.",
			models.LevelMedium))
	}

	if HasCyclicalPattern(patterns) {
		recs = append(recs, recommendation(KindLeveragePatterns, "Leverage Patterns",
			"Cyclical patterns detected. Consider predictive modeling for forecasting.",
			models.LevelLow))
	}

	return recs
}

func recommendation(kind, action, description string, priority models.Level) models.Insight {
	return models.Insight{
		Category:    models.CategoryRecommendation,
		Kind:        kind,
		Description: description,
		Level:       priority,
		Metadata:    map[string]any{"action": action},
	}
}
