package patterns

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/SeriesLens/models"
)

const (
	KindRecentShift = "recent_shift"

	recentMaxPoints = 50
	recentFraction  = 0.3
	shiftThreshold  = 5.0 // percent
)

// RecentSplit returns how many trailing points count as recent: min(50, floor(0.3n))
func RecentSplit(n int) int {
	return min(recentMaxPoints, int(math.Floor(float64(n)*recentFraction)))
}

// DetectTrendShift compares the mean of the recent tail with the mean of the history before it
func DetectTrendShift(values []float64) []models.Insight {
	recentLen := RecentSplit(len(values))
	histLen := len(values) - recentLen
	if recentLen == 0 || histLen == 0 {
		return nil
	}

	recentMean := stat.Mean(values[histLen:], nil)
	historicalMean := stat.Mean(values[:histLen], nil)
	if historicalMean == 0 {
		return nil
	}

	change := (recentMean - historicalMean) / historicalMean * 100
	if math.Abs(change) <= shiftThreshold {
		return nil
	}

	direction, verb := "up", "increasing"
	if change < 0 {
		direction, verb = "down", "decreasing"
	}

	return []models.Insight{{
		Category:    models.CategoryTrend,
		Kind:        KindRecentShift,
		Description: fmt.Sprintf("Recent values are %s by %.1f%%", verb, math.Abs(change)),
		Metadata: map[string]any{
			"direction":       direction,
			"magnitude":       math.Abs(change),
			"recent_mean":     recentMean,
			"historical_mean": historicalMean,
			"recent_points":   recentLen,
		},
	}}
}
