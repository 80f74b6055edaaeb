package patterns

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/Alias1177/SeriesLens/models"
)

const (
	KindDirection  = "direction"
	KindClustering = "clustering"

	directionHighGap = 2.0
	clusterMaxGap    = 5
)

// AnalyzeAnomalies describes where anomalies sit relative to the mean and whether they
// bunch up in time
func AnalyzeAnomalies(series models.Series, mean, stdDev float64) []models.Insight {
	anomalies := series.Anomalies()
	if len(anomalies) == 0 {
		return nil
	}

	anomalyMean := stat.Mean(anomalies.Values(), nil)

	direction := "below"
	if anomalyMean > mean {
		direction = "above"
	}

	var gap float64
	if stdDev > 0 {
		gap = math.Abs(anomalyMean-mean) / stdDev
	}
	severity := models.LevelMedium
	if gap > directionHighGap {
		severity = models.LevelHigh
	}

	insights := []models.Insight{{
		Category:    models.CategoryAnomaly,
		Kind:        KindDirection,
		Description: fmt.Sprintf("Anomalies tend to be %s normal values", direction),
		Level:       severity,
		Metadata: map[string]any{
			"direction":      direction,
			"anomaly_mean":   anomalyMean,
			"normalized_gap": gap,
		},
	}}

	indices := make([]int, len(anomalies))
	for i, p := range anomalies {
		indices[i] = p.Index
	}
	slices.Sort(indices)

	if clusters := FindClusters(indices, clusterMaxGap); len(clusters) > 1 {
		insights = append(insights, models.Insight{
			Category:    models.CategoryAnomaly,
			Kind:        KindClustering,
			Description: fmt.Sprintf("Anomalies appear in %d distinct clusters", len(clusters)),
			Metadata: map[string]any{
				"pattern":  "temporal",
				"clusters": len(clusters),
			},
		})
	}

	return insights
}

// FindClusters groups ascending indices into runs where consecutive members are at most maxGap
// apart. Runs with a single member are dropped.
func FindClusters(indices []int, maxGap int) [][]int {
	if len(indices) == 0 {
		return nil
	}

	var clusters [][]int
	current := []int{indices[0]}
	for i := 1; i < len(indices); i++ {
		if indices[i]-indices[i-1] <= maxGap {
			current = append(current, indices[i])
			continue
		}
		clusters = append(clusters, current)
		current = []int{indices[i]}
	}
	clusters = append(clusters, current)

	return slices.DeleteFunc(clusters, func(c []int) bool { return len(c) < 2 })
}
