package patterns

import (
	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/models"
)

// Analyze runs every analysis over a labeled series. Analyses whose preconditions are not met
// contribute nothing; the call itself never fails. A nil snapshot is computed from the series.
func Analyze(series models.Series, snap *calculate.Snapshot) models.InsightReport {
	report := models.InsightReport{
		Patterns:        []models.Insight{},
		Anomalies:       []models.Insight{},
		Trends:          []models.Insight{},
		Recommendations: []models.Insight{},
	}
	if len(series) == 0 {
		return report
	}

	values := series.Values()
	if snap == nil {
		var err error
		if snap, err = calculate.Describe(values); err != nil {
			return report
		}
	}

	report.Patterns = append(report.Patterns, DetectCyclicalPatterns(values)...)
	report.Patterns = append(report.Patterns, DetectVolatilityClusters(values, snap.Mean, snap.StdDev)...)
	report.Anomalies = append(report.Anomalies, AnalyzeAnomalies(series, snap.Mean, snap.StdDev)...)
	report.Trends = append(report.Trends, DetectTrendShift(values)...)
	report.Recommendations = append(report.Recommendations, Recommend(series, snap, report.Patterns)...)

	return report
}
