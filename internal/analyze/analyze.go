package analyze

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SeriesLens/internal/anomaly"
	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/internal/filter"
	"github.com/Alias1177/SeriesLens/internal/metrics"
	"github.com/Alias1177/SeriesLens/internal/patterns"
	"github.com/Alias1177/SeriesLens/models"
)

var ErrEmptySeries = errors.New("series is empty")

// Source labels where a series came from in metrics and logs
type Source string

const (
	SourceUpload    Source = "upload"
	SourceGenerated Source = "generate"
)

// Options tunes one pipeline run
type Options struct {
	WindowSize          int
	ThresholdMultiplier float64
	Source              Source
}

// DefaultOptions uses the default detector parameters
func DefaultOptions() Options {
	return Options{
		WindowSize:          anomaly.DefaultWindowSize,
		ThresholdMultiplier: anomaly.DefaultThresholdMultiplier,
		Source:              SourceUpload,
	}
}

// Result is everything derived from one labeled series
type Result struct {
	Series     models.Series          `json:"data" yaml:"data"`
	Statistics *calculate.Snapshot    `json:"statistics" yaml:"statistics"`
	Insights   models.InsightReport   `json:"insights" yaml:"insights"`
	Profile    patterns.SeriesProfile `json:"profile" yaml:"profile"`
	Histogram  []calculate.Bin        `json:"histogram" yaml:"histogram"`
	Summary    *models.Summary        `json:"summary" yaml:"summary"`
}

// Run labels a raw series and analyzes it
func Run(raw []models.RawPoint, opts Options) (*Result, error) {
	if len(raw) == 0 {
		metrics.AnalysesTotal.WithLabelValues(string(opts.Source), "error").Inc()
		return nil, ErrEmptySeries
	}

	detector := anomaly.NewDetector(opts.WindowSize, opts.ThresholdMultiplier)
	return RunSeries(detector.Label(raw), opts.Source)
}

// RunSeries analyzes an already labeled series
func RunSeries(series models.Series, source Source) (*Result, error) {
	start := time.Now()
	logger := log.With().Str("component", "analyze").Str("source", string(source)).Logger()

	if len(series) == 0 {
		metrics.AnalysesTotal.WithLabelValues(string(source), "error").Inc()
		return nil, ErrEmptySeries
	}

	values := series.Values()
	snap, err := calculate.Describe(values)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(source), "error").Inc()
		return nil, fmt.Errorf("describe series: %w", err)
	}

	histogram, err := calculate.Histogram(values)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(source), "error").Inc()
		return nil, fmt.Errorf("build histogram: %w", err)
	}

	result := &Result{
		Series:     series,
		Statistics: snap,
		Insights:   patterns.Analyze(series, snap),
		Profile:    patterns.Profile(snap),
		Histogram:  histogram,
		Summary:    filter.Summarize(series),
	}

	anomalies := series.AnomalyCount()
	metrics.AnalysesTotal.WithLabelValues(string(source), "ok").Inc()
	metrics.PointsAnalyzed.Add(float64(len(series)))
	metrics.AnomaliesDetected.Add(float64(anomalies))
	metrics.InsightsTotal.WithLabelValues(string(models.CategoryPattern)).Add(float64(len(result.Insights.Patterns)))
	metrics.InsightsTotal.WithLabelValues(string(models.CategoryAnomaly)).Add(float64(len(result.Insights.Anomalies)))
	metrics.InsightsTotal.WithLabelValues(string(models.CategoryTrend)).Add(float64(len(result.Insights.Trends)))
	metrics.InsightsTotal.WithLabelValues(string(models.CategoryRecommendation)).Add(float64(len(result.Insights.Recommendations)))
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	logger.Debug().
		Int("points", len(series)).
		Int("anomalies", anomalies).
		Int("insights", result.Insights.Total()).
		Dur("took", time.Since(start)).
		Msg("Analysis complete")

	return result, nil
}
