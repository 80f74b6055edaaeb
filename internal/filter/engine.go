package filter

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/Alias1177/SeriesLens/models"
)

// Engine applies a FilterState to labeled series relative to its clock
type Engine struct {
	clock func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the reference time for trailing windows
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates an engine using time.Now unless another clock is given
func NewEngine(opts ...Option) *Engine {
	e := &Engine{clock: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultState keeps every point in timestamp order
func DefaultState() models.FilterState {
	return models.FilterState{
		TimeWindow:    models.WindowAll,
		ShowAnomalies: true,
		ShowNormal:    true,
		SortKey:       models.SortByTimestamp,
		SortOrder:     models.SortAsc,
	}
}

// Apply filters with a fresh engine on the wall clock
func Apply(series models.Series, state models.FilterState) models.Series {
	return NewEngine().Apply(series, state)
}

// Apply returns a new series: time window, value bounds, visibility, then a stable sort.
// The input is never modified.
func (e *Engine) Apply(series models.Series, state models.FilterState) models.Series {
	now := e.clock()
	span, windowed := models.WindowDuration(state.TimeWindow)
	from := now.Add(-span)

	out := make(models.Series, 0, len(series))
	for _, p := range series {
		if windowed {
			// points without a usable timestamp are never excluded by time
			if t, ok := pointTime(p); ok && (t.Before(from) || t.After(now)) {
				continue
			}
		}
		if state.ValueMin != nil && p.Value < *state.ValueMin {
			continue
		}
		if state.ValueMax != nil && p.Value > *state.ValueMax {
			continue
		}
		if p.IsAnomaly() && !state.ShowAnomalies {
			continue
		}
		if !p.IsAnomaly() && !state.ShowNormal {
			continue
		}
		out = append(out, p)
	}

	compare := comparator(state.SortKey)
	if state.SortOrder == models.SortDesc {
		asc := compare
		compare = func(a, b models.DataPoint) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)

	return out
}

func comparator(key models.SortKey) func(a, b models.DataPoint) int {
	switch key {
	case models.SortByValue:
		return func(a, b models.DataPoint) int { return cmp.Compare(a.Value, b.Value) }
	case models.SortByDeviation:
		return func(a, b models.DataPoint) int { return cmp.Compare(a.Deviation, b.Deviation) }
	default:
		return compareTimestamps
	}
}

// compareTimestamps orders parseable timestamps by time ahead of unparseable ones, which
// compare by their raw text
func compareTimestamps(a, b models.DataPoint) int {
	ta, okA := pointTime(a)
	tb, okB := pointTime(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a.Timestamp, b.Timestamp)
}

func pointTime(p models.DataPoint) (time.Time, bool) {
	if p.HasTime() {
		return p.Time, true
	}
	return models.ParseTimestamp(p.Timestamp)
}

// Summarize describes a filtered view. It returns nil for an empty series.
func Summarize(series models.Series) *models.Summary {
	if len(series) == 0 {
		return nil
	}

	summary := &models.Summary{
		Total: len(series),
		Min:   series[0].Value,
		Max:   series[0].Value,
	}
	var sum float64
	for _, p := range series {
		sum += p.Value
		summary.Min = min(summary.Min, p.Value)
		summary.Max = max(summary.Max, p.Value)
		if p.IsAnomaly() {
			summary.AnomalyCount++
		}
	}
	summary.Avg = sum / float64(len(series))
	summary.AnomalyRate = float64(summary.AnomalyCount) / float64(len(series)) * 100

	return summary
}
