package filter

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/SeriesLens/models"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func point(idx int, ts string, value, deviation float64, anomalous bool) models.DataPoint {
	p := models.DataPoint{Index: idx, Timestamp: ts, Value: value, Deviation: deviation}
	if t, ok := models.ParseTimestamp(ts); ok {
		p.Time = t
	}
	if anomalous {
		p.Label = models.LabelAnomalous
	}
	return p
}

func sample() models.Series {
	return models.Series{
		point(0, "2024-02-01T12:00:00Z", 10, 1, false),
		point(1, "2024-03-05T12:00:00Z", 50, 30, true),
		point(2, "2024-03-10T06:00:00Z", 20, 2, false),
		point(3, "not a date", 30, 5, false),
		point(4, "2024-03-09T13:00:00Z", 5, 12, true),
		point(5, "2024-03-10T11:00:00Z", 20, 0, false),
	}
}

func indices(series models.Series) []int {
	out := make([]int, len(series))
	for i, p := range series {
		out[i] = p.Index
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func TestApply_DefaultStateKeepsEverything(t *testing.T) {
	series := sample()
	got := NewEngine(WithClock(func() time.Time { return now })).Apply(series, DefaultState())

	require.Len(t, got, len(series))
	assert.ElementsMatch(t, series, got)
}

func TestApply_TimeWindows(t *testing.T) {
	engine := NewEngine(WithClock(func() time.Time { return now }))

	tests := []struct {
		window models.TimeWindow
		want   []int
	}{
		{models.WindowLast24h, []int{4, 2, 5, 3}},
		{models.WindowLast7d, []int{1, 4, 2, 5, 3}},
		{models.WindowLast30d, []int{1, 4, 2, 5, 3}},
		{models.WindowAll, []int{0, 1, 4, 2, 5, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			state := DefaultState()
			state.TimeWindow = tt.window
			assert.Equal(t, tt.want, indices(engine.Apply(sample(), state)))
		})
	}
}

func TestApply_WindowBoundsInclusive(t *testing.T) {
	series := models.Series{
		point(0, "2024-03-09T12:00:00Z", 1, 0, false),
		point(1, "2024-03-10T12:00:00Z", 2, 0, false),
		point(2, "2024-03-10T12:00:01Z", 3, 0, false),
	}
	state := DefaultState()
	state.TimeWindow = models.WindowLast24h

	got := NewEngine(WithClock(func() time.Time { return now })).Apply(series, state)
	assert.Equal(t, []int{0, 1}, indices(got))
}

func TestApply_ValueBoundsAndVisibility(t *testing.T) {
	engine := NewEngine(WithClock(func() time.Time { return now }))

	state := DefaultState()
	state.ValueMin = ptr(10)
	state.ValueMax = ptr(30)
	state.SortKey = models.SortByValue
	assert.Equal(t, []int{0, 2, 5, 3}, indices(engine.Apply(sample(), state)))

	state = DefaultState()
	state.ShowNormal = false
	assert.Equal(t, []int{1, 4}, indices(engine.Apply(sample(), state)))

	state = DefaultState()
	state.ShowAnomalies = false
	state.ShowNormal = false
	assert.Empty(t, engine.Apply(sample(), state))
}

func TestApply_SortingIsStable(t *testing.T) {
	engine := NewEngine()

	state := DefaultState()
	state.SortKey = models.SortByValue
	asc := engine.Apply(sample(), state)
	// 2 and 5 tie on value and keep their original relative order
	assert.Equal(t, []int{4, 0, 2, 5, 3, 1}, indices(asc))

	state.SortOrder = models.SortDesc
	desc := engine.Apply(sample(), state)
	assert.Equal(t, []int{1, 3, 2, 5, 0, 4}, indices(desc))

	state.SortKey = models.SortByDeviation
	assert.Equal(t, []int{1, 4, 3, 2, 0, 5}, indices(engine.Apply(sample(), state)))
}

func TestApply_Idempotent(t *testing.T) {
	engine := NewEngine(WithClock(func() time.Time { return now }))
	state := DefaultState()
	state.TimeWindow = models.WindowLast7d
	state.SortKey = models.SortByDeviation
	state.SortOrder = models.SortDesc

	once := engine.Apply(sample(), state)
	twice := engine.Apply(once, state)
	assert.Equal(t, once, twice)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	series := sample()
	before := slices.Clone(series)

	state := DefaultState()
	state.SortKey = models.SortByValue
	state.SortOrder = models.SortDesc
	Apply(series, state)

	assert.Equal(t, before, series)
}

func TestApply_ParsesMissingTime(t *testing.T) {
	series := models.Series{
		{Index: 0, Timestamp: "2024-03-10T10:00:00Z", Value: 1},
		{Index: 1, Timestamp: "2024-01-01T10:00:00Z", Value: 2},
	}
	state := DefaultState()
	state.TimeWindow = models.WindowLast24h

	got := NewEngine(WithClock(func() time.Time { return now })).Apply(series, state)
	assert.Equal(t, []int{0}, indices(got))
}

func TestSummarize(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize(models.Series{}))

	summary := Summarize(sample())
	require.NotNil(t, summary)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 2, summary.AnomalyCount)
	assert.InDelta(t, 33.333333, summary.AnomalyRate, 1e-5)
	assert.Equal(t, 5.0, summary.Min)
	assert.Equal(t, 50.0, summary.Max)
	assert.InDelta(t, 22.5, summary.Avg, 1e-9)
}

func TestApply_TimestampSortIsTotalOrder(t *testing.T) {
	series := models.Series{
		point(0, "2024-01-01T09:00:00Z", 1, 0, false),
		point(1, "2024-01-01 x", 2, 0, false),
		point(2, "2024-01-01 10:00:00", 3, 0, false),
		point(3, "2024-01-01 08:00", 4, 0, false),
		point(4, "aaa", 5, 0, false),
	}

	state := DefaultState()
	asc := NewEngine().Apply(series, state)
	// parsed times first, then unparseable text in byte order
	assert.Equal(t, []int{3, 0, 2, 1, 4}, indices(asc))

	state.SortOrder = models.SortDesc
	assert.Equal(t, []int{4, 1, 2, 0, 3}, indices(NewEngine().Apply(series, state)))

	shuffled := models.Series{series[1], series[4], series[2], series[0], series[3]}
	assert.Equal(t, []int{3, 0, 2, 1, 4}, indices(NewEngine().Apply(shuffled, DefaultState())))
}
