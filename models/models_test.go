package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncodings(t *testing.T) {
	assert.Equal(t, -1, LabelAnomalous.Sentinel())
	assert.Equal(t, 1, LabelNormal.Sentinel())
	assert.Equal(t, "Yes", LabelAnomalous.YesNo())
	assert.Equal(t, "No", LabelNormal.YesNo())

	assert.Equal(t, LabelAnomalous, LabelFromSentinel(-1))
	assert.Equal(t, LabelNormal, LabelFromSentinel(1))
	assert.Equal(t, LabelNormal, LabelFromSentinel(0))
}

func TestSeriesHelpers(t *testing.T) {
	s := Series{
		{Index: 0, Value: 1},
		{Index: 1, Value: 9, Label: LabelAnomalous},
		{Index: 2, Value: 2},
	}

	assert.Equal(t, []float64{1, 9, 2}, s.Values())
	assert.Equal(t, 1, s.AnomalyCount())
	require.Len(t, s.Anomalies(), 1)
	assert.Equal(t, 1, s.Anomalies()[0].Index)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-01T09:00:00.000Z", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), true},
		{"2024-01-01T09:00:00Z", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), true},
		{"2024-01-01 09:30:00", time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), true},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestWindowDuration(t *testing.T) {
	d, ok := WindowDuration(WindowLast7d)
	assert.True(t, ok)
	assert.Equal(t, 168*time.Hour, d)

	_, ok = WindowDuration(WindowAll)
	assert.False(t, ok)
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePattern(" Seasonal ")
	require.NoError(t, err)
	assert.Equal(t, PatternSeasonal, p)
	_, err = ParsePattern("zigzag")
	assert.ErrorIs(t, err, ErrUnknownPattern)

	tr, err := ParseTrend("GROWING")
	require.NoError(t, err)
	assert.Equal(t, TrendGrowing, tr)
	_, err = ParseTrend("sideways")
	assert.ErrorIs(t, err, ErrUnknownTrend)

	w, err := ParseTimeWindow("")
	require.NoError(t, err)
	assert.Equal(t, WindowAll, w)
	_, err = ParseTimeWindow("last year")
	assert.ErrorIs(t, err, ErrUnknownTimeWindow)

	k, err := ParseSortKey("deviation")
	require.NoError(t, err)
	assert.Equal(t, SortByDeviation, k)
	_, err = ParseSortKey("size")
	assert.ErrorIs(t, err, ErrUnknownSortKey)

	o, err := ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, o)
	_, err = ParseSortOrder("up")
	assert.ErrorIs(t, err, ErrUnknownSortOrder)
}

func TestGenerationConfigNormalize(t *testing.T) {
	cfg := GenerationConfig{PointCount: -3, NoiseLevel: 1.7, AnomalyRate: -0.2}.Normalize()
	assert.Equal(t, 0, cfg.PointCount)
	assert.Equal(t, 1.0, cfg.NoiseLevel)
	assert.Equal(t, 0.0, cfg.AnomalyRate)
}
