package analyze

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/SeriesLens/internal/patterns"
	"github.com/Alias1177/SeriesLens/models"
)

func rawPoints(values []float64) []models.RawPoint {
	raw := make([]models.RawPoint, len(values))
	for i, v := range values {
		raw[i] = models.RawPoint{
			Timestamp: fmt.Sprintf("2024-01-%02dT00:00:00Z", i%28+1),
			Value:     v,
		}
	}
	return raw
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		anomalies int
		direction string
	}{
		{
			name:      "single spike",
			values:    []float64{10, 10, 10, 10, 10, 100, 10, 10, 10, 10},
			anomalies: 1,
			direction: "INCREASING",
		},
		{
			name:      "constant",
			values:    []float64{4, 4, 4, 4, 4},
			anomalies: 0,
			direction: "FLAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(rawPoints(tt.values), DefaultOptions())
			require.NoError(t, err)

			assert.Len(t, result.Series, len(tt.values))
			assert.Equal(t, tt.anomalies, result.Series.AnomalyCount())
			assert.Equal(t, len(tt.values), result.Statistics.Count)
			assert.Equal(t, tt.direction, result.Profile.Direction)
			require.NotNil(t, result.Summary)
			assert.Equal(t, tt.anomalies, result.Summary.AnomalyCount)

			total := 0
			for _, b := range result.Histogram {
				total += b.Count
			}
			assert.Equal(t, len(tt.values), total)
		})
	}
}

func TestRun_Empty(t *testing.T) {
	_, err := Run(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = RunSeries(models.Series{}, SourceGenerated)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestRun_CustomThreshold(t *testing.T) {
	values := []float64{10, 10, 10, 10, 10, 100, 10, 10, 10, 10}

	strict, err := Run(rawPoints(values), Options{WindowSize: 10, ThresholdMultiplier: 5})
	require.NoError(t, err)
	assert.Zero(t, strict.Series.AnomalyCount())

	// invalid parameters fall back to the defaults
	fallback, err := Run(rawPoints(values), Options{WindowSize: -1, ThresholdMultiplier: math.NaN()})
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.Series.AnomalyCount())
}

func TestRun_CyclicalInsights(t *testing.T) {
	values := make([]float64, 84)
	for i := range values {
		values[i] = 50 + 10*math.Sin(float64(i)*2*math.Pi/7)
	}

	result, err := Run(rawPoints(values), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, patterns.HasCyclicalPattern(result.Insights.Patterns))
}
