package calculate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []float64{2, 4, 4, 4, 5, 5, 7, 9}

func TestDescriptiveStatistics(t *testing.T) {
	mean, err := Mean(sample)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean, 1e-9)

	std, err := StdDev(sample)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, std, 1e-9)

	median, err := Median(sample)
	require.NoError(t, err)
	assert.Equal(t, 5.0, median)

	q1, q3, err := Quartiles(sample)
	require.NoError(t, err)
	assert.Equal(t, 4.0, q1)
	assert.Equal(t, 7.0, q3)

	lo, err := Min(sample)
	require.NoError(t, err)
	hi, err := Max(sample)
	require.NoError(t, err)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 9.0, hi)

	skew, err := Skewness(sample)
	require.NoError(t, err)
	assert.InDelta(t, 0.65625, skew, 1e-9)

	kurt, err := Kurtosis(sample)
	require.NoError(t, err)
	assert.InDelta(t, -0.21875, kurt, 1e-9)
}

func TestMedianEvenLengthTakesUpperMiddle(t *testing.T) {
	median, err := Median([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, median)
}

func TestEmptyInputFails(t *testing.T) {
	tests := []struct {
		name string
		fn   func([]float64) (float64, error)
	}{
		{"mean", Mean},
		{"median", Median},
		{"min", Min},
		{"max", Max},
		{"variance", Variance},
		{"stddev", StdDev},
		{"skewness", Skewness},
		{"kurtosis", Kurtosis},
		{"trend slope", TrendSlope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn(nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, _, err := Quartiles(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Describe(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Histogram(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMeanAndStdDevIgnoreOrder(t *testing.T) {
	shuffled := []float64{9, 4, 5, 2, 7, 4, 5, 4}

	m1, _ := Mean(sample)
	m2, _ := Mean(shuffled)
	assert.InDelta(t, m1, m2, 1e-12)

	s1, _ := StdDev(sample)
	s2, _ := StdDev(shuffled)
	assert.InDelta(t, s1, s2, 1e-12)

	t1, _ := TrendSlope(sample)
	t2, _ := TrendSlope(shuffled)
	assert.NotEqual(t, t1, t2)
}

func TestDegenerateMoments(t *testing.T) {
	flat := []float64{3, 3, 3, 3}

	skew, err := Skewness(flat)
	require.NoError(t, err)
	assert.Zero(t, skew)

	kurt, err := Kurtosis(flat)
	require.NoError(t, err)
	assert.Zero(t, kurt)

	slope, err := TrendSlope(flat)
	require.NoError(t, err)
	assert.Zero(t, slope)

	assert.True(t, IsDegenerate(flat))
	assert.False(t, IsDegenerate(sample))
}

func TestTrendSlope(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"single point", []float64{42}, 0},
		{"rising", []float64{1, 3, 5, 7}, 2},
		{"falling", []float64{10, 8, 6, 4, 2}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TrendSlope(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	ramp := make([]float64, 50)
	for i := range ramp {
		ramp[i] = 100 + float64(i)*0.5
	}
	got, err := TrendSlope(ramp)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestDescribe(t *testing.T) {
	snap, err := Describe(sample)
	require.NoError(t, err)

	assert.Equal(t, 8, snap.Count)
	assert.InDelta(t, 5.0, snap.Mean, 1e-9)
	assert.InDelta(t, 2.0, snap.StdDev, 1e-9)
	assert.InDelta(t, 4.0, snap.Variance, 1e-9)
	assert.InDelta(t, 0.4, snap.CV, 1e-9)
	assert.Equal(t, 7.0, snap.Range)
	assert.Equal(t, 3.0, snap.IQR)
	// eight points fall back to the whole series as the recent window
	assert.InDelta(t, snap.StdDev, snap.RecentStdDev, 1e-9)
	assert.InDelta(t, 0.0, snap.VolatilityChange, 1e-9)

	flat, err := Describe([]float64{5, 5, 5})
	require.NoError(t, err)
	assert.Zero(t, flat.StdDev)
	assert.Zero(t, flat.TrendStrength)
	assert.InDelta(t, 0.0, flat.CV, 1e-12)
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		err    error
	}{
		{"empty", nil, nil},
		{"ordinary", sample, nil},
		{"single huge value", []float64{1e300}, nil},
		{"variance overflows", []float64{1e200, -1e200, 1e200}, ErrOutOfRange},
		{"mean overflows", []float64{math.MaxFloat64, math.MaxFloat64}, ErrOutOfRange},
		{"range overflows", []float64{math.MaxFloat64, -math.MaxFloat64}, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRange(tt.values)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDescribeRejectsOverflow(t *testing.T) {
	_, err := Describe([]float64{1e200, -1e200, 1e200})
	assert.ErrorIs(t, err, ErrOutOfRange)

	snap, err := Describe([]float64{1e150, -1e150, 1e150})
	require.NoError(t, err)
	assert.False(t, math.IsInf(snap.StdDev, 0))
}
