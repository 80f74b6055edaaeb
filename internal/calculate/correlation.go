package calculate

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Correlation computes Pearson's coefficient over the first min(len(a), len(b)) aligned
// elements. It returns 0 for empty input or when the denominator vanishes.
func Correlation(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	x, y := a[:n], b[:n]

	fn := float64(n)
	sumX := floats.Sum(x)
	sumY := floats.Sum(y)
	sumXY := floats.Dot(x, y)
	sumX2 := floats.Dot(x, x)
	sumY2 := floats.Dot(y, y)

	numerator := fn*sumXY - sumX*sumY
	denominator := math.Sqrt((fn*sumX2 - sumX*sumX) * (fn*sumY2 - sumY*sumY))
	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}
	return numerator / denominator
}

// LagCorrelation correlates the series with itself shifted by lag points
func LagCorrelation(values []float64, lag int) float64 {
	if lag <= 0 || lag >= len(values) {
		return 0
	}
	return Correlation(values[:len(values)-lag], values[lag:])
}
