package calculate

import (
	"gonum.org/v1/gonum/stat"
)

// TrendSlope fits value against index by ordinary least squares and returns the slope.
// A single point or a constant series has no trend.
func TrendSlope(values []float64) (float64, error) {
	if err := requireValues("trend slope", values); err != nil {
		return 0, err
	}
	if len(values) < 2 || isDegenerate(values) {
		return 0, nil
	}

	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}

	_, beta := stat.LinearRegression(xs, values, nil, false)
	return beta, nil
}
