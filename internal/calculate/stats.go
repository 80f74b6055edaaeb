package calculate

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidInput is returned when a statistic needs at least one value
	ErrInvalidInput = errors.New("invalid input: empty sequence")
	// ErrOutOfRange is returned for finite values whose moments overflow float64
	ErrOutOfRange = errors.New("values too large: statistics overflow")
)

func requireValues(name string, values []float64) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", name, ErrInvalidInput)
	}
	return nil
}

// Mean calculates the arithmetic mean
func Mean(values []float64) (float64, error) {
	if err := requireValues("mean", values); err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// Median returns the element at floor(n/2) of the ascending-sorted copy.
// For even lengths this is the upper of the two central elements.
func Median(values []float64) (float64, error) {
	if err := requireValues("median", values); err != nil {
		return 0, err
	}
	sorted := sortedCopy(values)
	return sorted[len(sorted)/2], nil
}

// Min returns the smallest value
func Min(values []float64) (float64, error) {
	if err := requireValues("min", values); err != nil {
		return 0, err
	}
	return floats.Min(values), nil
}

// Max returns the largest value
func Max(values []float64) (float64, error) {
	if err := requireValues("max", values); err != nil {
		return 0, err
	}
	return floats.Max(values), nil
}

// Variance calculates the population variance (divides by n)
func Variance(values []float64) (float64, error) {
	if err := requireValues("variance", values); err != nil {
		return 0, err
	}
	return stat.PopVariance(values, nil), nil
}

// StdDev calculates the population standard deviation
func StdDev(values []float64) (float64, error) {
	if err := requireValues("stddev", values); err != nil {
		return 0, err
	}
	return stat.PopStdDev(values, nil), nil
}

// Quartiles returns the values at floor(0.25n) and floor(0.75n) of the sorted copy
func Quartiles(values []float64) (q1, q3 float64, err error) {
	if err := requireValues("quartiles", values); err != nil {
		return 0, 0, err
	}
	sorted := sortedCopy(values)
	n := float64(len(sorted))
	return sorted[int(math.Floor(n*0.25))], sorted[int(math.Floor(n*0.75))], nil
}

// Skewness is the third standardized moment, normalized by the population stddev.
// Zero-variance input has no asymmetry and reports 0.
func Skewness(values []float64) (float64, error) {
	if err := requireValues("skewness", values); err != nil {
		return 0, err
	}
	return standardizedMoment(values, 3), nil
}

// Kurtosis is the excess kurtosis (fourth standardized moment minus 3).
// Zero-variance input reports 0.
func Kurtosis(values []float64) (float64, error) {
	if err := requireValues("kurtosis", values); err != nil {
		return 0, err
	}
	if isDegenerate(values) {
		return 0, nil
	}
	return standardizedMoment(values, 4) - 3, nil
}

func standardizedMoment(values []float64, order float64) float64 {
	if isDegenerate(values) {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if std == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += math.Pow((v-mean)/std, order)
	}
	return sum / float64(len(values))
}

// CheckRange returns ErrOutOfRange when the mean, the population variance or the range of
// values is not finite. Empty input passes.
func CheckRange(values []float64) error {
	if len(values) == 0 {
		return nil
	}
	if !isFinite(stat.Mean(values, nil)) {
		return ErrOutOfRange
	}
	if isDegenerate(values) {
		return nil
	}
	if !isFinite(stat.PopVariance(values, nil)) || !isFinite(floats.Max(values)-floats.Min(values)) {
		return ErrOutOfRange
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// isDegenerate reports whether every value is identical
func isDegenerate(values []float64) bool {
	return len(values) == 0 || floats.Min(values) == floats.Max(values)
}

// IsDegenerate reports whether the series has zero variance (all values equal)
func IsDegenerate(values []float64) bool {
	return isDegenerate(values)
}

func sortedCopy(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted
}
