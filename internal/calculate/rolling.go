package calculate

import (
	"gonum.org/v1/gonum/floats"
)

// RollingMean averages the trailing window values[max(0, i-window+1) .. i].
// Early indices use the shorter window that is available instead of padding.
func RollingMean(values []float64, i, window int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	if window < 1 {
		window = 1
	}
	start := max(0, i-window+1)
	win := values[start : i+1]
	return floats.Sum(win) / float64(len(win))
}
