package calculate

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// WindowStdDev calculates the spread of values[lo:hi] around center rather than around the
// window's own mean. Bounds are clamped to the slice.
func WindowStdDev(values []float64, lo, hi int, center float64) float64 {
	lo = max(lo, 0)
	hi = min(hi, len(values))
	if hi <= lo {
		return 0
	}

	var variance float64
	for _, v := range values[lo:hi] {
		variance += (v - center) * (v - center)
	}
	return math.Sqrt(variance / float64(hi-lo))
}

// RecentWindow is the number of trailing points used for recent volatility
func RecentWindow(n int) int {
	return min(n, max(10, n/5))
}

// RecentVolatility returns the population stddev of the most recent points
// together with its percent change against the global stddev.
func RecentVolatility(values []float64, globalStdDev float64) (recent, changePct float64) {
	if len(values) == 0 {
		return 0, 0
	}
	tail := values[len(values)-RecentWindow(len(values)):]

	if !isDegenerate(tail) {
		recent = stat.PopStdDev(tail, nil)
	}
	if globalStdDev > 0 {
		changePct = (recent - globalStdDev) / globalStdDev * 100
	}
	return recent, changePct
}
