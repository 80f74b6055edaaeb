package calculate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bin is one bucket of a value histogram
type Bin struct {
	Lower    float64 `json:"lower" yaml:"lower"`
	Upper    float64 `json:"upper" yaml:"upper"`
	Midpoint float64 `json:"midpoint" yaml:"midpoint"`
	Count    int     `json:"count" yaml:"count"`
}

// Label renders the bin range the way the distribution chart shows it
func (b Bin) Label() string {
	return fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
}

// HistogramBinCount returns min(20, ceil(sqrt(n)))
func HistogramBinCount(n int) int {
	if n <= 0 {
		return 0
	}
	return min(20, int(math.Ceil(math.Sqrt(float64(n)))))
}

// Histogram spreads values over equal-width bins between min and max. The last bin is closed
// so the maximum lands inside it. When all values are equal a single bin holds everything.
func Histogram(values []float64) ([]Bin, error) {
	if err := requireValues("histogram", values); err != nil {
		return nil, err
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Midpoint: lo, Count: len(values)}}, nil
	}

	count := HistogramBinCount(len(values))
	size := (hi - lo) / float64(count)

	bins := make([]Bin, count)
	for i := range bins {
		bins[i] = Bin{
			Lower:    lo + float64(i)*size,
			Upper:    lo + float64(i+1)*size,
			Midpoint: lo + (float64(i)+0.5)*size,
		}
	}

	for _, v := range values {
		idx := min(int(math.Floor((v-lo)/size)), count-1)
		bins[idx].Count++
	}

	return bins, nil
}
