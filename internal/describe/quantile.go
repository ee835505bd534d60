package describe

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile (q in [0, 1]) of sorted data using
// linear interpolation between order statistics. The slice must already
// be sorted ascending; Quantile does not sort or copy.
//
// The interpolation rule is the "type 7" convention (position
// q * (n - 1)), applied consistently everywhere a quantile is needed so
// bootstrap intervals and summary quartiles agree with each other.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// QuantileOf sorts a copy of data and returns its q-th quantile
func QuantileOf(data []float64, q float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return Quantile(sorted, q)
}
