// Package stats holds the order statistics shared by outlier removal and
// robust scaling.
package stats

import (
	"math"
	"sort"
)

// Quantile returns the p-quantile (0 <= p <= 1) of sorted data using linear
// interpolation between the closest order statistics: position p*(n-1).
// This is the estimator pandas and numpy use by default; gonum's
// stat.LinInterp interpolates the empirical CDF instead and disagrees on
// small samples. NaN is returned for empty input.
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Quartiles sorts a copy of data and returns its first and third quartiles.
func Quartiles(data []float64) (q1, q3 float64) {
	s := Sorted(data)
	return Quantile(0.25, s), Quantile(0.75, s)
}

// Median returns the 0.5 quantile of data.
func Median(data []float64) float64 {
	return Quantile(0.5, Sorted(data))
}

// Sorted returns a sorted copy of data, leaving NaN values out.
func Sorted(data []float64) []float64 {
	s := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			s = append(s, v)
		}
	}
	sort.Float64s(s)
	return s
}
