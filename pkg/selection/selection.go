// Package selection ranks feature columns against a regression target.
package selection

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FRegression scores every column of X by the univariate linear F-test
// against y. A constant column scores 0 with p-value 1; a perfectly
// correlated column scores math.MaxFloat64 with p-value 0.
func FRegression(X mat.Matrix, y []float64) (scores, pvalues []float64, err error) {
	n, p := X.Dims()
	if n != len(y) {
		return nil, nil, fmt.Errorf("f_regression: %d rows but %d targets", n, len(y))
	}
	if n < 3 {
		return nil, nil, fmt.Errorf("f_regression: need at least 3 rows, got %d", n)
	}
	dof := float64(n - 2)
	dist := distuv.F{D1: 1, D2: dof}
	scores = make([]float64, p)
	pvalues = make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, X)
		r := stat.Correlation(col, y, nil)
		switch {
		case math.IsNaN(r):
			scores[j], pvalues[j] = 0, 1
		case r*r >= 1:
			scores[j], pvalues[j] = math.MaxFloat64, 0
		default:
			f := r * r / (1 - r*r) * dof
			scores[j] = f
			pvalues[j] = dist.Survival(f)
		}
	}
	return scores, pvalues, nil
}

// KBest marks the k highest scores. NaN scores rank lowest and ties go to
// the later column. k larger than the number of scores selects everything.
func KBest(scores []float64, k int) []bool {
	mask := make([]bool, len(scores))
	if k <= 0 {
		return mask
	}
	clean := make([]float64, len(scores))
	for i, s := range scores {
		if math.IsNaN(s) {
			s = -math.MaxFloat64
		}
		clean[i] = s
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return clean[order[a]] < clean[order[b]] })
	if k > len(order) {
		k = len(order)
	}
	for _, i := range order[len(order)-k:] {
		mask[i] = true
	}
	return mask
}

// FromModel marks the features whose absolute coefficient is at least the
// mean absolute coefficient, keeping at most maxFeatures of the largest.
// maxFeatures <= 0 disables the cap.
func FromModel(coef []float64, maxFeatures int) []bool {
	mask := make([]bool, len(coef))
	if len(coef) == 0 {
		return mask
	}
	imp := make([]float64, len(coef))
	var threshold float64
	for i, c := range coef {
		imp[i] = math.Abs(c)
		threshold += imp[i]
	}
	threshold /= float64(len(coef))

	order := make([]int, len(coef))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return imp[order[a]] > imp[order[b]] })
	if maxFeatures > 0 && maxFeatures < len(order) {
		order = order[:maxFeatures]
	}
	for _, i := range order {
		if imp[i] >= threshold {
			mask[i] = true
		}
	}
	return mask
}

// Union returns the names selected by any mask, in names order.
func Union(names []string, masks ...[]bool) []string {
	var out []string
	for i, n := range names {
		for _, m := range masks {
			if i < len(m) && m[i] {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Picked returns the names selected by a single mask.
func Picked(names []string, mask []bool) []string { return Union(names, mask) }
