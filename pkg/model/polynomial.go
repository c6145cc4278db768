package model

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PolynomialFeatures expands a design matrix into every monomial of total
// degree <= Degree, starting with the bias column: 1, x0, x1, ..., x0^2,
// x0*x1, ...
type PolynomialFeatures struct {
	Degree int
}

// Terms lists, for p input features, the feature indices multiplied together
// in each output column. The bias column is the empty term.
func (pf PolynomialFeatures) Terms(p int) [][]int {
	terms := [][]int{{}}
	prev := [][]int{{}}
	for d := 1; d <= pf.Degree; d++ {
		var next [][]int
		for _, t := range prev {
			start := 0
			if len(t) > 0 {
				start = t[len(t)-1]
			}
			for j := start; j < p; j++ {
				next = append(next, append(append([]int(nil), t...), j))
			}
		}
		terms = append(terms, next...)
		prev = next
	}
	return terms
}

// Names renders the terms with the given input names, e.g. "a^2" or "a b".
func (pf PolynomialFeatures) Names(inputs []string) []string {
	terms := pf.Terms(len(inputs))
	out := make([]string, len(terms))
	for i, t := range terms {
		if len(t) == 0 {
			out[i] = "1"
			continue
		}
		var parts []string
		for k := 0; k < len(t); {
			e := k
			for e < len(t) && t[e] == t[k] {
				e++
			}
			if e-k == 1 {
				parts = append(parts, inputs[t[k]])
			} else {
				parts = append(parts, fmt.Sprintf("%s^%d", inputs[t[k]], e-k))
			}
			k = e
		}
		out[i] = strings.Join(parts, " ")
	}
	return out
}

func (pf PolynomialFeatures) Transform(X mat.Matrix) *mat.Dense {
	n, p := X.Dims()
	terms := pf.Terms(p)
	out := mat.NewDense(n, len(terms), nil)
	for i := 0; i < n; i++ {
		for k, t := range terms {
			v := 1.0
			for _, j := range t {
				v *= X.At(i, j)
			}
			out.Set(i, k, v)
		}
	}
	return out
}

// Polynomial fits Estimator on the polynomial expansion of its input.
type Polynomial struct {
	Features  PolynomialFeatures
	Estimator Regressor
}

// NewPolynomialRegression is a degree-d expansion followed by least squares.
func NewPolynomialRegression(degree int) *Polynomial {
	return &Polynomial{Features: PolynomialFeatures{Degree: degree}, Estimator: NewLinearRegression()}
}

func (p *Polynomial) Fit(X mat.Matrix, y []float64) error {
	if p.Features.Degree < 1 {
		return fmt.Errorf("polynomial: degree %d < 1", p.Features.Degree)
	}
	return p.Estimator.Fit(p.Features.Transform(X), y)
}

func (p *Polynomial) Predict(X mat.Matrix) ([]float64, error) {
	return p.Estimator.Predict(p.Features.Transform(X))
}
