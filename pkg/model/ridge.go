package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge is least squares with an L2 penalty on the weights. The intercept,
// when fitted, is not penalised.
type Ridge struct {
	Alpha        float64
	FitIntercept bool
	linear
}

// NewRidge returns a ridge model with an intercept.
func NewRidge(alpha float64) *Ridge { return &Ridge{Alpha: alpha, FitIntercept: true} }

func (r *Ridge) Fit(X mat.Matrix, y []float64) error {
	n, p, err := checkXY(X, y)
	if err != nil {
		return err
	}
	if r.Alpha < 0 {
		return fmt.Errorf("ridge: negative alpha %v", r.Alpha)
	}

	var xs mat.Matrix = X
	yv := mat.NewVecDense(n, append([]float64(nil), y...))
	var xMean []float64
	var yMean float64
	if r.FitIntercept {
		var xc *mat.Dense
		xc, yv, xMean, yMean = centre(X, y)
		xs = xc
	}

	gram := mat.NewSymDense(p, nil)
	gram.SymOuterK(1, xs.T())
	for j := 0; j < p; j++ {
		gram.SetSym(j, j, gram.At(j, j)+r.Alpha)
	}
	var rhs mat.VecDense
	rhs.MulVec(xs.T(), yv)

	var w mat.VecDense
	var chol mat.Cholesky
	if chol.Factorize(gram) {
		if err := chol.SolveVecTo(&w, &rhs); err != nil {
			return fmt.Errorf("ridge: %w", err)
		}
	} else {
		// alpha == 0 on a rank deficient design
		if err := w.SolveVec(gram, &rhs); err != nil {
			return fmt.Errorf("ridge: singular system: %w", err)
		}
	}

	r.coef = make([]float64, p)
	for j := range r.coef {
		r.coef[j] = w.AtVec(j)
	}
	r.intercept = 0
	if r.FitIntercept {
		r.intercept = yMean
		for j, m := range xMean {
			r.intercept -= m * r.coef[j]
		}
	}
	return nil
}

func (r *Ridge) Predict(X mat.Matrix) ([]float64, error) { return r.predict(X) }
