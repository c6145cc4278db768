// Package model implements the regressors trained on the prepared flight
// features. Every model fits on a feature matrix and a target vector and
// predicts one value per row.
package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotFitted = errors.New("model is not fitted")
	ErrShape     = errors.New("shape mismatch")
)

// Regressor is the fit/predict contract shared by all models.
type Regressor interface {
	Fit(X mat.Matrix, y []float64) error
	Predict(X mat.Matrix) ([]float64, error)
}

// Coefficienter is implemented by linear models whose weights can rank
// features.
type Coefficienter interface {
	Coefficients() []float64
}

func checkXY(X mat.Matrix, y []float64) (n, p int, err error) {
	n, p = X.Dims()
	if n == 0 || p == 0 {
		return 0, 0, fmt.Errorf("%w: empty design matrix %dx%d", ErrShape, n, p)
	}
	if len(y) != n {
		return 0, 0, fmt.Errorf("%w: %d rows but %d targets", ErrShape, n, len(y))
	}
	return n, p, nil
}

// centre returns X and y with column means removed, along with the means.
func centre(X mat.Matrix, y []float64) (*mat.Dense, *mat.VecDense, []float64, float64) {
	n, p := X.Dims()
	xMean := make([]float64, p)
	for j := 0; j < p; j++ {
		var s float64
		for i := 0; i < n; i++ {
			s += X.At(i, j)
		}
		xMean[j] = s / float64(n)
	}
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)

	xc := mat.NewDense(n, p, nil)
	xc.Apply(func(i, j int, v float64) float64 { return v - xMean[j] }, X)
	yc := mat.NewVecDense(n, nil)
	for i, v := range y {
		yc.SetVec(i, v-yMean)
	}
	return xc, yc, xMean, yMean
}

// linear holds fitted weights shared by the linear models.
type linear struct {
	coef      []float64
	intercept float64
}

func (l *linear) predict(X mat.Matrix) ([]float64, error) {
	if l.coef == nil {
		return nil, ErrNotFitted
	}
	n, p := X.Dims()
	if p != len(l.coef) {
		return nil, fmt.Errorf("%w: fitted on %d features, got %d", ErrShape, len(l.coef), p)
	}
	var out mat.VecDense
	out.MulVec(X, mat.NewVecDense(p, l.coef))
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = out.AtVec(i) + l.intercept
	}
	return pred, nil
}

func (l *linear) Coefficients() []float64 { return l.coef }
func (l *linear) Intercept() float64      { return l.intercept }
