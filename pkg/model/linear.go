package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is ordinary least squares with an intercept. The weights
// are the minimum-norm solution, so rank deficient designs (for example
// squared 0/1 indicators) still fit.
type LinearRegression struct {
	linear
}

func NewLinearRegression() *LinearRegression { return &LinearRegression{} }

func (l *LinearRegression) Fit(X mat.Matrix, y []float64) error {
	n, p, err := checkXY(X, y)
	if err != nil {
		return err
	}
	xc, yc, xMean, yMean := centre(X, y)

	var svd mat.SVD
	if !svd.Factorize(xc, mat.SVDThin) {
		return errors.New("linear regression: SVD did not converge")
	}
	sv := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var uty mat.VecDense
	uty.MulVec(u.T(), yc)
	tol := 0.0
	if len(sv) > 0 {
		tol = sv[0] * float64(max(n, p)) * epsilon
	}
	for i, s := range sv {
		if s > tol && s > 0 {
			uty.SetVec(i, uty.AtVec(i)/s)
		} else {
			uty.SetVec(i, 0)
		}
	}
	var w mat.VecDense
	w.MulVec(&v, &uty)

	l.coef = make([]float64, p)
	l.intercept = yMean
	for j := range l.coef {
		l.coef[j] = w.AtVec(j)
		l.intercept -= xMean[j] * l.coef[j]
	}
	return nil
}

func (l *LinearRegression) Predict(X mat.Matrix) ([]float64, error) { return l.predict(X) }

var epsilon = math.Nextafter(1, 2) - 1
