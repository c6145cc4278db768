// Package scale centres and scales feature matrices with statistics that are
// insensitive to outliers.
package scale

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/stats"
)

var ErrNotFitted = errors.New("scaler is not fitted")

// RobustScaler maps every column to (v - median) / (Qhi - Qlo). A column with
// a zero quantile range is only centred.
type RobustScaler struct {
	QuantileRange [2]float64 // percentiles, default {25, 75}

	Center []float64
	Scale  []float64
}

func NewRobustScaler() *RobustScaler {
	return &RobustScaler{QuantileRange: [2]float64{25, 75}}
}

func (s *RobustScaler) Fit(X mat.Matrix) error {
	lo, hi := s.QuantileRange[0], s.QuantileRange[1]
	if lo == 0 && hi == 0 {
		lo, hi = 25, 75
	}
	if lo < 0 || hi > 100 || lo >= hi {
		return fmt.Errorf("robust scaler: invalid quantile range [%v, %v]", lo, hi)
	}
	r, c := X.Dims()
	if r == 0 {
		return fmt.Errorf("robust scaler: no rows to fit")
	}
	s.Center = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		sorted := stats.Sorted(col)
		s.Center[j] = stats.Quantile(0.5, sorted)
		iqr := stats.Quantile(hi/100, sorted) - stats.Quantile(lo/100, sorted)
		if iqr == 0 {
			iqr = 1
		}
		s.Scale[j] = iqr
	}
	return nil
}

func (s *RobustScaler) check(X mat.Matrix) error {
	if s.Center == nil {
		return ErrNotFitted
	}
	if _, c := X.Dims(); c != len(s.Center) {
		return fmt.Errorf("robust scaler: fitted on %d columns, got %d", len(s.Center), c)
	}
	return nil
}

func (s *RobustScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.check(X); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.Center[j]) / s.Scale[j]
	}, X)
	return out, nil
}

func (s *RobustScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *RobustScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.check(X); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Center[j]
	}, X)
	return out, nil
}
