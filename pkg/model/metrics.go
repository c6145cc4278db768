package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

func checkPair(yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%w: %d reference values, %d predictions", ErrShape, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return fmt.Errorf("%w: no values to score", ErrShape)
	}
	return nil
}

// MSE is the mean squared error.
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	var s float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		s += d * d
	}
	return s / float64(len(yTrue)), nil
}

// MAE is the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	var s float64
	for i := range yTrue {
		s += math.Abs(yTrue[i] - yPred[i])
	}
	return s / float64(len(yTrue)), nil
}

// R2 is the coefficient of determination of yPred against the reference
// yTrue. A constant reference scores 1 when matched exactly and 0 otherwise.
func R2(yTrue, yPred []float64) (float64, error) {
	if err := checkPair(yTrue, yPred); err != nil {
		return 0, err
	}
	mean := stat.Mean(yTrue, nil)
	var res, tot float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		res += d * d
		m := yTrue[i] - mean
		tot += m * m
	}
	if tot == 0 {
		if res == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - res/tot, nil
}

// Scores bundles the three error measures for one set of predictions.
type Scores struct {
	MSE, MAE, R2 float64
}

// Evaluate computes MSE, MAE and R2 with yTrue as the reference.
func Evaluate(yTrue, yPred []float64) (Scores, error) {
	var s Scores
	var err error
	if s.MSE, err = MSE(yTrue, yPred); err != nil {
		return s, err
	}
	if s.MAE, err = MAE(yTrue, yPred); err != nil {
		return s, err
	}
	if s.R2, err = R2(yTrue, yPred); err != nil {
		return s, err
	}
	return s, nil
}
