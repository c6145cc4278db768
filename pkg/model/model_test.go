package model

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// design returns rows of (duration, hour) with delay = 3 + 2*duration - 0.5*hour.
func design() (*mat.Dense, []float64) {
	X := mat.NewDense(8, 2, []float64{
		1.0, 7,
		2.5, 9,
		3.0, 12,
		1.5, 18,
		4.0, 21,
		2.0, 5,
		3.5, 15,
		5.0, 10,
	})
	y := make([]float64, 8)
	for i := range y {
		y[i] = 3 + 2*X.At(i, 0) - 0.5*X.At(i, 1)
	}
	return X, y
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestLinearRegressionRecoversCoefficients(t *testing.T) {
	X, y := design()
	m := NewLinearRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	c := m.Coefficients()
	if !near(c[0], 2, 1e-9) || !near(c[1], -0.5, 1e-9) || !near(m.Intercept(), 3, 1e-9) {
		t.Fatalf("coef=%v intercept=%v", c, m.Intercept())
	}
}

func TestLinearRegressionRankDeficient(t *testing.T) {
	// second column duplicates the first
	X := mat.NewDense(4, 2, []float64{1, 1, 2, 2, 3, 3, 4, 4})
	y := []float64{2, 4, 6, 8}
	m := NewLinearRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	c := m.Coefficients()
	if !near(c[0], 1, 1e-9) || !near(c[1], 1, 1e-9) {
		t.Fatalf("expected minimum-norm split 1/1, got %v", c)
	}
	pred, _ := m.Predict(X)
	for i := range y {
		if !near(pred[i], y[i], 1e-9) {
			t.Fatalf("row %d: %v != %v", i, pred[i], y[i])
		}
	}
}

func TestRidgeShrinks(t *testing.T) {
	X, y := design()
	ols := NewRidge(0)
	if err := ols.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if !near(ols.Coefficients()[0], 2, 1e-8) {
		t.Fatalf("alpha=0 should match OLS, got %v", ols.Coefficients())
	}
	r := NewRidge(1.0)
	if err := r.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Coefficients()[0]) >= 2 {
		t.Fatalf("ridge did not shrink: %v", r.Coefficients())
	}
	pred, err := r.Predict(X)
	if err != nil || len(pred) != 8 {
		t.Fatalf("predict: %v", err)
	}
	if _, err := r.Predict(mat.NewDense(1, 3, nil)); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestNotFitted(t *testing.T) {
	X := mat.NewDense(1, 1, []float64{1})
	for _, m := range []Regressor{NewRidge(1), NewLinearRegression(), NewDecisionTree(), NewPolynomialRegression(2)} {
		if _, err := m.Predict(X); !errors.Is(err, ErrNotFitted) {
			t.Fatalf("%T: expected ErrNotFitted, got %v", m, err)
		}
	}
}

func TestPolynomialFeatures(t *testing.T) {
	pf := PolynomialFeatures{Degree: 2}
	names := pf.Names([]string{"a", "b", "c"})
	want := []string{"1", "a", "b", "c", "a^2", "a b", "a c", "b^2", "b c", "c^2"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	out := pf.Transform(mat.NewDense(1, 3, []float64{2, 3, 5}))
	if out.At(0, 0) != 1 || out.At(0, 5) != 6 || out.At(0, 9) != 25 {
		t.Fatalf("unexpected expansion %v", mat.Formatted(out))
	}
	if n := len((PolynomialFeatures{Degree: 3}).Terms(4)); n != 35 {
		t.Fatalf("C(4+3,3) = 35 terms, got %d", n)
	}
}

func TestPolynomialRegressionFitsQuadratic(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{-2, -1, 0, 1, 2, 3})
	y := make([]float64, 6)
	for i := range y {
		x := X.At(i, 0)
		y[i] = 1 + x - 2*x*x
	}
	m := NewPolynomialRegression(2)
	if err := m.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pred, err := m.Predict(mat.NewDense(1, 1, []float64{4}))
	if err != nil {
		t.Fatal(err)
	}
	if !near(pred[0], 1+4-32, 1e-8) {
		t.Fatalf("pred = %v", pred[0])
	}
}

func TestDecisionTreeMemorisesDistinctRows(t *testing.T) {
	X, y := design()
	tr := NewDecisionTree()
	if err := tr.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pred, err := tr.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	for i := range y {
		if pred[i] != y[i] {
			t.Fatalf("row %d: %v != %v", i, pred[i], y[i])
		}
	}
	if tr.Leaves() != 8 {
		t.Fatalf("expected 8 leaves, got %d", tr.Leaves())
	}

	stump := &DecisionTree{MaxDepth: 1}
	if err := stump.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if stump.Depth() != 1 || stump.Leaves() != 2 {
		t.Fatalf("stump depth=%d leaves=%d", stump.Depth(), stump.Leaves())
	}
}

func TestDecisionTreeDuplicateRowsAverage(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 1, 2})
	tr := NewDecisionTree()
	if err := tr.Fit(X, []float64{2, 4, 10}); err != nil {
		t.Fatal(err)
	}
	pred, _ := tr.Predict(mat.NewDense(2, 1, []float64{1, 1.4}))
	if pred[0] != 3 || pred[1] != 3 {
		t.Fatalf("pred = %v", pred)
	}
}

func TestMetrics(t *testing.T) {
	yTrue := []float64{3, -0.5, 2, 7}
	yPred := []float64{2.5, 0.0, 2, 8}
	s, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if !near(s.MSE, 0.375, 1e-12) || !near(s.MAE, 0.5, 1e-12) || !near(s.R2, 0.9486081370449679, 1e-12) {
		t.Fatalf("scores = %+v", s)
	}
	// R2 is not symmetric in its arguments
	swapped, _ := R2(yPred, yTrue)
	if near(swapped, s.R2, 1e-6) {
		t.Fatal("expected swapped R2 to differ")
	}
	if r, _ := R2([]float64{1, 1}, []float64{1, 1}); r != 1 {
		t.Fatalf("constant exact R2 = %v", r)
	}
	if r, _ := R2([]float64{1, 1}, []float64{1, 2}); r != 0 {
		t.Fatalf("constant inexact R2 = %v", r)
	}
	if _, err := MSE([]float64{1}, nil); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}
