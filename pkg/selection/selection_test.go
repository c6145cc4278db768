package selection

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFRegression(t *testing.T) {
	// col0 tracks y, col1 is noise-like, col2 is constant
	X := mat.NewDense(6, 3, []float64{
		1, 5, 7,
		2, 1, 7,
		3, 4, 7,
		4, 2, 7,
		5, 6, 7,
		6, 3, 7,
	})
	y := []float64{1.1, 2.0, 2.9, 4.2, 5.0, 5.8}
	scores, p, err := FRegression(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if !(scores[0] > scores[1]) {
		t.Fatalf("expected col0 to dominate: %v", scores)
	}
	if p[0] >= 0.01 || p[0] < 0 {
		t.Fatalf("col0 p-value = %v", p[0])
	}
	if scores[2] != 0 || p[2] != 1 {
		t.Fatalf("constant column score=%v p=%v", scores[2], p[2])
	}
	if _, _, err := FRegression(X, y[:2]); err == nil {
		t.Fatal("expected length error")
	}
}

func TestKBest(t *testing.T) {
	mask := KBest([]float64{3, math.NaN(), 9, 3, 1}, 2)
	want := []bool{false, false, true, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}
	all := KBest([]float64{1, 2}, 7)
	if !all[0] || !all[1] {
		t.Fatal("k beyond length should select all")
	}
}

func TestFromModel(t *testing.T) {
	coef := []float64{0.1, -4, 2, 0.5, -3}
	// mean |coef| = 1.92
	mask := FromModel(coef, 2)
	want := []bool{false, true, false, false, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}
	uncapped := FromModel(coef, 0)
	if !uncapped[2] || uncapped[3] {
		t.Fatalf("uncapped mask = %v", uncapped)
	}
}

func TestUnion(t *testing.T) {
	names := []string{"Flight duration", "Departure hour", "Arrival hour", "Delay lag"}
	got := Union(names, []bool{true, false, false, false}, []bool{false, false, true, false})
	if len(got) != 2 || got[0] != "Flight duration" || got[1] != "Arrival hour" {
		t.Fatalf("union = %v", got)
	}
}
