package scale

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

func TestRobustScalerKnownValues(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
		4, 7,
		100, 7,
	})
	s := NewRobustScaler()
	out, err := s.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}
	// column 0: median 3, q1 2, q3 4
	if s.Center[0] != 3 || s.Scale[0] != 2 {
		t.Fatalf("center/scale = %v/%v", s.Center[0], s.Scale[0])
	}
	if got := out.At(4, 0); got != 48.5 {
		t.Fatalf("scaled outlier = %v", got)
	}
	// constant column: zero range scales by 1
	if s.Scale[1] != 1 || out.At(0, 1) != 0 {
		t.Fatalf("constant column scale=%v value=%v", s.Scale[1], out.At(0, 1))
	}
}

func TestRobustScalerRoundTrip(t *testing.T) {
	X := mat.NewDense(6, 3, []float64{
		0.5, 10, -3,
		1.5, 20, 4,
		2.5, 35, 8,
		9.0, 40, 1,
		3.3, 12, 0,
		7.7, 18, 2,
	})
	s := NewRobustScaler()
	scaled, err := s.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}
	back, err := s.InverseTransform(scaled)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(X, back, 1e-12) {
		t.Fatalf("round trip failed:\n%v\n%v", mat.Formatted(X), mat.Formatted(back))
	}
}

func TestRobustScalerErrors(t *testing.T) {
	s := NewRobustScaler()
	if _, err := s.Transform(mat.NewDense(1, 1, nil)); !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
	_ = s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if _, err := s.Transform(mat.NewDense(1, 3, nil)); err == nil {
		t.Fatal("expected column mismatch")
	}
	bad := &RobustScaler{QuantileRange: [2]float64{80, 20}}
	if err := bad.Fit(mat.NewDense(1, 1, nil)); err == nil {
		t.Fatal("expected invalid range error")
	}
}

func partition(delays, hours []float64) *frame.Frame {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Delay", Type: frame.KindFloat, Nullable: true},
		{Name: "Departure hour", Type: frame.KindFloat, Nullable: true},
	}}
	f := frame.NewFrame(s)
	for i := range delays {
		f.AppendNullRow()
		_ = f.SetCell(i, "Delay", delays[i])
		_ = f.SetCell(i, "Departure hour", hours[i])
	}
	return f
}

func TestSplitsModes(t *testing.T) {
	train := partition([]float64{0, 10, 20, 30, 40}, []float64{1, 2, 3, 4, 5})
	test := partition([]float64{100, 200, 300}, []float64{10, 20, 30})

	per, err := Splits(train, test, "Delay", PerSplit, [2]float64{})
	if err != nil {
		t.Fatal(err)
	}
	names := per.Test.Schema().Names()
	if names[len(names)-1] != "Delay" || len(per.Features) != 1 {
		t.Fatalf("unexpected layout %v", names)
	}
	// each partition is centred on its own median
	if v, _ := per.Test.Value(1, "Delay"); v != 0 {
		t.Fatalf("per-split test median should scale to 0, got %v", v)
	}
	if per.TestX == per.TrainX {
		t.Fatal("per-split mode shares scalers")
	}

	shared, err := Splits(train, test, "Delay", TrainFit, [2]float64{})
	if err != nil {
		t.Fatal(err)
	}
	// train delay: median 20, iqr 20 -> (200-20)/20
	if v, _ := shared.Test.Value(1, "Delay"); v != 9 {
		t.Fatalf("train-fit test value = %v, want 9", v)
	}
	if math.IsNaN(shared.TrainY.Scale[0]) {
		t.Fatal("NaN scale")
	}
}
