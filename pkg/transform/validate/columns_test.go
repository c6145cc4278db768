package validate

import (
	"context"
	"errors"
	"testing"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

func target() *frame.Frame {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Delay", Type: frame.KindFloat, Nullable: true},
		{Name: "Depature Airport", Type: frame.KindString, Nullable: true},
	}}
	f := frame.NewFrame(s)
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "Depature Airport", "SVO")
	}
	_ = f.SetCell(0, "Delay", 3.0)
	_ = f.SetCell(1, "Delay", 0.0)
	return f
}

func TestRequire(t *testing.T) {
	f := target()
	if _, err := (&Require{Columns: []string{"Delay"}}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	_, err := (&Require{Columns: []string{"Delay", "Scheduled arrival time"}}).Apply(context.Background(), f)
	if !errors.Is(err, frame.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestNumeric(t *testing.T) {
	f := target()
	if _, err := (&Numeric{Columns: []string{"Delay"}}).Apply(context.Background(), f); err == nil {
		t.Fatal("expected missing value error")
	}
	if _, err := (&Numeric{Columns: []string{"Depature Airport"}}).Apply(context.Background(), f); err == nil {
		t.Fatal("expected kind error")
	}
	_ = f.SetCell(2, "Delay", 12.0)
	if _, err := (&Numeric{Columns: []string{"Delay"}}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
}
