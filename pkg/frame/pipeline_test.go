package frame_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

func flights() *frame.Frame {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Delay", Type: frame.KindFloat, Nullable: true},
		{Name: "Depature Airport", Type: frame.KindString, Nullable: true},
		{Name: "Departure year", Type: frame.KindInt, Nullable: true},
	}}
	f := frame.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "Delay", float64(i*10))
		_ = f.SetCell(i, "Depature Airport", []string{"SVO", "DME", "VKO", "LED"}[i])
		_ = f.SetCell(i, "Departure year", int64(2015+i))
	}
	return f
}

func TestPipeline(t *testing.T) {
	f := flights()
	dropLate := frame.TransformFunc{Label: "drop_late", Fn: func(ctx context.Context, in *frame.Frame) (*frame.Frame, error) {
		return in.Filter(func(r int) bool {
			v, _ := in.Value(r, "Delay")
			return v < 25
		}), nil
	}}
	moveDelay := frame.TransformFunc{Label: "move_delay", Fn: func(ctx context.Context, in *frame.Frame) (*frame.Frame, error) {
		return in.MoveToEnd("Delay")
	}}

	p := frame.NewPipeline().Add(dropLate).Add(moveDelay)
	out, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.Rows())
	}
	names := out.Schema().Names()
	if names[len(names)-1] != "Delay" {
		t.Fatalf("expected Delay last, got %v", names)
	}
	if f.Rows() != 4 || f.Schema().Names()[0] != "Delay" {
		t.Fatal("pipeline mutated its input")
	}
	if got := p.Steps(); len(got) != 2 || got[0] != "drop_late" {
		t.Fatalf("unexpected steps %v", got)
	}
}

func TestPipelineStepError(t *testing.T) {
	p := frame.NewPipeline().Add(frame.TransformFunc{Label: "drop_missing", Fn: func(ctx context.Context, in *frame.Frame) (*frame.Frame, error) {
		return in.Drop("Scheduled depature time")
	}})
	_, err := p.Run(context.Background(), flights())
	var se *frame.StepError
	if !errors.As(err, &se) || se.Step != "drop_missing" {
		t.Fatalf("expected step error, got %v", err)
	}
	if !errors.Is(err, frame.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := frame.NewPipeline().Add(frame.TransformFunc{Label: "noop", Fn: func(ctx context.Context, in *frame.Frame) (*frame.Frame, error) { return in, nil }})
	if _, err := p.Run(ctx, flights()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
