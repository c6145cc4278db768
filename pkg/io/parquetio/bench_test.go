package parquetio

import (
	"path/filepath"
	"testing"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

func makeFrame(rows int) *frame.Frame {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Model", Type: frame.KindString, Nullable: true},
		{Name: "MSE_test", Type: frame.KindFloat, Nullable: true},
		{Name: "Leaves", Type: frame.KindInt, Nullable: true},
	}}
	f := frame.NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "Model", "Ridge Regression")
		_ = f.SetCell(i, "MSE_test", float64(i%100)/8)
		_ = f.SetCell(i, "Leaves", int64(i%10))
	}
	return f
}

func TestWriteThenRead(t *testing.T) {
	in := makeFrame(5)
	_ = in.SetCell(3, "MSE_test", nil)
	p := filepath.Join(t.TempDir(), "scores.parquet")
	if err := WriteAll(p, in); err != nil {
		t.Fatal(err)
	}
	out, err := Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 5 || out.Cols() != 3 {
		t.Fatalf("shape %dx%d", out.Rows(), out.Cols())
	}
	s := out.Schema()
	if s.Columns[0].Type != frame.KindString || s.Columns[1].Type != frame.KindFloat || s.Columns[2].Type != frame.KindInt {
		t.Fatalf("kinds = %v", s.Columns)
	}
	mse := s.Columns[1].Name
	if v, ok := out.Value(2, mse); !ok || v != 0.25 {
		t.Fatalf("row 2 = %v, %v", v, ok)
	}
	if _, ok := out.Value(3, mse); ok {
		t.Fatal("null should survive the round trip")
	}
}

func BenchmarkParquetWrite(b *testing.B) {
	f := makeFrame(50000)
	path := filepath.Join(b.TempDir(), "bench.parquet")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := WriteAll(path, f); err != nil {
			b.Fatal(err)
		}
	}
}
