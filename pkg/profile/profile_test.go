package profile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

func sample(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.NewFrame(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Delay", Type: frame.KindFloat, Nullable: true},
		{Name: "Depature Airport", Type: frame.KindString, Nullable: true},
	}})
	delays := []any{10.0, 20.0, nil, 40.0, 30.0}
	airports := []any{"SVO", "LED", "SVO", nil, "KZN"}
	for i := range delays {
		f.AppendNullRow()
		if err := f.SetCell(i, "Delay", delays[i]); err != nil {
			t.Fatal(err)
		}
		if err := f.SetCell(i, "Depature Airport", airports[i]); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestCollect(t *testing.T) {
	p := Collect(sample(t), 2)
	if p.Rows != 5 || len(p.Columns) != 2 {
		t.Fatalf("profile shape: %+v", p)
	}
	n := p.Columns[0].Num
	if n == nil || n.Count != 4 || n.Nulls != 1 {
		t.Fatalf("numeric stats: %+v", n)
	}
	if n.Min != 10 || n.Max != 40 || n.Mean != 25 || n.Median != 25 || n.Q1 != 17.5 || n.Q3 != 32.5 {
		t.Fatalf("numeric stats: %+v", n)
	}
	c := p.Columns[1].Cat
	if c == nil || c.Count != 4 || c.Nulls != 1 || c.Distinct != 3 {
		t.Fatalf("categorical stats: %+v", c)
	}
	if len(c.Top) != 2 || c.Top["SVO"] != 2 || c.Top["KZN"] != 1 {
		t.Fatalf("top = %v", c.Top)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Collect(sample(t), 3).Render(&buf)
	out := buf.String()
	for _, want := range []string{"5 rows", "DELAY", "SVO=2"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
}
