package split

import (
	"errors"
	"testing"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

func years(ys ...int64) *frame.Frame {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Departure year", Type: frame.KindInt, Nullable: true},
		{Name: "Delay", Type: frame.KindFloat, Nullable: true},
	}}
	f := frame.NewFrame(s)
	for i, y := range ys {
		f.AppendNullRow()
		_ = f.SetCell(i, "Departure year", y)
		_ = f.SetCell(i, "Delay", float64(i))
	}
	return f
}

func TestByValueDisjointAndComplete(t *testing.T) {
	f := years(2015, 2018, 2016, 2018, 2017)
	train, test, err := ByValue(f, "Departure year", 2018)
	if err != nil {
		t.Fatal(err)
	}
	if train.Rows()+test.Rows() != f.Rows() {
		t.Fatalf("rows lost: %d + %d != %d", train.Rows(), test.Rows(), f.Rows())
	}
	seen := map[float64]bool{}
	for _, part := range []*frame.Frame{train, test} {
		for r := 0; r < part.Rows(); r++ {
			id, _ := part.Value(r, "Delay")
			if seen[id] {
				t.Fatalf("row %v in both partitions", id)
			}
			seen[id] = true
		}
	}
	for r := 0; r < test.Rows(); r++ {
		if y, _ := test.Value(r, "Departure year"); y != 2018 {
			t.Fatalf("test row with year %v", y)
		}
	}
	for r := 0; r < train.Rows(); r++ {
		if y, _ := train.Value(r, "Departure year"); y == 2018 {
			t.Fatal("2018 row in train")
		}
	}
	if first, _ := train.Value(1, "Delay"); first != 2 {
		t.Fatalf("train order not preserved, got %v", first)
	}
}

func TestByValueEmptyTest(t *testing.T) {
	_, _, err := ByValue(years(2015, 2016), "Departure year", 2018)
	if !errors.Is(err, ErrEmptyPartition) {
		t.Fatalf("expected ErrEmptyPartition, got %v", err)
	}
}
