package outliers

import (
	"context"
	"fmt"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/stats"
)

// Bounds is the accepted [Low, High] interval for one column.
type Bounds struct {
	Column    string
	Q1, Q3    float64
	Low, High float64
}

func (b Bounds) Contains(v float64) bool { return v >= b.Low && v <= b.High }

// IQR drops every row that has a value outside [Q1 - w*IQR, Q3 + w*IQR] in
// any numeric column. Quartiles are computed over the frame it is applied to.
// Nulls are ignored when computing quartiles and never cause a drop.
type IQR struct {
	Whisker float64  // default 1.5
	Columns []string // default: every int and float column
}

func (t *IQR) Name() string { return "drop_outliers_iqr" }

func (t *IQR) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	bounds, err := t.Bounds(f)
	if err != nil {
		return nil, err
	}
	return f.Filter(func(row int) bool {
		for _, b := range bounds {
			v, ok := f.Value(row, b.Column)
			if ok && !b.Contains(v) {
				return false
			}
		}
		return true
	}), nil
}

// Bounds computes the per-column interval the filter would apply.
func (t *IQR) Bounds(f *frame.Frame) ([]Bounds, error) {
	w := t.Whisker
	if w == 0 {
		w = 1.5
	}
	cols := t.Columns
	if len(cols) == 0 {
		cols = f.NumericNames()
	}
	out := make([]Bounds, 0, len(cols))
	for _, name := range cols {
		col, ok := f.ColumnByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", frame.ErrUnknownColumn, name)
		}
		if !col.Kind().Numeric() {
			return nil, fmt.Errorf("column %s: %s is not numeric", name, col.Kind())
		}
		vals := make([]float64, 0, f.Rows())
		for r := 0; r < f.Rows(); r++ {
			if v, ok := f.Value(r, name); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		q1, q3 := stats.Quartiles(vals)
		iqr := q3 - q1
		out = append(out, Bounds{Column: name, Q1: q1, Q3: q3, Low: q1 - w*iqr, High: q3 + w*iqr})
	}
	return out, nil
}
