package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

// Require fails when any of the named columns is missing from the frame.
type Require struct {
	Columns []string
}

func (t *Require) Name() string { return "require_columns" }

func (t *Require) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	var missing []string
	for _, c := range t.Columns {
		if !f.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (have %s)", frame.ErrUnknownColumn, strings.Join(missing, ", "), strings.Join(f.Schema().Names(), ", "))
	}
	return f, nil
}

// Numeric fails when a named column is not int or float, or holds nulls.
type Numeric struct {
	Columns []string
}

func (t *Numeric) Name() string { return "require_numeric" }

func (t *Numeric) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	for _, name := range t.Columns {
		col, ok := f.ColumnByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", frame.ErrUnknownColumn, name)
		}
		if !col.Kind().Numeric() {
			return nil, fmt.Errorf("validate: column %s is %s, expected a number", name, col.Kind())
		}
		var bad int
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				bad++
			}
		}
		if bad > 0 {
			return nil, fmt.Errorf("validate: column %s has %d missing values", name, bad)
		}
	}
	return f, nil
}
