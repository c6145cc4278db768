// Package golearn converts prepared flight tables to and from
// github.com/sjwhitworth/golearn DenseInstances.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

// ToDenseInstances converts a Frame into DenseInstances. Int, float and bool
// columns become float attributes with nulls stored as NaN; string and time
// columns become categorical attributes. The column named class is marked as
// the class attribute; an empty name marks none.
func ToDenseInstances(f *frame.Frame, class string) (*base.DenseInstances, error) {
	if class != "" && !f.Has(class) {
		return nil, fmt.Errorf("golearn: class %w: %s", frame.ErrUnknownColumn, class)
	}
	cols := f.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	for i, cs := range cols {
		if cs.Type.Numeric() || cs.Type == frame.KindBool {
			attrs[i] = base.NewFloatAttribute(cs.Name)
			continue
		}
		ca := base.NewCategoricalAttribute()
		ca.SetName(cs.Name)
		attrs[i] = ca
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for c, cs := range cols {
		col, _ := f.ColumnByName(cs.Name)
		numeric := attrs[c].GetType() == base.Float64Type
		for r := 0; r < f.Rows(); r++ {
			if numeric {
				v, ok := f.Value(r, cs.Name)
				if !ok {
					v = math.NaN()
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
				continue
			}
			s, _ := frame.Format(col, r)
			inst.Set(specs[c], r, attrs[c].GetSysValFromString(s))
		}
	}

	if class != "" {
		for i, cs := range cols {
			if cs.Name == class {
				if err := inst.AddClassAttribute(attrs[i]); err != nil {
					return nil, err
				}
			}
		}
	}
	return inst, nil
}

// FromDenseInstances converts DenseInstances into a Frame. Float attributes
// become float columns (NaN reads back as null) and everything else becomes
// a string column.
func FromDenseInstances(inst *base.DenseInstances) (*frame.Frame, error) {
	attrs := inst.AllAttributes()
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := frame.KindString
		if a.GetType() == base.Float64Type {
			k = frame.KindFloat
		}
		schema.Columns[i] = frame.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	f := frame.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			raw := inst.Get(specs[c], r)
			var v any
			if cs.Type == frame.KindFloat {
				if x := base.UnpackBytesToFloat(raw); !math.IsNaN(x) {
					v = x
				}
			} else {
				v = specs[c].GetAttribute().GetStringFromSysVal(raw)
			}
			if err := f.SetCell(r, cs.Name, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
