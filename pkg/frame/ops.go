package frame

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// fromColumns builds a frame around already populated columns of equal length.
func fromColumns(cols []Column, nrows int) *Frame {
	f := &Frame{cols: cols, index: make(map[string]int, len(cols)), nrows: nrows}
	f.schema.Columns = make([]ColumnSchema, len(cols))
	for i, c := range cols {
		f.schema.Columns[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
		f.index[c.Name()] = i
	}
	return f
}

// Take returns a new frame holding the given rows, in the given order.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.take(c.Name(), rows)
	}
	return fromColumns(cols, len(rows))
}

// Filter keeps the rows for which keep returns true.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	rows := make([]int, 0, f.nrows)
	for r := 0; r < f.nrows; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return f.Take(rows)
}

func (f *Frame) allRows() []int {
	rows := make([]int, f.nrows)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// Clone deep-copies the frame.
func (f *Frame) Clone() *Frame { return f.Take(f.allRows()) }

// Select returns a frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	rows := f.allRows()
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, ok := f.ColumnByName(n)
		if !ok {
			return nil, fmt.Errorf("select: %w: %s", ErrUnknownColumn, n)
		}
		cols = append(cols, c.take(n, rows))
	}
	return fromColumns(cols, f.nrows), nil
}

// Drop returns a frame without the named columns.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !f.Has(n) {
			return nil, fmt.Errorf("drop: %w: %s", ErrUnknownColumn, n)
		}
		drop[n] = struct{}{}
	}
	keep := make([]string, 0, len(f.cols))
	for _, cs := range f.schema.Columns {
		if _, ok := drop[cs.Name]; !ok {
			keep = append(keep, cs.Name)
		}
	}
	return f.Select(keep...)
}

// MoveToEnd returns a frame where the named column is the last one.
func (f *Frame) MoveToEnd(name string) (*Frame, error) {
	if !f.Has(name) {
		return nil, fmt.Errorf("move: %w: %s", ErrUnknownColumn, name)
	}
	order := make([]string, 0, len(f.cols))
	for _, cs := range f.schema.Columns {
		if cs.Name != name {
			order = append(order, cs.Name)
		}
	}
	return f.Select(append(order, name)...)
}

// WithColumns returns a frame with extra columns appended. A column whose name
// already exists replaces the old one in place.
func (f *Frame) WithColumns(extra ...Column) (*Frame, error) {
	out := f.Clone()
	for _, c := range extra {
		if c.Len() != f.nrows {
			return nil, fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
		}
		if i, ok := out.index[c.Name()]; ok {
			out.cols[i] = c
			out.schema.Columns[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
			continue
		}
		out.index[c.Name()] = len(out.cols)
		out.cols = append(out.cols, c)
		out.schema.Columns = append(out.schema.Columns, ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true})
	}
	return out, nil
}

// NumericNames lists the int and float columns in schema order.
func (f *Frame) NumericNames() []string {
	var out []string
	for _, cs := range f.schema.Columns {
		if cs.Type.Numeric() {
			out = append(out, cs.Name)
		}
	}
	return out
}

// Float64s copies a numeric column into a slice. Nulls and non-numeric
// columns are errors: every downstream consumer needs complete data.
func (f *Frame) Float64s(name string) ([]float64, error) {
	c, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	out := make([]float64, f.nrows)
	for r := range out {
		v, ok := numericAt(c, r)
		if !ok {
			if c.Kind().Numeric() || c.Kind() == KindBool {
				return nil, fmt.Errorf("column %s: null at row %d", name, r)
			}
			return nil, fmt.Errorf("column %s: %s is not numeric", name, c.Kind())
		}
		out[r] = v
	}
	return out, nil
}

// Matrix lays the named columns out as a rows x len(names) dense matrix.
func (f *Frame) Matrix(names []string) (*mat.Dense, error) {
	if f.nrows == 0 || len(names) == 0 {
		return nil, fmt.Errorf("matrix: empty selection (%d rows, %d columns)", f.nrows, len(names))
	}
	m := mat.NewDense(f.nrows, len(names), nil)
	for j, n := range names {
		col, err := f.Float64s(n)
		if err != nil {
			return nil, err
		}
		m.SetCol(j, col)
	}
	return m, nil
}

// FromMatrix builds a float frame from a dense matrix and column names.
func FromMatrix(names []string, m mat.Matrix) *Frame {
	r, c := m.Dims()
	if c != len(names) {
		panic(fmt.Sprintf("frame: %d names for %d matrix columns", len(names), c))
	}
	cols := make([]Column, c)
	for j := 0; j < c; j++ {
		fc := NewFloatColumn(names[j], r)
		for i := 0; i < r; i++ {
			fc.Set(i, m.At(i, j))
		}
		cols[j] = fc
	}
	return fromColumns(cols, r)
}
