// Package encode turns categorical columns into numeric indicators.
package encode

import (
	"context"
	"fmt"
	"sort"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

// OneHot replaces each listed string column with one 0/1 int column per
// observed category, named "<column>_<category>". Categories are sorted and,
// with DropFirst, the first one is left out as the reference level. Indicator
// columns are appended after the existing columns; a null category encodes
// as all zeros.
type OneHot struct {
	Columns   []string
	DropFirst bool
	Separator string // default "_"
}

func (t *OneHot) Name() string { return "one_hot" }

func (t *OneHot) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	sep := t.Separator
	if sep == "" {
		sep = "_"
	}
	var indicators []frame.Column
	for _, name := range t.Columns {
		col, ok := f.ColumnByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", frame.ErrUnknownColumn, name)
		}
		sc, ok := col.(*frame.StringColumn)
		if !ok {
			return nil, fmt.Errorf("one_hot: column %s is %s, expected string", name, col.Kind())
		}
		cats := Categories(sc)
		if t.DropFirst && len(cats) > 0 {
			cats = cats[1:]
		}
		pos := make(map[string]int, len(cats))
		cols := make([]*frame.IntColumn, len(cats))
		for i, c := range cats {
			pos[c] = i
			cols[i] = frame.NewIntColumn(name+sep+c, f.Rows())
		}
		for r := 0; r < f.Rows(); r++ {
			v, ok := sc.Get(r)
			k, hit := pos[v]
			for i, ic := range cols {
				ic.Set(r, 0)
				if ok && hit && i == k {
					ic.Set(r, 1)
				}
			}
		}
		for _, ic := range cols {
			indicators = append(indicators, ic)
		}
	}
	out, err := f.Drop(t.Columns...)
	if err != nil {
		return nil, err
	}
	return out.WithColumns(indicators...)
}

// Categories returns the distinct non-null values of a column, sorted.
func Categories(c *frame.StringColumn) []string {
	seen := map[string]struct{}{}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
