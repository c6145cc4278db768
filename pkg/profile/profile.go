// Package profile summarises the columns of a frame.
package profile

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/stats"
)

type NumStats struct {
	Count  int     `json:"count"`
	Nulls  int     `json:"nulls"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
}

type CatStats struct {
	Count    int            `json:"count"`
	Nulls    int            `json:"nulls"`
	Distinct int            `json:"distinct"`
	Top      map[string]int `json:"top,omitempty"`
}

type Column struct {
	Name string    `json:"name"`
	Kind string    `json:"kind"`
	Num  *NumStats `json:"num,omitempty"`
	Cat  *CatStats `json:"cat,omitempty"`
}

type Profile struct {
	Rows    int      `json:"rows"`
	Columns []Column `json:"columns"`
}

// Collect profiles every column of f. Numeric and bool columns get order
// statistics; string and time columns get frequency counts, of which the
// topK most common are kept.
func Collect(f *frame.Frame, topK int) Profile {
	p := Profile{Rows: f.Rows(), Columns: make([]Column, 0, f.Cols())}
	for _, cs := range f.Schema().Columns {
		c, _ := f.ColumnByName(cs.Name)
		pc := Column{Name: cs.Name, Kind: cs.Type.String()}
		switch col := c.(type) {
		case *frame.StringColumn:
			pc.Cat = categorical(col.Len(), topK, func(i int) (string, bool) { return col.Get(i) })
		case *frame.TimeColumn:
			pc.Cat = categorical(col.Len(), topK, func(i int) (string, bool) {
				v, ok := col.Get(i)
				return v.String(), ok
			})
		default:
			pc.Num = numeric(f, cs.Name)
		}
		p.Columns = append(p.Columns, pc)
	}
	return p
}

func numeric(f *frame.Frame, name string) *NumStats {
	s := &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
	vals := make([]float64, 0, f.Rows())
	var sum float64
	for r := 0; r < f.Rows(); r++ {
		v, ok := f.Value(r, name)
		if !ok {
			s.Nulls++
			continue
		}
		vals = append(vals, v)
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Count = len(vals)
	if s.Count == 0 {
		s.Min, s.Max = math.NaN(), math.NaN()
		s.Mean, s.Q1, s.Median, s.Q3 = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Mean = sum / float64(s.Count)
	sorted := stats.Sorted(vals)
	s.Q1 = stats.Quantile(0.25, sorted)
	s.Median = stats.Quantile(0.5, sorted)
	s.Q3 = stats.Quantile(0.75, sorted)
	return s
}

func categorical(n, topK int, get func(int) (string, bool)) *CatStats {
	s := &CatStats{}
	freqs := make(map[string]int)
	for i := 0; i < n; i++ {
		v, ok := get(i)
		if !ok {
			s.Nulls++
			continue
		}
		s.Count++
		freqs[v]++
	}
	s.Distinct = len(freqs)
	if topK <= 0 || len(freqs) == 0 {
		return s
	}
	s.Top = make(map[string]int, topK)
	for _, kv := range ranked(freqs) {
		if len(s.Top) == topK {
			break
		}
		s.Top[kv.key] = kv.n
	}
	return s
}

type count struct {
	key string
	n   int
}

// ranked orders by descending count, then by key.
func ranked(freqs map[string]int) []count {
	out := make([]count, 0, len(freqs))
	for k, v := range freqs {
		out = append(out, count{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].key < out[j].key
	})
	return out
}

// Render writes the profile as a table.
func (p Profile) Render(w io.Writer) {
	fmt.Fprintf(w, "Profile: %d rows, %d columns\n", p.Rows, len(p.Columns))
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Column", "Kind", "Count", "Nulls", "Min", "Q1", "Median", "Q3", "Max", "Top"})
	for _, c := range p.Columns {
		switch {
		case c.Num != nil:
			n := c.Num
			t.Append([]string{c.Name, c.Kind, fmt.Sprint(n.Count), fmt.Sprint(n.Nulls),
				g(n.Min), g(n.Q1), g(n.Median), g(n.Q3), g(n.Max), ""})
		case c.Cat != nil:
			t.Append([]string{c.Name, c.Kind, fmt.Sprint(c.Cat.Count), fmt.Sprint(c.Cat.Nulls),
				"", "", "", "", "", top(c.Cat.Top)})
		}
	}
	t.Render()
}

func g(v float64) string { return fmt.Sprintf("%.6g", v) }

func top(freqs map[string]int) string {
	parts := make([]string, 0, len(freqs))
	for _, kv := range ranked(freqs) {
		parts = append(parts, fmt.Sprintf("%s=%d", kv.key, kv.n))
	}
	return strings.Join(parts, " ")
}
