// Package csvio reads and writes frames as delimited text.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	iox "github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records and unparseable cells
}

type Reader struct {
	r      *csv.Reader
	closer io.Closer
	opt    ReaderOptions
	buf    [][]string
	line   int

	shortRecords int
	longRecords  int
	badCells     int
}

// Open opens a CSV file, transparently decompressing gzip input. Use "-" for
// stdin. The caller closes the Reader.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	if opt.Delimiter == 0 && path != "-" && path != "" {
		if d, lazy, err := sniff(path); err == nil {
			opt.Delimiter = d
			r, err := open(path, opt)
			if err == nil {
				r.r.LazyQuotes = lazy
			}
			return r, err
		}
	}
	return open(path, opt)
}

func open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(rc, opt)
	r.closer = rc
	return r, nil
}

// NewReader reads CSV from an arbitrary stream (stdin, pipe, test string).
func NewReader(src io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(src)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, opt: opt}
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// InferSchema reads the header (if any) and a sample of rows to pick a kind
// for every column. Sampled rows are kept for ReadAll.
func (r *Reader) InferSchema() (frame.Schema, error) {
	rec, err := r.next()
	if err != nil {
		return frame.Schema{}, fmt.Errorf("csv header: %w", err)
	}
	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.TrimSpace(strings.ToValidUTF8(rec[i], "?"))
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		r.buf = append(r.buf, rec)
	}

	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(r.buf) < max {
		rec, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		r.buf = append(r.buf, rec)
	}

	kinds := InferKinds(r.buf, len(names))
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = frame.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

func (r *Reader) next() ([]string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	r.line++
	return rec, nil
}

// ReadAll loads the sampled rows and the rest of the input into a Frame.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.NewFrame(schema)
	for _, rec := range r.buf {
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		rec, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *frame.Frame, schema frame.Schema, rec []string) error {
	want := len(schema.Columns)
	switch {
	case len(rec) < want:
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv record %d: need %d fields, got %d", f.Rows()+1, want, len(rec))
		}
	case len(rec) > want:
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv record %d: need %d fields, got %d", f.Rows()+1, want, len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	kinds := f.Schema().Columns
	for i, cs := range kinds {
		if i >= len(rec) {
			break
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if val == "" {
			continue
		}
		v, ok := ParseCell(cs.Type, val)
		if !ok && cs.Type == frame.KindInt {
			// a decimal past the sampled rows promotes the column
			if x, isFloat := ParseCell(frame.KindFloat, val); isFloat {
				if err := f.WidenToFloat(cs.Name); err != nil {
					return err
				}
				v, ok = x, true
			}
		}
		if !ok {
			r.badCells++
			if r.opt.Strict {
				return fmt.Errorf("csv record %d column %s: cannot parse %q as %s", row+1, cs.Name, val, cs.Type)
			}
			continue
		}
		if err := f.SetCell(row, cs.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// ParseCell converts trimmed text to the Go value stored for kind k.
func ParseCell(k frame.Kind, val string) (any, bool) {
	switch k {
	case frame.KindFloat:
		x, err := strconv.ParseFloat(val, 64)
		return x, err == nil
	case frame.KindInt:
		x, err := strconv.ParseInt(val, 10, 64)
		return x, err == nil
	case frame.KindBool:
		x, err := strconv.ParseBool(strings.ToLower(val))
		return x, err == nil
	default:
		return val, true
	}
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// InferKinds picks int when every numeric sample is integral, float when
// numbers outnumber text, and string otherwise. Timestamps stay strings and
// are parsed by the feature step.
func InferKinds(rows [][]string, ncol int) []frame.Kind {
	kinds := make([]frame.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, str := 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			switch {
			case v == "":
			case numre.MatchString(v):
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			default:
				str++
			}
		}
		switch {
		case num > str && integer == num:
			kinds[c] = frame.KindInt
		case num > str:
			kinds[c] = frame.KindFloat
		default:
			kinds[c] = frame.KindString
		}
	}
	return kinds
}

// sniff guesses the delimiter from the first 4KiB and whether quotes need
// lenient parsing.
func sniff(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	sample, _ := bufio.NewReader(rc).Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	if i := strings.IndexByte(string(sample), '\n'); i > 0 {
		sample = sample[:i]
	}
	best, bestCount := ',', 0
	for _, c := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(string(sample), string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, strings.Count(string(sample), `"`)%2 != 0, nil
}

// Warnings summarises the repairs made in lenient mode.
func (r *Reader) Warnings() string {
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	if r.badCells > 0 {
		parts = append(parts, fmt.Sprintf("unparsed_cells=%d", r.badCells))
	}
	return strings.Join(parts, ", ")
}

// Read opens path, infers its schema and loads it.
func Read(path string, opt ReaderOptions) (*frame.Frame, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, err
	}
	return r.ReadAll(schema)
}
