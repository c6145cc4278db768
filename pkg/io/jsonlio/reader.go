// Package jsonlio reads and writes frames as newline-delimited JSON objects.
package jsonlio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	iox "github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int
}

type Reader struct {
	dec    *json.Decoder
	closer io.Closer
	opt    ReaderOptions
	buf    []map[string]any
	keys   []string
}

// Open opens a (possibly gzipped) JSONL file, or stdin for "-".
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(rc, opt)
	r.closer = rc
	return r, nil
}

func NewReader(src io.Reader, opt ReaderOptions) *Reader {
	dec := json.NewDecoder(src)
	dec.UseNumber()
	return &Reader{dec: dec, opt: opt}
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// next decodes one object and appends unseen keys in the order they appear.
func (r *Reader) next(seen map[string]struct{}) (map[string]any, error) {
	var raw json.RawMessage
	if err := r.dec.Decode(&raw); err != nil {
		return nil, err
	}
	var m map[string]any
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	if err := d.Decode(&m); err != nil {
		return nil, err
	}
	if seen != nil {
		for _, k := range keyOrder(raw) {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				r.keys = append(r.keys, k)
			}
		}
	}
	return m, nil
}

// keyOrder lists the top-level keys of a JSON object in document order.
func keyOrder(raw []byte) []string {
	d := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := d.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return keys
		}
		k, _ := tok.(string)
		keys = append(keys, k)
		var skip json.RawMessage
		if err := d.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

// InferSchema samples objects to collect column names (in order of first
// appearance) and kinds. Sampled objects are kept for ReadAll.
func (r *Reader) InferSchema() (frame.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	seen := map[string]struct{}{}
	for len(r.buf) < max {
		m, err := r.next(seen)
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, fmt.Errorf("jsonl record %d: %w", len(r.buf)+1, err)
		}
		r.buf = append(r.buf, m)
	}
	kinds := inferKinds(r.buf, r.keys)
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll loads the sampled objects and the rest of the stream. Keys absent
// from the schema are ignored.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.NewFrame(schema)
	for _, m := range r.buf {
		if err := setRow(f, m); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		m, err := r.next(nil)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("jsonl record %d: %w", f.Rows()+1, err)
		}
		if err := setRow(f, m); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *frame.Frame, m map[string]any) error {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		cell, ok := convert(cs.Type, v)
		if !ok {
			continue
		}
		if err := f.SetCell(row, cs.Name, cell); err != nil {
			return err
		}
	}
	return nil
}

func convert(k frame.Kind, v any) (any, bool) {
	text := func() string {
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		case json.Number:
			return t.String()
		case bool:
			return strconv.FormatBool(t)
		}
		b, _ := json.Marshal(v)
		return string(b)
	}
	switch k {
	case frame.KindFloat:
		x, err := strconv.ParseFloat(text(), 64)
		return x, err == nil
	case frame.KindInt:
		s := text()
		if x, err := strconv.ParseInt(s, 10, 64); err == nil {
			return x, true
		}
		x, err := strconv.ParseFloat(s, 64)
		return int64(x), err == nil && x == float64(int64(x))
	case frame.KindBool:
		x, err := strconv.ParseBool(strings.ToLower(text()))
		return x, err == nil
	default:
		return text(), true
	}
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(sample []map[string]any, keys []string) []frame.Kind {
	kinds := make([]frame.Kind, len(keys))
	for i, k := range keys {
		nNum, nInt, nBool, nStr := 0, 0, 0, 0
		for _, m := range sample {
			var s string
			switch t := m[k].(type) {
			case nil:
				continue
			case bool:
				nBool++
				continue
			case json.Number:
				s = t.String()
			case string:
				s = strings.TrimSpace(t)
			default:
				nStr++
				continue
			}
			switch {
			case s == "":
			case numre.MatchString(s):
				nNum++
				if !strings.ContainsAny(s, ".eE") {
					nInt++
				}
			default:
				nStr++
			}
		}
		switch {
		case nBool > nNum && nBool >= nStr:
			kinds[i] = frame.KindBool
		case nNum > nStr && nInt == nNum:
			kinds[i] = frame.KindInt
		case nNum > nStr:
			kinds[i] = frame.KindFloat
		default:
			kinds[i] = frame.KindString
		}
	}
	return kinds
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
