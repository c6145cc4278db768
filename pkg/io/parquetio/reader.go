// Package parquetio reads flight tables from Parquet and writes score
// reports to Parquet.
package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

type Reader struct {
	file   *os.File
	reader *parquet.Reader
	schema frame.Schema
	kinds  []parquet.Kind
}

// OpenReader opens a flat Parquet file. Nested columns are rejected.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parquet %s: %w", path, err)
	}
	s, kinds, err := frameSchema(pf.Schema())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parquet %s: %w", path, err)
	}
	r := parquet.NewReader(pf)
	return &Reader{file: f, reader: r, schema: s, kinds: kinds}, nil
}

func frameSchema(ps *parquet.Schema) (frame.Schema, []parquet.Kind, error) {
	fields := ps.Fields()
	s := frame.Schema{Columns: make([]frame.ColumnSchema, len(fields))}
	kinds := make([]parquet.Kind, len(fields))
	for i, fd := range fields {
		if !fd.Leaf() || fd.Repeated() {
			return s, nil, fmt.Errorf("column %s is not a flat scalar", fd.Name())
		}
		kinds[i] = fd.Type().Kind()
		var k frame.Kind
		switch kinds[i] {
		case parquet.Boolean:
			k = frame.KindBool
		case parquet.Int32, parquet.Int64:
			k = frame.KindInt
		case parquet.Float, parquet.Double:
			k = frame.KindFloat
		default:
			k = frame.KindString
		}
		s.Columns[i] = frame.ColumnSchema{Name: fd.Name(), Type: k, Nullable: fd.Optional()}
	}
	return s, kinds, nil
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() frame.Schema { return r.schema }

// ReadAll loads every row group into a Frame.
func (r *Reader) ReadAll() (*frame.Frame, error) {
	f := frame.NewFrame(r.schema)
	names := r.schema.Names()
	buf := make([]parquet.Row, 1024)
	for {
		n, err := r.reader.ReadRows(buf)
		for _, row := range buf[:n] {
			f.AppendNullRow()
			if err := r.setRow(f, names, row); err != nil {
				return nil, err
			}
		}
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return f, nil
		}
	}
}

func (r *Reader) setRow(f *frame.Frame, names []string, row parquet.Row) error {
	at := f.Rows() - 1
	for _, v := range row {
		c := v.Column()
		if c < 0 || c >= len(names) || v.IsNull() {
			continue
		}
		var cell any
		switch r.kinds[c] {
		case parquet.Boolean:
			cell = v.Boolean()
		case parquet.Int32:
			cell = int64(v.Int32())
		case parquet.Int64:
			cell = v.Int64()
		case parquet.Float:
			cell = float64(v.Float())
		case parquet.Double:
			cell = v.Double()
		case parquet.ByteArray, parquet.FixedLenByteArray:
			cell = string(v.ByteArray())
		default:
			cell = v.String()
		}
		if err := f.SetCell(at, names[c], cell); err != nil {
			return err
		}
	}
	return nil
}

// Read opens path and loads it.
func Read(path string) (*frame.Frame, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}
