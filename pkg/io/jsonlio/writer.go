package jsonlio

import (
	"encoding/json"
	"io"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	iox "github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/ioutils"
)

// WriteAll writes one JSON object per row. Null cells are omitted.
func WriteAll(path string, f *frame.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func Write(w io.Writer, f *frame.Frame) error {
	enc := json.NewEncoder(w)
	names := f.Schema().Names()
	for r := 0; r < f.Rows(); r++ {
		m := make(map[string]any, len(names))
		for _, n := range names {
			col, _ := f.ColumnByName(n)
			switch c := col.(type) {
			case *frame.FloatColumn:
				if v, ok := c.Get(r); ok {
					m[n] = v
				}
			case *frame.IntColumn:
				if v, ok := c.Get(r); ok {
					m[n] = v
				}
			case *frame.BoolColumn:
				if v, ok := c.Get(r); ok {
					m[n] = v
				}
			case *frame.StringColumn:
				if v, ok := c.Get(r); ok {
					m[n] = v
				}
			case *frame.TimeColumn:
				if v, ok := c.Get(r); ok {
					m[n] = v
				}
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
