package csvio

import (
	"encoding/csv"
	"io"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	iox "github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame with a header row. A ".gz" path is compressed and
// "-" writes to stdout.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f to w.
func Write(w io.Writer, f *frame.Frame, opt WriterOptions) error {
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	names := f.Schema().Names()
	if err := cw.Write(names); err != nil {
		return err
	}
	cols := make([]frame.Column, len(names))
	for i, n := range names {
		cols[i], _ = f.ColumnByName(n)
	}
	row := make([]string, len(names))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			v, ok := frame.Format(col, r)
			if !ok {
				v = ""
			}
			row[c] = v
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
