package delay

import (
	"fmt"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/config"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/csvio"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/ioutils"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/jsonlio"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/parquetio"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/xlsxio"
)

// format resolves an explicit type or falls back to the path extension.
func format(typ, path string) string {
	if typ != "" {
		return typ
	}
	switch ioutils.Ext(path) {
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".parquet":
		return "parquet"
	case ".xlsx":
		return "xlsx"
	default:
		return "csv"
	}
}

// Load reads the flight table described by in.
func Load(in config.Input) (*frame.Frame, error) {
	var (
		f   *frame.Frame
		err error
	)
	switch t := format(in.Type, in.Path); t {
	case "csv":
		var delim rune
		if in.Delimiter != "" {
			delim = config.Delimiter(in.Delimiter)
		}
		f, err = csvio.Read(in.Path, csvio.ReaderOptions{HasHeader: in.HasHeader, Delimiter: delim, SampleRows: 1000, Strict: true})
	case "jsonl":
		f, err = jsonlio.Read(in.Path, jsonlio.ReaderOptions{SampleRows: 1000})
	case "parquet":
		f, err = parquetio.Read(in.Path)
	case "xlsx":
		f, err = xlsxio.Read(in.Path, xlsxio.ReaderOptions{Sheet: in.Sheet, HasHeader: in.HasHeader})
	default:
		return nil, fmt.Errorf("unsupported input type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", in.Path, err)
	}
	return f, nil
}

// Save writes the score table described by out.
func (r *Report) Save(out config.Output) error {
	f, err := r.Frame()
	if err != nil {
		return err
	}
	switch t := format(out.Type, out.Path); t {
	case "csv":
		err = csvio.WriteAll(out.Path, f, csvio.WriterOptions{Delimiter: config.Delimiter(out.Delimiter)})
	case "jsonl":
		err = jsonlio.WriteAll(out.Path, f)
	case "parquet":
		err = parquetio.WriteAll(out.Path, f)
	case "xlsx":
		err = xlsxio.WriteAll(out.Path, "Scores", f)
	default:
		return fmt.Errorf("unsupported output type %q", t)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", out.Path, err)
	}
	return nil
}
