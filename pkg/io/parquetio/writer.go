package parquetio

import (
	"encoding/json"
	"fmt"
	"time"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

type jsonField struct {
	Tag string `json:"Tag"`
}

type jsonSchema struct {
	Tag    string      `json:"Tag"`
	Fields []jsonField `json:"Fields"`
}

// schemaJSON describes s in the JSON schema dialect of the xitongsys writer.
// Every column is optional; times are stored as UTF8 RFC 3339 strings.
func schemaJSON(s frame.Schema) (string, error) {
	sc := jsonSchema{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		var typ string
		switch cs.Type {
		case frame.KindFloat:
			typ = "type=DOUBLE"
		case frame.KindInt:
			typ = "type=INT64"
		case frame.KindBool:
			typ = "type=BOOLEAN"
		default:
			typ = "type=BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, jsonField{Tag: "name=" + cs.Name + ", " + typ + ", repetitiontype=OPTIONAL"})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// WriteAll writes f to a Parquet file.
func WriteAll(path string, f *frame.Frame) error {
	schema, err := schemaJSON(f.Schema())
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	w, err := pw.NewJSONWriter(schema, fw, 1)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	names := f.Schema().Names()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(names))
		for _, n := range names {
			col, _ := f.ColumnByName(n)
			switch c := col.(type) {
			case *frame.FloatColumn:
				if v, ok := c.Get(r); ok {
					rec[n] = v
				}
			case *frame.IntColumn:
				if v, ok := c.Get(r); ok {
					rec[n] = v
				}
			case *frame.BoolColumn:
				if v, ok := c.Get(r); ok {
					rec[n] = v
				}
			case *frame.StringColumn:
				if v, ok := c.Get(r); ok {
					rec[n] = v
				}
			case *frame.TimeColumn:
				if v, ok := c.Get(r); ok {
					rec[n] = v.Format(time.RFC3339)
				}
			}
		}
		line, err := json.Marshal(rec)
		if err != nil {
			_ = fw.Close()
			return err
		}
		if err := w.Write(string(line)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	if err := w.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet flush: %w", err)
	}
	return fw.Close()
}
