// Package xlsxio reads flight tables from Excel workbooks and writes reports
// to them.
package xlsxio

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/io/csvio"
)

type ReaderOptions struct {
	Sheet     string // default: first sheet
	HasHeader bool
}

// Read loads one sheet. Kinds are inferred from every data row the same way
// as for delimited text.
func Read(path string, opt ReaderOptions) (*frame.Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx %s: no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx %s sheet %q: %w", path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx %s sheet %q: empty", path, sheet)
	}

	var names []string
	if opt.HasHeader {
		for _, h := range rows[0] {
			names = append(names, strings.TrimSpace(h))
		}
		rows = rows[1:]
	} else {
		width := 0
		for _, r := range rows {
			width = max(width, len(r))
		}
		for i := 0; i < width; i++ {
			names = append(names, fmt.Sprintf("col_%d", i))
		}
	}

	kinds := csvio.InferKinds(rows, len(names))
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i, n := range names {
		schema.Columns[i] = frame.ColumnSchema{Name: n, Type: kinds[i], Nullable: true}
	}
	f := frame.NewFrame(schema)
	for _, rec := range rows {
		f.AppendNullRow()
		row := f.Rows() - 1
		for i, cs := range schema.Columns {
			if i >= len(rec) {
				break
			}
			val := strings.TrimSpace(rec[i])
			if val == "" {
				continue
			}
			v, ok := csvio.ParseCell(cs.Type, val)
			if !ok {
				return nil, fmt.Errorf("xlsx %s row %d column %s: cannot parse %q as %s", path, row+2, cs.Name, val, cs.Type)
			}
			if err := f.SetCell(row, cs.Name, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// WriteAll saves f as a single-sheet workbook with a header row. Numbers and
// bools are written as typed cells; nulls are left empty.
func WriteAll(path, sheet string, f *frame.Frame) error {
	if sheet == "" {
		sheet = "Scores"
	}
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	names := f.Schema().Names()
	header := make([]any, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for r := 0; r < f.Rows(); r++ {
		cells := make([]any, len(names))
		for i, n := range names {
			col, _ := f.ColumnByName(n)
			switch c := col.(type) {
			case *frame.FloatColumn:
				if v, ok := c.Get(r); ok {
					cells[i] = v
				}
			case *frame.IntColumn:
				if v, ok := c.Get(r); ok {
					cells[i] = v
				}
			case *frame.BoolColumn:
				if v, ok := c.Get(r); ok {
					cells[i] = v
				}
			default:
				if v, ok := frame.Format(col, r); ok {
					cells[i] = v
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return wb.SaveAs(path)
}
