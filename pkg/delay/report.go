package delay

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/model"
)

// Score is one row of the results table.
type Score struct {
	Model string
	Train model.Scores
	Test  model.Scores
}

// Report is the outcome of a run.
type Report struct {
	RunID     uuid.UUID
	Selected  []string // union of KBest and FromModel, in column order
	KBest     []string
	FromModel []string
	Scores    []Score

	Cleaned             *frame.Frame // prepared table before the split
	TrainRows, TestRows int
}

// Columns of the results table.
var Columns = []string{"Model", "MSE_train", "MAE_train", "R2_train", "MSE_test", "MAE_test", "R2_test"}

// Frame lays the scores out as a table, one row per model.
func (r *Report) Frame() (*frame.Frame, error) {
	s := frame.Schema{Columns: make([]frame.ColumnSchema, len(Columns))}
	s.Columns[0] = frame.ColumnSchema{Name: Columns[0], Type: frame.KindString}
	for i := 1; i < len(Columns); i++ {
		s.Columns[i] = frame.ColumnSchema{Name: Columns[i], Type: frame.KindFloat}
	}
	f := frame.NewFrame(s)
	for i, sc := range r.Scores {
		f.AppendNullRow()
		vals := []any{sc.Model, sc.Train.MSE, sc.Train.MAE, sc.Train.R2, sc.Test.MSE, sc.Test.MAE, sc.Test.R2}
		for j, v := range vals {
			if err := f.SetCell(i, Columns[j], v); err != nil {
				return nil, fmt.Errorf("score table: %w", err)
			}
		}
	}
	return f, nil
}

// Render prints the selected features and the score table.
func (r *Report) Render(w io.Writer) error {
	f, err := r.Frame()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Run %s: %d train rows, %d test rows\n", r.RunID, r.TrainRows, r.TestRows)
	fmt.Fprintf(w, "Selected features (%d): %v\n", len(r.Selected), r.Selected)
	t := tablewriter.NewWriter(w)
	t.SetHeader(Columns)
	for row := 0; row < f.Rows(); row++ {
		cells := make([]string, len(Columns))
		for j, name := range Columns {
			col, _ := f.ColumnByName(name)
			if v, ok := f.Value(row, name); ok {
				cells[j] = fmt.Sprintf("%.6f", v)
				continue
			}
			cells[j], _ = frame.Format(col, row)
		}
		t.Append(cells)
	}
	t.Render()
	return nil
}
