// Package features derives model inputs from raw flight schedule columns.
package features

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

// Names of the columns added by Timestamps.
const (
	FlightDuration   = "Flight duration"
	DepartureYear    = "Departure year"
	DepartureMonth   = "Departure month"
	DepartureDay     = "Departure day"
	DepartureWeekday = "Departure weekday"
	DepartureHour    = "Departure hour"
	ArrivalHour      = "Arrival hour"
)

// DefaultLayouts are tried in order when parsing schedule strings.
var DefaultLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/06 15:04", // spreadsheet date-time cells
}

// Timestamps replaces the scheduled departure and arrival columns with
// calendar fields of the departure, the arrival hour and the absolute flight
// duration in hours.
type Timestamps struct {
	Departure string
	Arrival   string
	Layouts   []string
}

func (t *Timestamps) Name() string { return "expand_timestamps" }

func (t *Timestamps) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	dep, err := t.parseColumn(f, t.Departure)
	if err != nil {
		return nil, err
	}
	arr, err := t.parseColumn(f, t.Arrival)
	if err != nil {
		return nil, err
	}

	n := f.Rows()
	duration := frame.NewFloatColumn(FlightDuration, n)
	year := frame.NewIntColumn(DepartureYear, n)
	month := frame.NewIntColumn(DepartureMonth, n)
	day := frame.NewIntColumn(DepartureDay, n)
	weekday := frame.NewIntColumn(DepartureWeekday, n)
	hour := frame.NewIntColumn(DepartureHour, n)
	arrHour := frame.NewIntColumn(ArrivalHour, n)
	for i := 0; i < n; i++ {
		d, a := dep[i], arr[i]
		duration.Set(i, Hours(d, a))
		year.Set(i, int64(d.Year()))
		month.Set(i, int64(d.Month()))
		day.Set(i, int64(d.Day()))
		weekday.Set(i, int64(MondayFirst(d.Weekday())))
		hour.Set(i, int64(d.Hour()))
		arrHour.Set(i, int64(a.Hour()))
	}

	out, err := f.WithColumns(duration, year, month, day, weekday, hour, arrHour)
	if err != nil {
		return nil, err
	}
	return out.Drop(t.Departure, t.Arrival)
}

// Hours is the absolute distance between two instants in fractional hours.
func Hours(a, b time.Time) float64 {
	return math.Abs(b.Sub(a).Seconds()) / 3600.0
}

// MondayFirst maps time.Weekday (Sunday = 0) to Monday = 0 ... Sunday = 6.
func MondayFirst(d time.Weekday) int { return (int(d) + 6) % 7 }

func (t *Timestamps) parseColumn(f *frame.Frame, name string) ([]time.Time, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", frame.ErrUnknownColumn, name)
	}
	out := make([]time.Time, col.Len())
	switch c := col.(type) {
	case *frame.TimeColumn:
		for i := range out {
			v, ok := c.Get(i)
			if !ok {
				return nil, fmt.Errorf("column %s: null timestamp at row %d", name, i)
			}
			out[i] = v
		}
	case *frame.StringColumn:
		layouts := t.Layouts
		if len(layouts) == 0 {
			layouts = DefaultLayouts
		}
		for i := range out {
			s, ok := c.Get(i)
			if !ok {
				return nil, fmt.Errorf("column %s: null timestamp at row %d", name, i)
			}
			ts, err := Parse(s, layouts)
			if err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", name, i, err)
			}
			out[i] = ts
		}
	default:
		return nil, fmt.Errorf("column %s: cannot read timestamps from %s column", name, col.Kind())
	}
	return out, nil
}

// Parse tries each layout in turn.
func Parse(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		if ts, err := time.Parse(l, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
