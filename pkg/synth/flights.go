// Package synth generates flight tables in the schema of the delay dataset.
package synth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

const layout = "2006-01-02 15:04:05"

var (
	Departures   = []string{"DME", "KZN", "LED", "SVO", "VKO"}
	Destinations = []string{"AER", "KRR", "OVB", "SVX"}
)

// Schema is the column layout of the raw dataset.
func Schema() frame.Schema {
	return frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Depature Airport", Type: frame.KindString, Nullable: true},
		{Name: "Scheduled depature time", Type: frame.KindString, Nullable: true},
		{Name: "Destination Airport", Type: frame.KindString, Nullable: true},
		{Name: "Scheduled arrival time", Type: frame.KindString, Nullable: true},
		{Name: "Delay", Type: frame.KindFloat, Nullable: true},
	}}
}

// Flights builds n rows. Departure years cycle 2015 to 2018 row by row and
// the other fields cycle independently of the year; seed only drives a small
// noise term on the delay.
func Flights(n int, seed int64) *frame.Frame {
	rnd := rand.New(rand.NewSource(seed))
	f := frame.NewFrame(Schema())
	for i := 0; i < n; i++ {
		q := i / 4
		dep := time.Date(2015+i%4, time.Month(1+(q*5)%12), 1+(q*11+i)%28, (q*7+i*3)%24, (i*13)%60, 0, 0, time.UTC)
		minutes := 60 + (q*37+i*17)%300
		arr := dep.Add(time.Duration(minutes) * time.Minute)
		delay := 5 + 0.2*float64(minutes) + 1.5*float64(dep.Hour()) + float64((i*37)%13) + 4*rnd.Float64()

		f.AppendNullRow()
		cells := []struct {
			name string
			v    any
		}{
			{"Depature Airport", Departures[(q*3+i)%len(Departures)]},
			{"Scheduled depature time", dep.Format(layout)},
			{"Destination Airport", Destinations[(q+2*i)%len(Destinations)]},
			{"Scheduled arrival time", arr.Format(layout)},
			{"Delay", delay},
		}
		for _, c := range cells {
			if err := f.SetCell(i, c.name, c.v); err != nil {
				panic(fmt.Sprintf("synth: %v", err))
			}
		}
	}
	return f
}
