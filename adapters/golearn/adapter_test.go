package golearn

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/synth"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/transform/encode"
)

func TestDenseInstancesRoundTrip(t *testing.T) {
	Convey("Given an encoded flight table", t, func() {
		raw := synth.Flights(20, 1)
		f, err := (&encode.OneHot{Columns: []string{"Destination Airport"}, DropFirst: true}).Apply(context.Background(), raw)
		So(err, ShouldBeNil)
		_ = f.SetCell(4, "Delay", nil)

		Convey("It converts with Delay as the class attribute", func() {
			inst, err := ToDenseInstances(f, "Delay")
			So(err, ShouldBeNil)
			cols, rows := inst.Size()
			So(cols, ShouldEqual, f.Cols())
			So(rows, ShouldEqual, 20)
			classes := inst.AllClassAttributes()
			So(len(classes), ShouldEqual, 1)
			So(classes[0].GetName(), ShouldEqual, "Delay")

			Convey("And converts back with values and nulls intact", func() {
				back, err := FromDenseInstances(inst)
				So(err, ShouldBeNil)
				So(back.Rows(), ShouldEqual, 20)
				want, _ := f.Value(7, "Delay")
				got, ok := back.Value(7, "Delay")
				So(ok, ShouldBeTrue)
				So(got, ShouldAlmostEqual, want)
				_, ok = back.Value(4, "Delay")
				So(ok, ShouldBeFalse)

				airport, _ := back.ColumnByName("Depature Airport")
				v, _ := airport.(*frame.StringColumn).Get(0)
				orig, _ := raw.ColumnByName("Depature Airport")
				w, _ := orig.(*frame.StringColumn).Get(0)
				So(v, ShouldEqual, w)
			})
		})

		Convey("An unknown class column is rejected", func() {
			_, err := ToDenseInstances(f, "Arrival delay")
			So(err, ShouldNotBeNil)
		})
	})
}
