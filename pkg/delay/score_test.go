package delay

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/config"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/model"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/synth"
)

func TestFitAndScoreOrientation(t *testing.T) {
	Convey("Given a ridge fit that does not reproduce the delays exactly", t, func() {
		Xtr := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
		ytr := []float64{2, 1, 5, 3, 7, 9}
		Xte := mat.NewDense(4, 1, []float64{2, 3, 7, 8})
		yte := []float64{4, 2, 12, 6}

		ref := model.NewRidge(1)
		So(ref.Fit(Xtr, ytr), ShouldBeNil)
		predTrain, err := ref.Predict(Xtr)
		So(err, ShouldBeNil)
		predTest, err := ref.Predict(Xte)
		So(err, ShouldBeNil)

		r2 := func(a, b []float64) float64 {
			v, err := model.R2(a, b)
			So(err, ShouldBeNil)
			return v
		}
		So(r2(predTrain, ytr), ShouldNotAlmostEqual, r2(ytr, predTrain), 1e-9)
		So(r2(yte, predTest), ShouldNotAlmostEqual, r2(predTest, yte), 1e-9)

		Convey("Train scores use the prediction as reference and test scores the observed delays", func() {
			s, err := fitAndScore(model.NewRidge(1), Xtr, ytr, Xte, yte, false)
			So(err, ShouldBeNil)
			So(s.Train.R2, ShouldAlmostEqual, r2(predTrain, ytr), 1e-12)
			So(s.Test.R2, ShouldAlmostEqual, r2(yte, predTest), 1e-12)
		})

		Convey("Prediction-referenced test scores reproduce the original table", func() {
			s, err := fitAndScore(model.NewRidge(1), Xtr, ytr, Xte, yte, true)
			So(err, ShouldBeNil)
			So(s.Train.R2, ShouldAlmostEqual, r2(predTrain, ytr), 1e-12)
			So(s.Test.R2, ShouldAlmostEqual, r2(predTest, yte), 1e-12)
		})

		Convey("The run reads the switch from the models section", func() {
			cfg := config.Default()
			cfg.Models.TestReference = "prediction"
			rep, err := Run(context.Background(), synth.Flights(100, 42), cfg)
			So(err, ShouldBeNil)
			base, err := Run(context.Background(), synth.Flights(100, 42), config.Default())
			So(err, ShouldBeNil)
			So(rep.Scores[0].Train.R2, ShouldAlmostEqual, base.Scores[0].Train.R2, 1e-9)
			So(rep.Scores[0].Test.MSE, ShouldAlmostEqual, base.Scores[0].Test.MSE, 1e-9)
			So(rep.Scores[0].Test.R2, ShouldNotAlmostEqual, base.Scores[0].Test.R2, 1e-9)
		})
	})
}
