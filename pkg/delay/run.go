// Package delay runs the flight delay modelling job end to end: feature
// engineering, cleaning, year split, robust scaling, feature selection and
// regression scoring.
package delay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/config"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/features"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/model"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/scale"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/selection"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/split"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/transform/encode"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/transform/outliers"
	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/transform/validate"
)

// Prepare builds the cleaning pipeline: column checks, timestamp expansion,
// outlier removal on the whole table, airport encoding, and finally the
// target moved to the last column.
func Prepare(cfg config.Config) *frame.Pipeline {
	cols := cfg.Columns
	return frame.NewPipeline().
		Add(&validate.Require{Columns: cols.Required()}).
		Add(&validate.Numeric{Columns: []string{cols.Target}}).
		Add(&features.Timestamps{Departure: cols.Departure, Arrival: cols.Arrival}).
		Add(&outliers.IQR{Whisker: cfg.Outliers.Whisker}).
		Add(&encode.OneHot{Columns: cols.Categorical(), DropFirst: true}).
		Add(dropNonNumeric()).
		Add(frame.TransformFunc{Label: "move_target", Fn: func(_ context.Context, f *frame.Frame) (*frame.Frame, error) {
			return f.MoveToEnd(cols.Target)
		}})
}

// dropNonNumeric removes text columns the model cannot use.
func dropNonNumeric() frame.Transform {
	return frame.TransformFunc{Label: "drop_non_numeric", Fn: func(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
		var drop []string
		for _, cs := range f.Schema().Columns {
			if !cs.Type.Numeric() && cs.Type != frame.KindBool {
				drop = append(drop, cs.Name)
			}
		}
		if len(drop) == 0 {
			return f, nil
		}
		slog.WarnContext(ctx, "dropping non-numeric columns", "columns", drop)
		return f.Drop(drop...)
	}}
}

// Run executes the whole job on a raw flight table.
func Run(ctx context.Context, raw *frame.Frame, cfg config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	log := slog.Default().With("run_id", id.String())
	start := time.Now()
	log.InfoContext(ctx, "run started", "rows", raw.Rows(), "cols", raw.Cols())

	cleaned, err := Prepare(cfg).WithLogger(log).Run(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	log.InfoContext(ctx, "table prepared", "rows", cleaned.Rows(), "dropped", raw.Rows()-cleaned.Rows(), "cols", cleaned.Cols())

	train, test, err := split.ByValue(cleaned, cfg.Split.Column, cfg.Split.TestYear)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "split", "column", cfg.Split.Column, "test_value", cfg.Split.TestYear, "train", train.Rows(), "test", test.Rows())

	target := cfg.Columns.Target
	scaled, err := scale.Splits(train, test, target, scale.Mode(cfg.Scaling.Mode), cfg.Scaling.QuantileRange)
	if err != nil {
		return nil, err
	}

	rep := &Report{RunID: id, Cleaned: cleaned, TrainRows: train.Rows(), TestRows: test.Rows()}
	if err := rep.selectFeatures(ctx, log, scaled, cfg.Selection); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if err := rep.train(ctx, log, scaled, cfg.Models); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "run finished", "models", len(rep.Scores), "elapsed", time.Since(start))
	return rep, nil
}

func (r *Report) selectFeatures(ctx context.Context, log *slog.Logger, s *scale.Scaled, cfg config.Selection) error {
	X, err := s.Train.Matrix(s.Features)
	if err != nil {
		return err
	}
	y, err := s.Train.Float64s(s.Target)
	if err != nil {
		return err
	}
	k := cfg.K
	if k > len(s.Features) {
		log.WarnContext(ctx, "selection size exceeds feature count", "k", k, "features", len(s.Features))
		k = len(s.Features)
	}

	scores, _, err := selection.FRegression(X, y)
	if err != nil {
		return err
	}
	kbest := selection.KBest(scores, k)

	ridge := model.NewRidge(cfg.RidgeAlpha)
	if err := ridge.Fit(X, y); err != nil {
		return fmt.Errorf("ridge selector: %w", err)
	}
	fromModel := selection.FromModel(ridge.Coefficients(), cfg.MaxFeatures)

	r.KBest = selection.Picked(s.Features, kbest)
	r.FromModel = selection.Picked(s.Features, fromModel)
	r.Selected = selection.Union(s.Features, kbest, fromModel)
	log.InfoContext(ctx, "features selected", "kbest", r.KBest, "from_model", r.FromModel, "selected", len(r.Selected))
	if len(r.Selected) == 0 {
		return fmt.Errorf("no features selected")
	}
	return nil
}

// estimator pairs a report label with a fresh model.
type estimator struct {
	label string
	model model.Regressor
}

func estimators(cfg config.Models) ([]estimator, error) {
	out := make([]estimator, 0, len(cfg.Names))
	for _, name := range cfg.Names {
		switch name {
		case "ridge":
			out = append(out, estimator{"Ridge Regression", model.NewRidge(cfg.RidgeAlpha)})
		case "polynomial":
			out = append(out, estimator{"Polynomial Regression", model.NewPolynomialRegression(cfg.PolynomialDegree)})
		case "decision_tree":
			out = append(out, estimator{"Decision Tree Regression", &model.DecisionTree{MaxDepth: cfg.TreeMaxDepth}})
		case "linear":
			out = append(out, estimator{"Linear Regression", model.NewLinearRegression()})
		default:
			return nil, fmt.Errorf("unknown model %q", name)
		}
	}
	return out, nil
}

func (r *Report) train(ctx context.Context, log *slog.Logger, s *scale.Scaled, cfg config.Models) error {
	models, err := estimators(cfg)
	if err != nil {
		return err
	}
	Xtr, err := s.Train.Matrix(r.Selected)
	if err != nil {
		return err
	}
	Xte, err := s.Test.Matrix(r.Selected)
	if err != nil {
		return err
	}
	ytr, err := s.Train.Float64s(s.Target)
	if err != nil {
		return err
	}
	yte, err := s.Test.Float64s(s.Target)
	if err != nil {
		return err
	}

	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		score, err := fitAndScore(m.model, Xtr, ytr, Xte, yte, cfg.TestReference == "prediction")
		if err != nil {
			return fmt.Errorf("%s: %w", m.label, err)
		}
		score.Model = m.label
		r.Scores = append(r.Scores, score)
		log.InfoContext(ctx, "model scored", "model", m.label,
			"r2_train", score.Train.R2, "r2_test", score.Test.R2, "elapsed", time.Since(start))
	}
	return nil
}

// fitAndScore trains on the train split and scores both splits. Train
// scores take the predictions as the reference series. Test scores take the
// observed delays unless predRef is set.
func fitAndScore(m model.Regressor, Xtr mat.Matrix, ytr []float64, Xte mat.Matrix, yte []float64, predRef bool) (Score, error) {
	var s Score
	if err := m.Fit(Xtr, ytr); err != nil {
		return s, err
	}
	predTrain, err := m.Predict(Xtr)
	if err != nil {
		return s, err
	}
	predTest, err := m.Predict(Xte)
	if err != nil {
		return s, err
	}
	if s.Train, err = model.Evaluate(predTrain, ytr); err != nil {
		return s, err
	}
	ref, other := yte, predTest
	if predRef {
		ref, other = predTest, yte
	}
	if s.Test, err = model.Evaluate(ref, other); err != nil {
		return s, err
	}
	return s, nil
}
