package scale

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

// Mode selects which rows the scalers learn their statistics from.
type Mode string

const (
	// PerSplit fits separate scalers on train and on test.
	PerSplit Mode = "per_split"
	// TrainFit fits on train and reuses those statistics for test.
	TrainFit Mode = "train_fit"
)

// Scaled holds the scaled partitions and the scalers that produced them.
type Scaled struct {
	Train, Test *frame.Frame
	Features    []string
	Target      string

	TrainX, TestX *RobustScaler
	TrainY, TestY *RobustScaler
}

// Splits robust-scales every non-target column and the target with separate
// scalers. The returned frames hold the features followed by the target.
func Splits(train, test *frame.Frame, target string, mode Mode, qrange [2]float64) (*Scaled, error) {
	if !train.Has(target) || !test.Has(target) {
		return nil, fmt.Errorf("scale: %w: %s", frame.ErrUnknownColumn, target)
	}
	var features []string
	for _, n := range train.Schema().Names() {
		if n != target {
			features = append(features, n)
		}
	}
	out := &Scaled{Features: features, Target: target}

	newScaler := func() *RobustScaler {
		s := NewRobustScaler()
		if qrange != [2]float64{} {
			s.QuantileRange = qrange
		}
		return s
	}

	side := func(f *frame.Frame, fitX, fitY *RobustScaler, fit bool) (*frame.Frame, error) {
		X, err := f.Matrix(features)
		if err != nil {
			return nil, err
		}
		y, err := f.Matrix([]string{target})
		if err != nil {
			return nil, err
		}
		if fit {
			if err := fitX.Fit(X); err != nil {
				return nil, err
			}
			if err := fitY.Fit(y); err != nil {
				return nil, err
			}
		}
		xs, err := fitX.Transform(X)
		if err != nil {
			return nil, err
		}
		ys, err := fitY.Transform(y)
		if err != nil {
			return nil, err
		}
		var all mat.Dense
		all.Augment(xs, ys)
		return frame.FromMatrix(append(append([]string(nil), features...), target), &all), nil
	}

	var err error
	out.TrainX, out.TrainY = newScaler(), newScaler()
	if out.Train, err = side(train, out.TrainX, out.TrainY, true); err != nil {
		return nil, fmt.Errorf("scale train: %w", err)
	}
	switch mode {
	case TrainFit:
		out.TestX, out.TestY = out.TrainX, out.TrainY
		out.Test, err = side(test, out.TestX, out.TestY, false)
	case PerSplit, "":
		out.TestX, out.TestY = newScaler(), newScaler()
		out.Test, err = side(test, out.TestX, out.TestY, true)
	default:
		return nil, fmt.Errorf("scale: unknown mode %q", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("scale test: %w", err)
	}
	return out, nil
}
