// Package split partitions a prepared flight table into train and test rows.
package split

import (
	"errors"
	"fmt"

	"github.com/zuhairabbas14/Flight-Delay-Forecasting/pkg/frame"
)

// ErrEmptyPartition is returned when either side of a split has no rows.
var ErrEmptyPartition = errors.New("empty partition")

// ByValue sends rows whose column equals value to test and every other row to
// train. Row order is preserved on both sides.
func ByValue(f *frame.Frame, column string, value float64) (train, test *frame.Frame, err error) {
	if !f.Has(column) {
		return nil, nil, fmt.Errorf("split: %w: %s", frame.ErrUnknownColumn, column)
	}
	var trainRows, testRows []int
	for r := 0; r < f.Rows(); r++ {
		v, ok := f.Value(r, column)
		if ok && v == value {
			testRows = append(testRows, r)
		} else {
			trainRows = append(trainRows, r)
		}
	}
	train, test = f.Take(trainRows), f.Take(testRows)
	if train.Rows() == 0 || test.Rows() == 0 {
		return train, test, fmt.Errorf("split on %s == %v: %w (train=%d test=%d)", column, value, ErrEmptyPartition, train.Rows(), test.Rows())
	}
	return train, test, nil
}
