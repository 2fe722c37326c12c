package regression

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MeanSquaredError returns the average squared difference between actual and predicted.
func MeanSquaredError(actual, predicted []float64) (float64, error) {
	if len(actual) == 0 {
		return 0, ErrEmptyInput
	}
	if len(actual) != len(predicted) {
		return 0, fmt.Errorf("%w: %d actual, %d predicted", ErrDimensionMismatch, len(actual), len(predicted))
	}
	diff := make([]float64, len(actual))
	floats.SubTo(diff, actual, predicted)
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}
