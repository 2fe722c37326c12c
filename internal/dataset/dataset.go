package dataset

import (
	"errors"
	"fmt"
	"time"

	"IndexForecast/internal/model"
)

// ErrInsufficientData is returned when a partition ends up empty.
var ErrInsufficientData = errors.New("insufficient data")

// Filter keeps observations dated strictly after cutoff that have no missing
// raw field and no missing or infinite feature. Order is preserved.
func Filter(obs []model.Observation, cutoff time.Time) []model.Observation {
	out := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if !o.Date.After(cutoff) {
			continue
		}
		if !o.Complete() || !o.Features.Valid() {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Split partitions ascending observations into train (before splitDate) and
// test (on or after splitDate). Both partitions must be non-empty.
func Split(obs []model.Observation, splitDate time.Time) (train, test []model.Observation, err error) {
	for _, o := range obs {
		if o.Date.Before(splitDate) {
			train = append(train, o)
		} else {
			test = append(test, o)
		}
	}
	if len(train) == 0 {
		return nil, nil, fmt.Errorf("%w: no training rows before %s", ErrInsufficientData, splitDate.Format("2006-01-02"))
	}
	if len(test) == 0 {
		return nil, nil, fmt.Errorf("%w: no test rows on or after %s", ErrInsufficientData, splitDate.Format("2006-01-02"))
	}
	return train, test, nil
}

// Design returns the feature matrix and close-price target of obs.
func Design(obs []model.Observation) (x [][]float64, y []float64) {
	x = make([][]float64, len(obs))
	y = make([]float64, len(obs))
	for i, o := range obs {
		x[i] = o.Features.Vector()
		y[i] = o.Close
	}
	return x, y
}
