package calculator

import (
	"errors"
	"math"

	"IndexForecast/internal/model"

	"gonum.org/v1/gonum/stat"
)

// windowBounds returns [i-w, i-1) for index i and length w: w-1 trailing
// values, the value at i-1 is not part of the window.
func windowBounds(i, w int) (start, end int, err error) {
	if w < 2 {
		return 0, 0, errors.New("window length must be at least 2")
	}
	if i < w {
		return 0, 0, errors.New("not enough history for window")
	}
	return i - w, i - 1, nil
}

// WindowMean returns the mean of values[i-w:i-1], skipping NaN entries.
// An all-NaN window yields NaN.
func WindowMean(values []float64, i, w int) (float64, error) {
	start, end, err := windowBounds(i, w)
	if err != nil {
		return 0, err
	}
	if end > len(values) {
		return 0, errors.New("window exceeds series length")
	}
	present := dropNaN(values[start:end])
	if len(present) == 0 {
		return math.NaN(), nil
	}
	return stat.Mean(present, nil), nil
}

// WindowStdDev returns the sample standard deviation (n-1 denominator) of
// values[i-w:i-1], skipping NaN entries. Fewer than two values yield NaN.
func WindowStdDev(values []float64, i, w int) (float64, error) {
	start, end, err := windowBounds(i, w)
	if err != nil {
		return 0, err
	}
	if end > len(values) {
		return 0, errors.New("window exceeds series length")
	}
	present := dropNaN(values[start:end])
	if len(present) < 2 {
		return math.NaN(), nil
	}
	return stat.StdDev(present, nil), nil
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func extractCloses(records []model.Record) []float64 {
	closes := make([]float64, len(records))
	for i, r := range records {
		closes[i] = r.Close
	}
	return closes
}

func extractVolumes(records []model.Record) []float64 {
	volumes := make([]float64, len(records))
	for i, r := range records {
		volumes[i] = r.Volume
	}
	return volumes
}
