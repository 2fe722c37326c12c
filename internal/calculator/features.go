package calculator

import (
	"math"

	"IndexForecast/internal/model"
)

// Trailing window lengths, in records.
const (
	ShortWindow  = 5
	MediumWindow = 30
	LongWindow   = 365
)

// Derive computes the feature set of every record in one forward pass.
// records must be sorted ascending by date. Only records before index i
// contribute to the features of record i.
//
// Tiers:
//
//	i < 5         all features 0
//	5 <= i < 30   5-day close and volume averages
//	30 <= i < 365 adds the 30-day close average
//	i >= 365      adds 365-day close/volume averages, volume std and ratio
func Derive(records []model.Record) []model.Observation {
	closes := extractCloses(records)
	volumes := extractVolumes(records)

	out := make([]model.Observation, len(records))
	for i, r := range records {
		out[i] = model.Observation{Record: r, Features: deriveAt(closes, volumes, i)}
	}
	return out
}

func deriveAt(closes, volumes []float64, i int) model.FeatureSet {
	var f model.FeatureSet
	if i < ShortWindow {
		return f
	}

	f.AvgClose5 = meanOrNaN(closes, i, ShortWindow)
	f.AvgVolume5 = meanOrNaN(volumes, i, ShortWindow)
	if i < MediumWindow {
		return f
	}

	f.AvgClose30 = meanOrNaN(closes, i, MediumWindow)
	if i < LongWindow {
		return f
	}

	f.AvgClose365 = meanOrNaN(closes, i, LongWindow)
	f.AvgVolume365 = meanOrNaN(volumes, i, LongWindow)
	std, err := WindowStdDev(volumes, i, LongWindow)
	if err != nil {
		std = math.NaN()
	}
	f.StdVolume365 = std
	f.VolumeRatio = ratio(f.AvgVolume5, f.AvgVolume365)
	return f
}

// meanOrNaN marks the feature missing when the window cannot be evaluated.
func meanOrNaN(values []float64, i, w int) float64 {
	m, err := WindowMean(values, i, w)
	if err != nil {
		return math.NaN()
	}
	return m
}

// ratio returns a/b, or NaN when b is zero.
func ratio(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a / b
}
