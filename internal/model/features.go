package model

import "math"

// FeatureSet holds the trailing-window features derived for one record.
// Zero means "not enough history" for tiers that are not yet available.
type FeatureSet struct {
	AvgClose5    float64
	AvgClose30   float64
	AvgClose365  float64
	AvgVolume5   float64
	AvgVolume365 float64
	StdVolume365 float64
	VolumeRatio  float64
}

// FeatureNames lists the regression inputs in the order returned by Vector.
var FeatureNames = []string{"avg_close_5", "avg_close_30", "avg_close_365", "volume_ratio", "std_volume_365"}

// Vector returns the regression inputs.
func (f FeatureSet) Vector() []float64 {
	return []float64{f.AvgClose5, f.AvgClose30, f.AvgClose365, f.VolumeRatio, f.StdVolume365}
}

// Valid reports whether every feature is a finite number.
func (f FeatureSet) Valid() bool {
	for _, v := range []float64{
		f.AvgClose5, f.AvgClose30, f.AvgClose365,
		f.AvgVolume5, f.AvgVolume365, f.StdVolume365, f.VolumeRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Observation is a record with its derived features attached.
type Observation struct {
	Record
	Features FeatureSet
}
