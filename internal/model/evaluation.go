package model

import "time"

// Evaluation is the outcome of fitting on the train partition and scoring on test.
type Evaluation struct {
	Rows         int // observations left after filtering
	TrainSize    int
	TestSize     int
	TrainEnd     time.Time // last train date
	TestStart    time.Time // first test date
	Intercept    float64
	Coefficients []float64
	Predictions  []float64
	MSE          float64
}
