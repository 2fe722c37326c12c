package model

import (
	"math"
	"time"
)

// Record is a single daily bar of the index history. Missing cells are NaN.
type Record struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	AdjClose float64
}

// Complete reports whether every numeric field of the record is present.
func (r Record) Complete() bool {
	for _, v := range []float64{r.Open, r.High, r.Low, r.Close, r.Volume, r.AdjClose} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Series holds a loaded price history together with the source header.
type Series struct {
	Symbol  string
	Columns []string
	Records []Record
}

// Shape returns the (rows, columns) dimensions of the series as loaded.
func (s *Series) Shape() (rows, cols int) {
	return len(s.Records), len(s.Columns)
}
