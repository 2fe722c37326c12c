package calculator

import (
	"math"
	"testing"
	"time"

	"IndexForecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int, closeFn, volumeFn func(i int) float64) []model.Record {
	start := time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)
	records := make([]model.Record, n)
	for i := 0; i < n; i++ {
		c := closeFn(i)
		records[i] = model.Record{
			Date:     start.AddDate(0, 0, i),
			Open:     c,
			High:     c,
			Low:      c,
			Close:    c,
			Volume:   volumeFn(i),
			AdjClose: c,
		}
	}
	return records
}

func linear(i int) float64 { return float64(i + 1) }

func TestDerive_FirstFiveAllZero(t *testing.T) {
	obs := Derive(makeRecords(400, linear, linear))
	require.Len(t, obs, 400)
	for i := 0; i < ShortWindow; i++ {
		assert.Equal(t, model.FeatureSet{}, obs[i].Features, "index %d", i)
	}
}

func TestDerive_ShortTier(t *testing.T) {
	records := makeRecords(400, linear, func(i int) float64 { return float64(10 * (i + 1)) })
	obs := Derive(records)

	for i := ShortWindow; i < MediumWindow; i++ {
		f := obs[i].Features
		// window [i-5, i-1) holds closes i-4 .. i-1 (1-based values)
		want := 0.0
		for j := i - 5; j < i-1; j++ {
			want += records[j].Close
		}
		want /= 4
		assert.InDelta(t, want, f.AvgClose5, 1e-9, "index %d", i)
		assert.InDelta(t, want*10, f.AvgVolume5, 1e-9, "index %d", i)
		assert.Zero(t, f.AvgClose30)
		assert.Zero(t, f.AvgClose365)
		assert.Zero(t, f.AvgVolume365)
		assert.Zero(t, f.StdVolume365)
		assert.Zero(t, f.VolumeRatio)
	}
}

func TestDerive_WindowExcludesPreviousRecord(t *testing.T) {
	// only the record right before index 5 is large; it must not leak in
	records := makeRecords(10, func(i int) float64 {
		if i == 4 {
			return 1000
		}
		return 1
	}, linear)
	obs := Derive(records)
	assert.InDelta(t, 1.0, obs[5].Features.AvgClose5, 1e-12)
}

func TestDerive_MediumTier(t *testing.T) {
	records := makeRecords(400, linear, linear)
	obs := Derive(records)

	f := obs[100].Features
	// closes 71..99 -> mean 85
	assert.InDelta(t, 85.0, f.AvgClose30, 1e-9)
	assert.Zero(t, f.AvgClose365)
	assert.Zero(t, f.VolumeRatio)
}

func TestDerive_LongTier(t *testing.T) {
	records := makeRecords(400, linear, linear)
	obs := Derive(records)

	for _, i := range []int{365, 380, 399} {
		f := obs[i].Features
		// values i-364 .. i-1, i.e. 364 consecutive integers
		lo, hi := float64(i-364), float64(i-1)
		mean := (lo + hi) / 2
		assert.InDelta(t, mean, f.AvgClose365, 1e-9, "index %d", i)
		assert.InDelta(t, mean, f.AvgVolume365, 1e-9, "index %d", i)

		n := 364.0
		wantStd := math.Sqrt(n * (n + 1) / 12)
		assert.InDelta(t, wantStd, f.StdVolume365, 1e-9, "index %d", i)
		assert.InDelta(t, f.AvgVolume5/f.AvgVolume365, f.VolumeRatio, 1e-12, "index %d", i)
		assert.True(t, f.Valid())
	}
}

func TestDerive_ZeroLongVolumeIsInvalid(t *testing.T) {
	obs := Derive(makeRecords(370, linear, func(int) float64 { return 0 }))
	f := obs[366].Features
	assert.True(t, math.IsNaN(f.VolumeRatio))
	assert.False(t, f.Valid())
}

func TestDerive_ConstantSeries(t *testing.T) {
	obs := Derive(makeRecords(400, func(int) float64 { return 100 }, func(int) float64 { return 1000 }))
	for i := LongWindow; i < 400; i++ {
		f := obs[i].Features
		assert.Equal(t, 100.0, f.AvgClose5)
		assert.Equal(t, 100.0, f.AvgClose30)
		assert.Equal(t, 100.0, f.AvgClose365)
		assert.Equal(t, 1000.0, f.AvgVolume5)
		assert.Equal(t, 1000.0, f.AvgVolume365)
		assert.Equal(t, 0.0, f.StdVolume365)
		assert.Equal(t, 1.0, f.VolumeRatio)
	}
}

func TestDerive_MissingVolumeSkippedByWindows(t *testing.T) {
	records := makeRecords(400, func(int) float64 { return 100 }, func(int) float64 { return 1000 })
	records[370].Volume = math.NaN()
	obs := Derive(records)

	for i := 371; i < 400; i++ {
		assert.True(t, obs[i].Features.Valid(), "index %d", i)
		assert.Equal(t, 1000.0, obs[i].Features.AvgVolume5, "index %d", i)
	}
	assert.False(t, obs[370].Complete())
}

func TestDerive_EmptyInput(t *testing.T) {
	assert.Empty(t, Derive(nil))
}
