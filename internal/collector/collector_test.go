package collector

import (
	"errors"
	"testing"
	"time"

	"IndexForecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCollector_LoadSortsAscending(t *testing.T) {
	fetcher := &MockFetcher{Records: []model.Record{
		{Date: day(2015, 12, 7), Close: 3},
		{Date: day(2015, 12, 3), Close: 1},
		{Date: day(2015, 12, 4), Close: 2},
	}}
	series, err := NewCollector(fetcher, "SPX", nil).Load()
	require.NoError(t, err)

	var closes []float64
	for _, r := range series.Records {
		closes = append(closes, r.Close)
	}
	assert.Equal(t, []float64{1, 2, 3}, closes)
}

func TestCollector_LoadRejectsDuplicates(t *testing.T) {
	fetcher := &MockFetcher{Records: []model.Record{
		{Date: day(2015, 12, 4)},
		{Date: day(2015, 12, 3)},
		{Date: day(2015, 12, 4)},
	}}
	_, err := NewCollector(fetcher, "SPX", nil).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateDate))
	assert.Contains(t, err.Error(), "2015-12-04")
}

func TestCollector_Collect(t *testing.T) {
	fetcher := &MockFetcher{Price: 100, Volume: 1000, Days: 400}
	c := NewCollector(fetcher, "SPX", nil)
	series, err := c.Load()
	require.NoError(t, err)

	obs := c.Collect(series)
	require.Len(t, obs, 400)
	assert.Equal(t, model.FeatureSet{}, obs[0].Features)
	assert.Equal(t, 1.0, obs[399].Features.VolumeRatio)
	assert.Equal(t, series.Records[10].Date, obs[10].Date)
}

func TestGenerateBars(t *testing.T) {
	bars := GenerateBars(day(2010, 1, 1), 50, 10, 3)
	require.Len(t, bars, 3)
	assert.Equal(t, day(2010, 1, 3), bars[2].Date)
	assert.Equal(t, 50.0, bars[1].Close)
	assert.True(t, bars[0].Complete())
}

func TestNewMockFetcher(t *testing.T) {
	start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewMockFetcher(start, 400)
	assert.Equal(t, "mock", f.Name())

	series, err := f.FetchHistory("SPX")
	require.NoError(t, err)
	rows, cols := series.Shape()
	assert.Equal(t, 400, rows)
	assert.Equal(t, 7, cols)
	assert.Equal(t, start, series.Records[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 399), series.Records[399].Date)

	for _, r := range series.Records {
		require.True(t, r.Complete())
	}
	assert.NotEqual(t, series.Records[0].Close, series.Records[50].Close)
	assert.NotEqual(t, series.Records[0].Volume, series.Records[50].Volume)

	// same input, same bars
	again, err := NewMockFetcher(start, 400).FetchHistory("SPX")
	require.NoError(t, err)
	assert.Equal(t, series.Records, again.Records)
}
