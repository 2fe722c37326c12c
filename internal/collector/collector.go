package collector

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"IndexForecast/internal/calculator"
	"IndexForecast/internal/model"

	"go.uber.org/zap"
)

// ErrDuplicateDate is returned when two records share the same date.
var ErrDuplicateDate = errors.New("duplicate date")

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Volume  float64
	Days    int
	Start   time.Time
	Records []model.Record
}

// NewMockFetcher creates a fetcher generating days daily bars from start,
// with a mild deterministic oscillation in price and volume.
func NewMockFetcher(start time.Time, days int) *MockFetcher {
	records := GenerateBars(start, 100, 1e6, days)
	for i := range records {
		c := 100 + 5*math.Sin(float64(i)/20) + 0.02*float64(i)
		records[i].Open, records[i].High, records[i].Low = c, c+1, c-1
		records[i].Close, records[i].AdjClose = c, c
		records[i].Volume = 1e6 + 1e5*math.Cos(float64(i)/15)
	}
	return &MockFetcher{Price: 100, Volume: 1e6, Days: days, Start: start, Records: records}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(symbol string) (*model.Series, error) {
	records := m.Records
	if records == nil {
		records = GenerateBars(m.Start, m.Price, m.Volume, m.Days)
	}
	return &model.Series{
		Symbol:  symbol,
		Columns: append([]string(nil), requiredColumns...),
		Records: records,
	}, nil
}

// GenerateBars builds count consecutive daily bars with constant price and volume.
func GenerateBars(start time.Time, price, volume float64, count int) []model.Record {
	if start.IsZero() {
		start = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	bars := make([]model.Record, count)
	for i := 0; i < count; i++ {
		bars[i] = model.Record{
			Date:     start.AddDate(0, 0, i),
			Open:     price,
			High:     price,
			Low:      price,
			Close:    price,
			Volume:   volume,
			AdjClose: price,
		}
	}
	return bars
}

// Collector orchestrates history loading and feature derivation.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Logger  *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Fetcher: fetcher, Symbol: symbol, Logger: logger}
}

// Load fetches the history and sorts it ascending by date.
// Duplicate dates are rejected.
func (c *Collector) Load() (*model.Series, error) {
	series, err := c.Fetcher.FetchHistory(c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if err := SortByDate(series.Records); err != nil {
		return nil, err
	}
	rows, cols := series.Shape()
	c.Logger.Info("history loaded",
		zap.String("source", c.Fetcher.Name()),
		zap.String("symbol", c.Symbol),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
	)
	return series, nil
}

// Collect derives the feature set for every record of a loaded series.
func (c *Collector) Collect(series *model.Series) []model.Observation {
	obs := calculator.Derive(series.Records)
	c.Logger.Debug("features derived", zap.Int("observations", len(obs)))
	return obs
}

// SortByDate orders records ascending in place and rejects duplicate dates.
func SortByDate(records []model.Record) error {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	for i := 1; i < len(records); i++ {
		if records[i].Date.Equal(records[i-1].Date) {
			return fmt.Errorf("%w: %s", ErrDuplicateDate, records[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}
