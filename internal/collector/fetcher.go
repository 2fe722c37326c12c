package collector

import "IndexForecast/internal/model"

// Fetcher defines the interface for loading a daily price history.
type Fetcher interface {
	FetchHistory(symbol string) (*model.Series, error)
	Name() string
}

// Columns every source must provide.
var requiredColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume", "Adj Close"}
