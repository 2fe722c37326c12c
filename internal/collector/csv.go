package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"IndexForecast/internal/model"
)

// ErrMissingColumn is returned when the input header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Cells treated as missing values.
var missingCells = map[string]bool{
	"":     true,
	"NaN":  true,
	"nan":  true,
	"NA":   true,
	"N/A":  true,
	"null": true,
	"-":    true,
}

// CSVFetcher implements Fetcher over a delimited text file.
type CSVFetcher struct {
	Path  string
	Comma rune
}

// NewCSVFetcher creates a comma-separated file fetcher.
func NewCSVFetcher(path string) *CSVFetcher {
	return &CSVFetcher{Path: path, Comma: ','}
}

func (f *CSVFetcher) Name() string { return "csv" }

// FetchHistory reads the whole file into memory and closes it before returning.
func (f *CSVFetcher) FetchHistory(symbol string) (*model.Series, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	series, err := ParseCSV(file, f.Comma)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	series.Symbol = symbol
	return series, nil
}

// ParseCSV decodes a header row followed by daily bars. Row order is preserved.
func ParseCSV(r io.Reader, comma rune) (*model.Series, error) {
	reader := csv.NewReader(r)
	if comma != 0 {
		reader.Comma = comma
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header, idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	series := &model.Series{Columns: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, idx, parseDate)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		series.Records = append(series.Records, rec)
	}
	return series, nil
}

// indexHeader cleans the header cells and maps each column name to its position.
func indexHeader(header []string) ([]string, map[string]int, error) {
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return header, idx, nil
}

// cell returns the value at i, or "" when the row is shorter.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseRow(row []string, idx map[string]int, dateOf func(string) (time.Time, error)) (model.Record, error) {
	var rec model.Record

	date, err := dateOf(cell(row, idx["Date"]))
	if err != nil {
		return rec, err
	}
	rec.Date = date

	fields := []struct {
		name string
		dst  *float64
	}{
		{"Open", &rec.Open},
		{"High", &rec.High},
		{"Low", &rec.Low},
		{"Close", &rec.Close},
		{"Volume", &rec.Volume},
		{"Adj Close", &rec.AdjClose},
	}
	for _, fld := range fields {
		v, err := parseNumber(cell(row, idx[fld.name]))
		if err != nil {
			return rec, fmt.Errorf("column %s: %w", fld.name, err)
		}
		*fld.dst = v
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if missingCells[s] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable number %q", s)
	}
	return v, nil
}
