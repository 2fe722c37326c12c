package collector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"IndexForecast/internal/model"

	"github.com/xuri/excelize/v2"
)

// XLSXFetcher implements Fetcher over one sheet of an Excel workbook.
type XLSXFetcher struct {
	Path  string
	Sheet string // empty means the first sheet
}

// NewXLSXFetcher creates a workbook fetcher.
func NewXLSXFetcher(path, sheet string) *XLSXFetcher {
	return &XLSXFetcher{Path: path, Sheet: sheet}
}

func (f *XLSXFetcher) Name() string { return "xlsx" }

// FetchHistory reads the whole sheet and closes the workbook before returning.
func (f *XLSXFetcher) FetchHistory(symbol string) (*model.Series, error) {
	wb, err := excelize.OpenFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer wb.Close()

	sheet := f.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("parse %s: no sheets", f.Path)
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	series, err := parseSheet(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	series.Symbol = symbol
	return series, nil
}

func parseSheet(rows [][]string) (*model.Series, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty input")
	}
	header, idx, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	series := &model.Series{Columns: header}
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec, err := parseRow(row, idx, parseSheetDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		series.Records = append(series.Records, rec)
	}
	return series, nil
}

// parseSheetDate accepts text dates as well as Excel date serials.
func parseSheetDate(s string) (time.Time, error) {
	if t, err := parseDate(s); err == nil {
		return t, nil
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
