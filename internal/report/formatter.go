package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"IndexForecast/internal/model"

	"github.com/olekukonko/tablewriter"
)

// previewHeader lists the record fields shown by FormatPreview.
var previewHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume", "Adj Close"}

// FormatShape renders the loaded dimensions as "(rows, cols)".
func FormatShape(series *model.Series) string {
	rows, cols := series.Shape()
	return fmt.Sprintf("(%d, %d)", rows, cols)
}

// FormatPreview renders the first n records as a table.
func FormatPreview(series *model.Series, n int) (string, error) {
	if n > len(series.Records) {
		n = len(series.Records)
	}
	if n <= 0 {
		return "", nil
	}

	var b bytes.Buffer
	table := tablewriter.NewWriter(&b)
	table.Header(previewHeader)
	for i, r := range series.Records[:n] {
		err := table.Append([]string{
			r.Date.Format("2006-01-02"),
			formatCell(r.Open),
			formatCell(r.High),
			formatCell(r.Low),
			formatCell(r.Close),
			formatCell(r.Volume),
			formatCell(r.AdjClose),
		})
		if err != nil {
			return "", fmt.Errorf("preview row %d: %w", i, err)
		}
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return b.String(), nil
}

// FormatError renders the mean squared error as a plain number.
func FormatError(mse float64) string {
	return strconv.FormatFloat(mse, 'f', -1, 64)
}

// FormatEvaluation summarizes a fitted model for diagnostics.
func FormatEvaluation(ev *model.Evaluation) string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("rows=%d train=%d test=%d", ev.Rows, ev.TrainSize, ev.TestSize))
	if !ev.TrainEnd.IsZero() {
		b.WriteString(fmt.Sprintf(" train_end=%s test_start=%s",
			ev.TrainEnd.Format("2006-01-02"), ev.TestStart.Format("2006-01-02")))
	}
	b.WriteString(fmt.Sprintf(" intercept=%.6g", ev.Intercept))
	for i, c := range ev.Coefficients {
		name := fmt.Sprintf("x%d", i)
		if i < len(model.FeatureNames) {
			name = model.FeatureNames[i]
		}
		b.WriteString(fmt.Sprintf(" %s=%.6g", name, c))
	}
	return b.String()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
