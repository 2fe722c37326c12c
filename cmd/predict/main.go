package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"IndexForecast/internal/collector"
	"IndexForecast/internal/config"
	"IndexForecast/internal/forecast"
	"IndexForecast/internal/logger"
	"IndexForecast/internal/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	defer zl.Sync()
	zl = zl.With(zap.String("run_id", uuid.NewString()))

	if err := run(cfg, zl, os.Stdout); err != nil {
		zl.Fatal("prediction failed", zap.Error(err))
	}
}

// run executes one load, derive, fit and score pass, writing results to out.
func run(cfg *config.Config, zl *zap.Logger, out io.Writer) error {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	zl.Info("data source", zap.String("name", fetcher.Name()))

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, zl)
	series, err := col.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	fmt.Fprintln(out, report.FormatShape(series))
	preview, err := report.FormatPreview(series, cfg.Report.PreviewRows)
	if err != nil {
		return err
	}
	fmt.Fprint(out, preview)

	opts, err := cfg.ForecastOptions()
	if err != nil {
		return err
	}
	engine := forecast.NewEngine(opts, zl)

	ev, err := engine.Evaluate(col.Collect(series))
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	zl.Debug("model summary", zap.String("evaluation", report.FormatEvaluation(ev)))

	fmt.Fprintln(out, report.FormatError(ev.MSE))
	return nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Kind {
	case "csv":
		return collector.NewCSVFetcher(cfg.DataSource.InputPath), nil
	case "xlsx":
		return collector.NewXLSXFetcher(cfg.DataSource.InputPath, cfg.DataSource.Sheet), nil
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case "mock":
		// spans the default split date
		return collector.NewMockFetcher(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), 2000), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource.Kind)
	}
}
