package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"IndexForecast/internal/forecast"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DateLayout is the format of every date in the config file.
const DateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Kind      string `yaml:"kind" validate:"oneof=csv xlsx yahoo mock"`
		InputPath string `yaml:"input_path"` // csv and xlsx only
		Sheet     string `yaml:"sheet"` // xlsx only; empty means the first sheet
		Symbol    string `yaml:"symbol" validate:"required"`
	} `yaml:"data_source"`
	Split struct {
		HistoryCutoff string `yaml:"history_cutoff" validate:"datetime=2006-01-02"`
		SplitDate     string `yaml:"split_date" validate:"datetime=2006-01-02"`
	} `yaml:"split"`
	Report struct {
		PreviewRows int `yaml:"preview_rows" validate:"min=0"`
	} `yaml:"report"`
	Log   LogConfig `yaml:"log"`
	Proxy string    `yaml:"proxy"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=json console"`
	OutputFile string `yaml:"output_file"` // rotated log file (optional)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// preset so an explicit value, including 0, is kept for Validate
	cfg.Report.PreviewRows = 5

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Kind = v
	}
	if v := os.Getenv("INPUT_PATH"); v != "" {
		cfg.DataSource.InputPath = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HISTORY_CUTOFF"); v != "" {
		cfg.Split.HistoryCutoff = v
	}
	if v := os.Getenv("SPLIT_DATE"); v != "" {
		cfg.Split.SplitDate = v
	}
	if v := os.Getenv("PREVIEW_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PREVIEW_ROWS: %w", err)
		}
		cfg.Report.PreviewRows = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.OutputFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Kind == "" {
		cfg.DataSource.Kind = "csv"
	}
	if cfg.DataSource.InputPath == "" {
		cfg.DataSource.InputPath = "sphist.csv"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SPX"
	}
	defaults := forecast.DefaultOptions()
	if cfg.Split.HistoryCutoff == "" {
		cfg.Split.HistoryCutoff = defaults.HistoryCutoff.Format(DateLayout)
	}
	if cfg.Split.SplitDate == "" {
		cfg.Split.SplitDate = defaults.SplitDate.Format(DateLayout)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key paths instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.DataSource.Kind {
	case "csv", "xlsx":
		if c.DataSource.InputPath == "" {
			return fmt.Errorf("data_source.input_path is required for %s", c.DataSource.Kind)
		}
	}
	cutoff, err := c.HistoryCutoff()
	if err != nil {
		return err
	}
	split, err := c.SplitDate()
	if err != nil {
		return err
	}
	if !cutoff.Before(split) {
		return fmt.Errorf("split.history_cutoff %s must be before split.split_date %s",
			c.Split.HistoryCutoff, c.Split.SplitDate)
	}
	return nil
}

// HistoryCutoff returns the parsed split.history_cutoff.
func (c *Config) HistoryCutoff() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.Split.HistoryCutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("split.history_cutoff: %w", err)
	}
	return t, nil
}

// SplitDate returns the parsed split.split_date.
func (c *Config) SplitDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.Split.SplitDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("split.split_date: %w", err)
	}
	return t, nil
}

// ForecastOptions returns the parsed evaluation boundaries.
func (c *Config) ForecastOptions() (forecast.Options, error) {
	cutoff, err := c.HistoryCutoff()
	if err != nil {
		return forecast.Options{}, err
	}
	split, err := c.SplitDate()
	if err != nil {
		return forecast.Options{}, err
	}
	return forecast.Options{HistoryCutoff: cutoff, SplitDate: split}, nil
}
