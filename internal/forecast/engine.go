package forecast

import (
	"fmt"
	"time"

	"IndexForecast/internal/dataset"
	"IndexForecast/internal/model"
	"IndexForecast/internal/regression"

	"go.uber.org/zap"
)

// Predictor is a fitted model that maps feature rows to close prices.
type Predictor interface {
	Predict(x [][]float64) ([]float64, error)
}

// Trainer fits a Predictor on a feature matrix and target.
type Trainer interface {
	Fit(x [][]float64, y []float64) (Predictor, error)
}

// OLSTrainer fits ordinary least squares via the regression package.
type OLSTrainer struct{}

func (OLSTrainer) Fit(x [][]float64, y []float64) (Predictor, error) {
	m, err := regression.Fit(x, y)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Options are the date boundaries of an evaluation.
type Options struct {
	HistoryCutoff time.Time // rows on or before this date are dropped
	SplitDate     time.Time // first date of the test partition
}

// DefaultOptions returns the boundaries used for the S&P 500 history.
func DefaultOptions() Options {
	return Options{
		HistoryCutoff: time.Date(1951, 1, 2, 0, 0, 0, 0, time.UTC),
		SplitDate:     time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Engine fits on the train partition and scores on the test partition.
type Engine struct {
	Trainer Trainer
	Options Options
	Logger  *zap.Logger
}

// NewEngine creates an Engine using the least-squares trainer.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Trainer: OLSTrainer{}, Options: opts, Logger: logger}
}

// Evaluate filters, splits, fits and scores obs, which must be in ascending date order.
func (e *Engine) Evaluate(obs []model.Observation) (*model.Evaluation, error) {
	cleaned := dataset.Filter(obs, e.Options.HistoryCutoff)
	e.Logger.Info("dataset filtered",
		zap.Int("input", len(obs)),
		zap.Int("kept", len(cleaned)),
		zap.Time("cutoff", e.Options.HistoryCutoff),
	)

	train, test, err := dataset.Split(cleaned, e.Options.SplitDate)
	if err != nil {
		return nil, err
	}

	trainX, trainY := dataset.Design(train)
	testX, testY := dataset.Design(test)

	predictor, err := e.Trainer.Fit(trainX, trainY)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	predictions, err := predictor.Predict(testX)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	mse, err := regression.MeanSquaredError(testY, predictions)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	ev := &model.Evaluation{
		Rows:        len(cleaned),
		TrainSize:   len(train),
		TestSize:    len(test),
		TrainEnd:    train[len(train)-1].Date,
		TestStart:   test[0].Date,
		Predictions: predictions,
		MSE:         mse,
	}
	if lm, ok := predictor.(*regression.LinearModel); ok {
		ev.Intercept = lm.Intercept
		ev.Coefficients = lm.Coefficients
	}

	e.Logger.Info("evaluation complete",
		zap.Int("train", ev.TrainSize),
		zap.Int("test", ev.TestSize),
		zap.Float64("mse", ev.MSE),
	)
	return ev, nil
}
