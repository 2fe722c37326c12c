package regression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_RecoversExactPlane(t *testing.T) {
	// y = 3 + 2*x1 - x2
	x := [][]float64{{0, 0}, {1, 0}, {0, 1}, {2, 3}, {5, 1}, {4, 4}}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 3 + 2*row[0] - row[1]
	}

	m, err := Fit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3, m.Intercept, 1e-9)
	require.Len(t, m.Coefficients, 2)
	assert.InDelta(t, 2, m.Coefficients[0], 1e-9)
	assert.InDelta(t, -1, m.Coefficients[1], 1e-9)

	pred, err := m.Predict([][]float64{{10, 10}})
	require.NoError(t, err)
	assert.InDelta(t, 13, pred[0], 1e-9)
}

func TestFit_LeastSquaresLine(t *testing.T) {
	// points (0,1) (1,3) (2,2): slope 0.5, intercept 1.5
	m, err := Fit([][]float64{{0}, {1}, {2}}, []float64{1, 3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, m.Intercept, 1e-12)
	assert.InDelta(t, 0.5, m.Coefficients[0], 1e-12)
}

func TestFit_ConstantDesign(t *testing.T) {
	x := make([][]float64, 20)
	y := make([]float64, 20)
	for i := range x {
		x[i] = []float64{100, 100, 100, 1, 0}
		y[i] = 100
	}
	m, err := Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, m.Coefficients)
	assert.InDelta(t, 100, m.Intercept, 1e-12)

	pred, err := m.Predict(x[:3])
	require.NoError(t, err)
	for _, p := range pred {
		assert.InDelta(t, 100, p, 1e-12)
	}
}

func TestFit_CollinearColumns(t *testing.T) {
	// second column duplicates the first
	x := [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	y := []float64{2, 4, 6, 8}
	m, err := Fit(x, y)
	require.NoError(t, err)

	pred, err := m.Predict(x)
	require.NoError(t, err)
	for i := range y {
		assert.InDelta(t, y[i], pred[i], 1e-9)
	}
	// minimum-norm solution splits the weight evenly
	assert.InDelta(t, m.Coefficients[0], m.Coefficients[1], 1e-9)
}

func TestFit_Errors(t *testing.T) {
	_, err := Fit(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = Fit([][]float64{{1}, {2}}, []float64{1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = Fit([][]float64{{1, 2}, {2}}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestPredict_DimensionMismatch(t *testing.T) {
	m := &LinearModel{Intercept: 1, Coefficients: []float64{1, 2}}
	_, err := m.Predict([][]float64{{1}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestMeanSquaredError(t *testing.T) {
	mse, err := MeanSquaredError([]float64{1, 2, 3}, []float64{1, 4, 0})
	require.NoError(t, err)
	assert.InDelta(t, 13.0/3.0, mse, 1e-12)

	_, err = MeanSquaredError(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = MeanSquaredError([]float64{1}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}
