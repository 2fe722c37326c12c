package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	errFactorizationFail = errors.New("svd factorization failed")
)

// LinearModel is an ordinary least-squares fit with an intercept.
type LinearModel struct {
	Intercept    float64
	Coefficients []float64
}

// Fit solves min |y - b0 - X b|. Columns are centered and the minimum-norm
// solution is taken from a thin SVD, so rank-deficient designs (constant
// columns, collinear features) still produce a model.
func Fit(x [][]float64, y []float64) (*LinearModel, error) {
	n, p, err := dims(x)
	if err != nil {
		return nil, err
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: %d rows, %d targets", ErrDimensionMismatch, n, len(y))
	}

	yMean := stat.Mean(y, nil)
	if p == 0 {
		return &LinearModel{Intercept: yMean}, nil
	}

	xMean := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			col[i] = x[i][j]
		}
		xMean[j] = stat.Mean(col, nil)
	}

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			a.Set(i, j, x[i][j]-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errFactorizationFail
	}

	coef := make([]float64, p)
	eps := math.Nextafter(1, 2) - 1
	if rank := svd.Rank(eps * float64(max(n, p))); rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, b, rank)
		for j := 0; j < p; j++ {
			coef[j] = sol.AtVec(j)
		}
	}

	return &LinearModel{
		Intercept:    yMean - floats.Dot(xMean, coef),
		Coefficients: coef,
	}, nil
}

// Predict returns the fitted value of every row of x.
func (m *LinearModel) Predict(x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("%w: row %d has %d features, model has %d",
				ErrDimensionMismatch, i, len(row), len(m.Coefficients))
		}
		out[i] = m.Intercept
		if len(row) > 0 {
			out[i] += floats.Dot(m.Coefficients, row)
		}
	}
	return out, nil
}

func dims(x [][]float64) (n, p int, err error) {
	n = len(x)
	if n == 0 {
		return 0, 0, ErrEmptyInput
	}
	p = len(x[0])
	for i, row := range x {
		if len(row) != p {
			return 0, 0, fmt.Errorf("%w: row %d has %d features, expected %d", ErrDimensionMismatch, i, len(row), p)
		}
	}
	return n, p, nil
}
