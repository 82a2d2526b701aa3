package data

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// ColumnsFromMatrix converts a row-major gonum matrix into feature columns.
// nominal marks which columns hold category codes; pass nil for all
// continuous. Category counts are inferred from the largest code present.
func ColumnsFromMatrix(X mat.Matrix, nominal []bool) ([]Column, error) {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return nil, errors.NewModelError("data.ColumnsFromMatrix", "empty data", errors.ErrEmptyData)
	}
	if nominal != nil && len(nominal) != p {
		return nil, errors.NewDimensionError("data.ColumnsFromMatrix", p, len(nominal), 1)
	}

	columns := make([]Column, p)
	for j := 0; j < p; j++ {
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			values[i] = X.At(i, j)
		}
		columns[j].Values = values
		if nominal != nil && nominal[j] {
			columns[j].Nominal = true
			maxCode := 0
			for _, v := range values {
				if int(v) > maxCode {
					maxCode = int(v)
				}
			}
			columns[j].Categories = maxCode + 1
		}
	}
	return columns, nil
}

// ClassificationFromMatrix builds a classification dataset from a gonum
// feature matrix and an n×1 label matrix. Labels must be whole numbers.
func ClassificationFromMatrix(X, y mat.Matrix, nominal []bool) (*Dataset, error) {
	n, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != n {
		return nil, errors.NewDimensionError("data.ClassificationFromMatrix", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewValueError("data.ClassificationFromMatrix",
			"y must be a column vector (n×1 matrix)")
	}

	labels := make([]int, n)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		label := int(v)
		if float64(label) != v {
			return nil, errors.NewValueError("data.ClassificationFromMatrix",
				"class labels must be whole numbers")
		}
		labels[i] = label
	}

	columns, err := ColumnsFromMatrix(X, nominal)
	if err != nil {
		return nil, err
	}
	return NewClassification(columns, labels)
}

// RegressionFromMatrix builds a regression dataset from a gonum feature
// matrix and an n×1 target matrix.
func RegressionFromMatrix(X, y mat.Matrix, nominal []bool) (*Dataset, error) {
	n, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != n {
		return nil, errors.NewDimensionError("data.RegressionFromMatrix", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewValueError("data.RegressionFromMatrix",
			"y must be a column vector (n×1 matrix)")
	}

	targets := make([]float64, n)
	for i := 0; i < n; i++ {
		targets[i] = y.At(i, 0)
	}

	columns, err := ColumnsFromMatrix(X, nominal)
	if err != nil {
		return nil, err
	}
	return NewRegression(columns, targets)
}
