package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// Accuracy computes the fraction of exactly matching predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// AccuracyLabels computes accuracy over integer label slices.
func AccuracyLabels(yTrue, yPred []int) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("AccuracyLabels", "empty slice")
	}

	if len(yPred) != n {
		return 0, errors.NewDimensionError("AccuracyLabels", n, len(yPred), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// ClassificationError computes the fraction of mismatching predictions,
// i.e. 1 - accuracy.
func ClassificationError(yTrue, yPred []int) (float64, error) {
	acc, err := AccuracyLabels(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}
