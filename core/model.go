// Package core defines the estimator contracts shared across the library.
package core

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained on a feature matrix and a target.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor is a fitted model that predicts one value per row of X.
type Predictor interface {
	Predict(X mat.Matrix) (*mat.Dense, error)
}

// Scorer evaluates a fitted model against a labeled set: accuracy for
// classifiers, R² for regressors.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Estimator is the full supervised-model surface.
type Estimator interface {
	Fitter
	Predictor
	Scorer
}
