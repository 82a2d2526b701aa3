// Package model provides the base types shared by all estimators.
package model

// EstimatorState tracks whether a model has been fitted.
type EstimatorState int

const (
	// NotFitted is the state of a freshly constructed model.
	NotFitted EstimatorState = iota
	// Fitted is the state after a successful Fit.
	Fitted
)

// BaseEstimator is embedded by every estimator to carry fitted-state
// bookkeeping.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
