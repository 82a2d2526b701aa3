package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TiftGolofebitke/smile-sub000/core"
	"github.com/TiftGolofebitke/smile-sub000/core/data"
	"github.com/TiftGolofebitke/smile-sub000/core/model"
	"github.com/TiftGolofebitke/smile-sub000/metrics"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

var _ core.Estimator = (*RandomForestRegressor)(nil)

// RandomForestRegressor is the sklearn-style estimator wrapper around a
// regression Forest.
type RandomForestRegressor struct {
	model.BaseEstimator

	opts    []Option
	nominal []bool

	forest    *Forest
	nFeatures int
}

// NewRandomForestRegressor creates an unfitted regressor. The options are
// applied at Fit time on top of an ntrees=100 default.
func NewRandomForestRegressor(opts ...Option) *RandomForestRegressor {
	return &RandomForestRegressor{opts: opts}
}

// SetNominalFeatures marks which columns of X are nominal category codes.
// Nil means all continuous.
func (r *RandomForestRegressor) SetNominalFeatures(nominal []bool) {
	r.nominal = nominal
}

// Fit grows the forest on X and the n×1 response matrix y.
func (r *RandomForestRegressor) Fit(X, y mat.Matrix) error {
	ds, err := data.RegressionFromMatrix(X, y, r.nominal)
	if err != nil {
		return err
	}

	opts := append([]Option{WithNTrees(100)}, r.opts...)
	forest, err := Grow(ds, opts...)
	if err != nil {
		return err
	}

	r.forest = forest
	r.nFeatures = ds.Features()
	r.SetFitted()
	return nil
}

// Predict returns the mean tree response for each row of X as an n×1
// matrix.
func (r *RandomForestRegressor) Predict(X mat.Matrix) (*mat.Dense, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}
	out, err := r.forest.PredictBatch(X)
	if err != nil {
		return nil, err
	}
	n := len(out)
	return mat.NewDense(n, 1, out), nil
}

// Score returns the coefficient of determination R² of Predict(X) against
// y.
func (r *RandomForestRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(denseColumn(y), denseColumn(pred))
}

// GetFeatureImportances returns the forest's importance sums normalized to
// sum to 1.
func (r *RandomForestRegressor) GetFeatureImportances() ([]float64, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "GetFeatureImportances")
	}
	return normalizeImportance(r.forest.Importance()), nil
}

// OOBError returns the out-of-bag root mean squared error from training.
func (r *RandomForestRegressor) OOBError() (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError("RandomForestRegressor", "OOBError")
	}
	return r.forest.Error(), nil
}

// Forest returns the underlying engine forest, or nil before Fit.
func (r *RandomForestRegressor) Forest() *Forest { return r.forest }
