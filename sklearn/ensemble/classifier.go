package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TiftGolofebitke/smile-sub000/core"
	"github.com/TiftGolofebitke/smile-sub000/core/data"
	"github.com/TiftGolofebitke/smile-sub000/core/model"
	"github.com/TiftGolofebitke/smile-sub000/metrics"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

var _ core.Estimator = (*RandomForestClassifier)(nil)

// RandomForestClassifier is the sklearn-style estimator wrapper around a
// classification Forest. Class labels must be integers 0..k-1.
type RandomForestClassifier struct {
	model.BaseEstimator

	opts    []Option
	nominal []bool

	forest    *Forest
	nFeatures int
	nClasses  int
}

// NewRandomForestClassifier creates an unfitted classifier. The options are
// applied at Fit time on top of an ntrees=100 default.
func NewRandomForestClassifier(opts ...Option) *RandomForestClassifier {
	return &RandomForestClassifier{opts: opts}
}

// SetNominalFeatures marks which columns of X are nominal category codes.
// Nil means all continuous.
func (c *RandomForestClassifier) SetNominalFeatures(nominal []bool) {
	c.nominal = nominal
}

// Fit grows the forest on X and the integer class labels in the n×1 matrix
// y.
func (c *RandomForestClassifier) Fit(X, y mat.Matrix) error {
	ds, err := data.ClassificationFromMatrix(X, y, c.nominal)
	if err != nil {
		return err
	}

	opts := append([]Option{WithNTrees(100)}, c.opts...)
	forest, err := Grow(ds, opts...)
	if err != nil {
		return err
	}

	c.forest = forest
	c.nFeatures = ds.Features()
	c.nClasses = ds.Classes()
	c.SetFitted()
	return nil
}

// Predict returns the predicted class label for each row of X as an n×1
// matrix.
func (c *RandomForestClassifier) Predict(X mat.Matrix) (*mat.Dense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestClassifier", "Predict")
	}
	out, err := c.forest.PredictBatch(X)
	if err != nil {
		return nil, err
	}
	n := len(out)
	return mat.NewDense(n, 1, out), nil
}

// PredictProba returns the n×k matrix of class probabilities, mixing the
// tree posteriors weighted by out-of-bag accuracy.
func (c *RandomForestClassifier) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestClassifier", "PredictProba")
	}
	n, p := X.Dims()
	if p != c.nFeatures {
		return nil, errors.NewDimensionError("RandomForestClassifier.PredictProba", c.nFeatures, p, 1)
	}

	proba := mat.NewDense(n, c.nClasses, nil)
	x := make([]float64, p)
	posteriori := make([]float64, c.nClasses)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			x[j] = X.At(i, j)
		}
		if _, err := c.forest.PredictClass(x, posteriori); err != nil {
			return nil, err
		}
		proba.SetRow(i, posteriori)
	}
	return proba, nil
}

// Score returns the mean accuracy of Predict(X) against the labels in y.
func (c *RandomForestClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(denseColumn(y), denseColumn(pred))
}

// GetFeatureImportances returns the forest's importance sums normalized to
// sum to 1, or nil importances when every split gain was zero.
func (c *RandomForestClassifier) GetFeatureImportances() ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestClassifier", "GetFeatureImportances")
	}
	return normalizeImportance(c.forest.Importance()), nil
}

// OOBError returns the out-of-bag misclassification rate from training.
func (c *RandomForestClassifier) OOBError() (float64, error) {
	if !c.IsFitted() {
		return 0, errors.NewNotFittedError("RandomForestClassifier", "OOBError")
	}
	return c.forest.Error(), nil
}

// Forest returns the underlying engine forest, or nil before Fit.
func (c *RandomForestClassifier) Forest() *Forest { return c.forest }

// normalizeImportance scales importance sums to unit L1 norm. A zero vector
// stays zero.
func normalizeImportance(imp []float64) []float64 {
	var total float64
	for _, v := range imp {
		total += v
	}
	if total > 0 {
		for j := range imp {
			imp[j] /= total
		}
	}
	return imp
}

// denseColumn converts an n×1 matrix into a VecDense.
func denseColumn(m mat.Matrix) *mat.VecDense {
	n, _ := m.Dims()
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
