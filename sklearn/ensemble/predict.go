package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TiftGolofebitke/smile-sub000/core/parallel"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// Predict returns the forest's prediction for a single row: the majority
// vote class index for classification, the mean of the tree responses for
// regression.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.p {
		return 0, errors.NewDimensionError("ensemble.Predict", f.p, len(x), 1)
	}

	if f.k == 0 {
		var sum float64
		for _, tr := range f.trees {
			sum += tr.Predict(x)
		}
		return sum / float64(len(f.trees)), nil
	}

	votes := make([]float64, f.k)
	for _, tr := range f.trees {
		votes[int(tr.Predict(x))]++
	}
	return float64(argmax(votes)), nil
}

// PredictClass returns the predicted class of x using the tree posteriors
// weighted by each tree's out-of-bag accuracy. When posteriori is non-nil it
// must have length k and receives the normalized weighted class
// distribution.
func (f *Forest) PredictClass(x []float64, posteriori []float64) (int, error) {
	if f.k == 0 {
		return 0, errors.NewValueError("ensemble.PredictClass", "not a classification forest")
	}
	if len(x) != f.p {
		return 0, errors.NewDimensionError("ensemble.PredictClass", f.p, len(x), 1)
	}
	if posteriori != nil && len(posteriori) != f.k {
		return 0, errors.NewDimensionError("ensemble.PredictClass", f.k, len(posteriori), 0)
	}

	mixed := make([]float64, f.k)
	leaf := make([]float64, f.k)
	var total float64
	for i, tr := range f.trees {
		if _, err := tr.PredictClass(x, leaf); err != nil {
			return 0, err
		}
		w := f.weights[i]
		for j, pj := range leaf {
			mixed[j] += w * pj
		}
		total += w
	}
	if total > 0 {
		for j := range mixed {
			mixed[j] /= total
		}
	}
	if posteriori != nil {
		copy(posteriori, mixed)
	}
	return argmax(mixed), nil
}

// PredictBatch predicts every row of X, splitting the rows across CPU
// cores. Small batches run sequentially.
func (f *Forest) PredictBatch(X mat.Matrix) ([]float64, error) {
	n, p := X.Dims()
	if p != f.p {
		return nil, errors.NewDimensionError("ensemble.PredictBatch", f.p, p, 1)
	}

	out := make([]float64, n)
	parallel.ParallelizeWithThreshold(n, 64, func(start, end int) {
		x := make([]float64, f.p)
		for i := start; i < end; i++ {
			for j := 0; j < f.p; j++ {
				x[j] = X.At(i, j)
			}
			// x always has f.p entries, so Predict cannot fail here
			out[i], _ = f.Predict(x)
		}
	})
	return out, nil
}

// argmax returns the index of the largest value, preferring the lowest
// index on ties.
func argmax(v []float64) int {
	best := 0
	for j := 1; j < len(v); j++ {
		if v[j] > v[best] {
			best = j
		}
	}
	return best
}
