package ensemble

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	smileErrors "github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

func boundaryMatrices(n int, seed int64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.Float64()
		x1 := rng.Float64()
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		if x0+x1 > 1 {
			y.Set(i, 0, 1)
		}
	}
	return X, y
}

func TestClassifierNotFitted(t *testing.T) {
	clf := NewRandomForestClassifier()
	X := mat.NewDense(2, 2, []float64{0, 0, 1, 1})

	var nfe *smileErrors.NotFittedError

	_, err := clf.Predict(X)
	require.Error(t, err)
	assert.ErrorAs(t, err, &nfe)

	_, err = clf.PredictProba(X)
	assert.Error(t, err)
	_, err = clf.GetFeatureImportances()
	assert.Error(t, err)
	_, err = clf.OOBError()
	assert.Error(t, err)
}

func TestClassifierFitPredict(t *testing.T) {
	X, y := boundaryMatrices(300, 42)

	clf := NewRandomForestClassifier(WithNTrees(50), WithSeed(1))
	require.NoError(t, clf.Fit(X, y))
	require.True(t, clf.IsFitted())

	score, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.95)

	oob, err := clf.OOBError()
	require.NoError(t, err)
	assert.Less(t, oob, 0.12)

	proba, err := clf.PredictProba(X)
	require.NoError(t, err)
	rows, cols := proba.Dims()
	assert.Equal(t, 300, rows)
	assert.Equal(t, 2, cols)
	for i := 0; i < rows; i++ {
		assert.InDelta(t, 1.0, proba.At(i, 0)+proba.At(i, 1), 1e-9, "row %d", i)
	}

	imp, err := clf.GetFeatureImportances()
	require.NoError(t, err)
	var sum float64
	for _, v := range imp {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	bad := mat.NewDense(2, 5, nil)
	_, err = clf.Predict(bad)
	require.Error(t, err)
	var derr *smileErrors.DimensionError
	assert.ErrorAs(t, err, &derr)
}

func TestClassifierRejectsNonIntegerLabels(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{0, 0.5, 1, 1})

	clf := NewRandomForestClassifier(WithNTrees(3))
	assert.Error(t, clf.Fit(X, y))
}

func TestRegressorFitPredict(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	n := 300
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.Float64()
		X.Set(i, 0, x0)
		X.Set(i, 1, rng.Float64())
		y.Set(i, 0, x0)
	}

	reg := NewRandomForestRegressor(WithNTrees(50), WithMtry(2), WithSeed(5))
	require.NoError(t, reg.Fit(X, y))

	score, err := reg.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.9)

	imp, err := reg.GetFeatureImportances()
	require.NoError(t, err)
	assert.Greater(t, imp[0], imp[1])

	pred, err := reg.Predict(X)
	require.NoError(t, err)
	rows, cols := pred.Dims()
	assert.Equal(t, n, rows)
	assert.Equal(t, 1, cols)
}

func TestRegressorNotFitted(t *testing.T) {
	reg := NewRandomForestRegressor()
	_, err := reg.Predict(mat.NewDense(1, 1, []float64{0}))
	require.Error(t, err)
	var nfe *smileErrors.NotFittedError
	assert.ErrorAs(t, err, &nfe)
}

func TestNominalFeaturesRoundTrip(t *testing.T) {
	// class = category parity; a nominal column must carry the signal
	n := 120
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		c := i % 4
		X.Set(i, 0, float64(c))
		y.Set(i, 0, float64(c%2))
	}

	clf := NewRandomForestClassifier(WithNTrees(10), WithSeed(3))
	clf.SetNominalFeatures([]bool{true})
	require.NoError(t, clf.Fit(X, y))

	pred, err := clf.Predict(X)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.Equal(t, float64((i%4)%2), pred.At(i, 0), "row %d", i)
	}
}
