package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiftGolofebitke/smile-sub000/core/data"
	smileErrors "github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

func onesWeights(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// twoBlobs builds a classification dataset separable at x0 = 0.5, with a
// pure-noise second feature.
func twoBlobs(t *testing.T, n int, rng *rand.Rand) *data.Dataset {
	t.Helper()
	x0 := make([]float64, n)
	x1 := make([]float64, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			x0[i] = rng.Float64() * 0.4
			labels[i] = 0
		} else {
			x0[i] = 0.6 + rng.Float64()*0.4
			labels[i] = 1
		}
		x1[i] = rng.Float64()
	}
	ds, err := data.NewClassification([]data.Column{{Values: x0}, {Values: x1}}, labels)
	require.NoError(t, err)
	return ds
}

func TestGrowSeparableClassification(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ds := twoBlobs(t, 100, rng)

	tr, err := Grow(ds, onesWeights(100), Config{NodeSize: 1, MaxNodes: 100, Mtry: 2, Rule: Gini}, rng)
	require.NoError(t, err)

	root := &tr.Nodes[0]
	require.False(t, root.IsLeaf())
	assert.Equal(t, NumericalNode, root.Kind)
	assert.Equal(t, 0, root.Feature)
	assert.InDelta(t, 0.5, root.Threshold, 0.11)

	// a perfect first split leaves nothing to gain below it
	assert.Equal(t, 3, len(tr.Nodes))
	assert.Equal(t, 0.0, tr.Predict([]float64{0.1, 0.5}))
	assert.Equal(t, 1.0, tr.Predict([]float64{0.9, 0.5}))

	imp := tr.Importance()
	assert.Greater(t, imp[0], 0.0)
	assert.Equal(t, 0.0, imp[1])
}

func TestGrowChildCountsSumToParent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 200
	x := make([]float64, n)
	labels := make([]int, n)
	for i := range x {
		x[i] = rng.Float64()
		if x[i]+0.3*rng.NormFloat64() > 0.5 {
			labels[i] = 1
		}
	}
	ds, err := data.NewClassification([]data.Column{{Values: x}}, labels)
	require.NoError(t, err)

	tr, err := Grow(ds, onesWeights(n), Config{NodeSize: 5, MaxNodes: 20, Mtry: 1, Rule: Gini}, rng)
	require.NoError(t, err)

	for i := range tr.Nodes {
		node := &tr.Nodes[i]
		if node.IsLeaf() {
			assert.GreaterOrEqual(t, node.Count, 5)
			continue
		}
		sum := tr.Nodes[node.True].Count + tr.Nodes[node.False].Count
		assert.Equal(t, node.Count, sum, "node %d", i)
	}
	assert.LessOrEqual(t, tr.LeafCount(), 20)
}

func TestGrowNodeSizeStopsGrowth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ds := twoBlobs(t, 40, rng)

	tr, err := Grow(ds, onesWeights(40), Config{NodeSize: 40, MaxNodes: 100, Mtry: 2, Rule: Gini}, rng)
	require.NoError(t, err)

	require.Equal(t, 1, len(tr.Nodes))
	assert.True(t, tr.Nodes[0].IsLeaf())
	assert.Equal(t, 40, tr.Nodes[0].Count)
	assert.InDelta(t, 0.5, tr.Nodes[0].Posteriori[0], 1e-12)
}

func TestGrowTieBreakKeepsFirstFeature(t *testing.T) {
	// two identical columns produce identical gains; the incumbent from the
	// earlier scan position must survive
	x := []float64{0, 0, 0, 1, 1, 1}
	labels := []int{0, 0, 0, 1, 1, 1}
	ds, err := data.NewClassification([]data.Column{
		{Values: append([]float64(nil), x...)},
		{Values: append([]float64(nil), x...)},
	}, labels)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	tr, err := Grow(ds, onesWeights(6), Config{NodeSize: 1, MaxNodes: 10, Mtry: 2, Rule: Gini}, rng)
	require.NoError(t, err)

	require.False(t, tr.Nodes[0].IsLeaf())
	assert.Equal(t, 0, tr.Nodes[0].Feature)
}

func TestGrowNominalSplit(t *testing.T) {
	// categories {0,2} vs {1,3} determine the class exactly
	x := []float64{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}
	labels := make([]int, len(x))
	for i, v := range x {
		if int(v)%2 == 1 {
			labels[i] = 1
		}
	}
	ds, err := data.NewClassification([]data.Column{
		{Values: x, Nominal: true, Categories: 4},
	}, labels)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	tr, err := Grow(ds, onesWeights(len(x)), Config{NodeSize: 1, MaxNodes: 10, Mtry: 1, Rule: Entropy}, rng)
	require.NoError(t, err)

	root := &tr.Nodes[0]
	require.Equal(t, NominalNode, root.Kind)
	assert.Equal(t, 3, len(tr.Nodes))
	for _, v := range []float64{0, 1, 2, 3} {
		want := 0.0
		if int(v)%2 == 1 {
			want = 1.0
		}
		assert.Equal(t, want, tr.Predict([]float64{v}), "category %v", v)
	}
}

func TestGrowRegression(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 120
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
		if x[i] > 0.5 {
			y[i] = 10
		} else {
			y[i] = -10
		}
	}
	ds, err := data.NewRegression([]data.Column{{Values: x}}, y)
	require.NoError(t, err)

	tr, err := Grow(ds, onesWeights(n), Config{NodeSize: 5, MaxNodes: 50, Mtry: 1, Rule: Gini}, rng)
	require.NoError(t, err)

	assert.Equal(t, 0, tr.K)
	assert.InDelta(t, -10, tr.Predict([]float64{0.1}), 1e-9)
	assert.InDelta(t, 10, tr.Predict([]float64{0.9}), 1e-9)
	assert.Greater(t, tr.Importance()[0], 0.0)
}

func TestFindBestSplitContract(t *testing.T) {
	ds, err := data.NewClassification([]data.Column{
		{Values: []float64{0, 1, 2}},
	}, []int{0, 1, 1})
	require.NoError(t, err)

	_, _, err = FindBestSplit(ds, []int{1, 1, 1}, []int{0}, Gini, 3)
	require.Error(t, err)
	var valueErr *smileErrors.ValueError
	assert.ErrorAs(t, err, &valueErr)
}

func TestFindBestSplitPureNode(t *testing.T) {
	// the second class is weighted out, leaving a pure node with no
	// positive-gain split
	ds, err := data.NewClassification([]data.Column{
		{Values: []float64{0, 1, 2, 3, 4}},
	}, []int{0, 0, 0, 0, 1})
	require.NoError(t, err)

	_, ok, err := FindBestSplit(ds, []int{1, 1, 1, 1, 0}, []int{0}, Gini, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredictClassPosteriori(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ds := twoBlobs(t, 60, rng)

	tr, err := Grow(ds, onesWeights(60), Config{NodeSize: 1, MaxNodes: 50, Mtry: 2, Rule: Gini}, rng)
	require.NoError(t, err)

	posteriori := make([]float64, 2)
	class, err := tr.PredictClass([]float64{0.1, 0.5}, posteriori)
	require.NoError(t, err)
	assert.Equal(t, 0, class)
	assert.InDelta(t, 1.0, posteriori[0]+posteriori[1], 1e-12)
	assert.Greater(t, posteriori[0], posteriori[1])

	_, err = tr.PredictClass([]float64{0.1, 0.5}, make([]float64, 3))
	assert.Error(t, err)
}

func TestCollapseMergesEqualLeaves(t *testing.T) {
	tr := &Tree{
		K: 2,
		Nodes: []Node{
			{Kind: NumericalNode, Feature: 0, Threshold: 0.5, True: 1, False: 2, Count: 10},
			{Kind: LeafNode, Output: 1, Posteriori: []float64{0.2, 0.8}, Count: 4},
			{Kind: LeafNode, Output: 1, Posteriori: []float64{0.4, 0.6}, Count: 6},
		},
		importance: make([]float64, 1),
	}

	tr.Collapse()

	require.Equal(t, 1, len(tr.Nodes))
	root := &tr.Nodes[0]
	assert.True(t, root.IsLeaf())
	assert.Equal(t, 1.0, root.Output)
	assert.Equal(t, 10, root.Count)
	assert.InDelta(t, 0.4*0.2+0.6*0.4, root.Posteriori[0], 1e-12)
	assert.InDelta(t, 0.4*0.8+0.6*0.6, root.Posteriori[1], 1e-12)

	before := append([]Node(nil), tr.Nodes...)
	tr.Collapse()
	assert.Equal(t, before, tr.Nodes)
}

func TestCollapseKeepsDistinctLeaves(t *testing.T) {
	tr := &Tree{
		K: 2,
		Nodes: []Node{
			{Kind: NumericalNode, Feature: 0, Threshold: 0.5, True: 1, False: 2, Count: 10},
			{Kind: LeafNode, Output: 0, Posteriori: []float64{0.9, 0.1}, Count: 5},
			{Kind: LeafNode, Output: 1, Posteriori: []float64{0.1, 0.9}, Count: 5},
		},
		importance: make([]float64, 1),
	}

	before := append([]Node(nil), tr.Nodes...)
	tr.Collapse()
	assert.Equal(t, before, tr.Nodes)
	assert.Equal(t, 1, tr.Depth())
	assert.Equal(t, 2, tr.LeafCount())
}

func TestSplitRuleRoundTrip(t *testing.T) {
	for _, rule := range []SplitRule{Gini, Entropy, ClassificationError} {
		parsed, err := ParseSplitRule(rule.String())
		require.NoError(t, err)
		assert.Equal(t, rule, parsed)
	}
	_, err := ParseSplitRule("friedman_mse")
	assert.Error(t, err)
}
