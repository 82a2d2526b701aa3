package tree

import (
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// Tree is a grown decision tree. Nodes are stored in a flat arena with the
// root at index 0 and children referenced by index.
type Tree struct {
	// Nodes is the node arena. Index 0 is the root.
	Nodes []Node
	// K is the number of classes. Zero for regression trees.
	K int

	importance []float64
}

// leafFor walks the tree from the root and returns the leaf reached by x.
func (t *Tree) leafFor(x []float64) *Node {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return n
		}
		if n.branchTrue(x) {
			i = n.True
		} else {
			i = n.False
		}
	}
}

// Predict returns the tree's prediction for x: the predicted class index
// for classification trees, the mean response of the leaf for regression
// trees.
func (t *Tree) Predict(x []float64) float64 {
	return t.leafFor(x).Output
}

// PredictClass returns the predicted class of x for a classification tree.
// When posteriori is non-nil it must have length K and receives the leaf's
// class distribution.
func (t *Tree) PredictClass(x []float64, posteriori []float64) (int, error) {
	if t.K == 0 {
		return 0, errors.NewValueError("tree.PredictClass", "not a classification tree")
	}
	if posteriori != nil && len(posteriori) != t.K {
		return 0, errors.NewDimensionError("tree.PredictClass", t.K, len(posteriori), 0)
	}
	leaf := t.leafFor(x)
	if posteriori != nil {
		copy(posteriori, leaf.Posteriori)
	}
	return int(leaf.Output), nil
}

// Importance returns the tree's accumulated split gains per feature. The
// slice is owned by the tree.
func (t *Tree) Importance() []float64 { return t.importance }

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	count := 0
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			count++
		}
	}
	return count
}

// Depth returns the length of the longest root-to-leaf path. A lone root
// has depth 0.
func (t *Tree) Depth() int {
	return t.depth(0)
}

func (t *Tree) depth(i int) int {
	n := &t.Nodes[i]
	if n.IsLeaf() {
		return 0
	}
	dt := t.depth(n.True)
	df := t.depth(n.False)
	if df > dt {
		dt = df
	}
	return dt + 1
}

// Collapse folds internal nodes whose subtrees all predict the same value
// back into leaves and compacts the arena. Running it a second time changes
// nothing: a collapsed tree has no sibling leaves with equal predictions.
func (t *Tree) Collapse() {
	t.collapse(0)
	t.compact()
}

// collapse processes the subtree at i post-order and reports whether it
// ended up a leaf.
func (t *Tree) collapse(i int) bool {
	n := &t.Nodes[i]
	if n.IsLeaf() {
		return true
	}

	trueLeaf := t.collapse(n.True)
	falseLeaf := t.collapse(n.False)
	if !trueLeaf || !falseLeaf {
		return false
	}

	tc := &t.Nodes[n.True]
	fc := &t.Nodes[n.False]
	if tc.Output != fc.Output {
		return false
	}

	n.Kind = LeafNode
	n.Output = tc.Output
	n.Count = tc.Count + fc.Count
	if t.K > 0 && n.Count > 0 {
		merged := make([]float64, t.K)
		wt := float64(tc.Count) / float64(n.Count)
		wf := float64(fc.Count) / float64(n.Count)
		for j := 0; j < t.K; j++ {
			merged[j] = wt*tc.Posteriori[j] + wf*fc.Posteriori[j]
		}
		n.Posteriori = merged
	}
	n.True = 0
	n.False = 0
	n.Feature = 0
	n.Threshold = 0
	n.Subset = 0
	return true
}

// compact rewrites the arena to contain only nodes reachable from the root,
// renumbering child references.
func (t *Tree) compact() {
	remap := make([]int, len(t.Nodes))
	for i := range remap {
		remap[i] = -1
	}

	compacted := make([]Node, 0, len(t.Nodes))
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if remap[i] >= 0 {
			continue
		}
		remap[i] = len(compacted)
		compacted = append(compacted, t.Nodes[i])
		n := &t.Nodes[i]
		if !n.IsLeaf() {
			stack = append(stack, n.False, n.True)
		}
	}

	for idx := range compacted {
		n := &compacted[idx]
		if !n.IsLeaf() {
			n.True = remap[n.True]
			n.False = remap[n.False]
		}
	}
	t.Nodes = compacted
}
