// Package tree implements CART (classification and regression tree)
// induction over a column-oriented dataset view. Trees are grown best-first
// under a leaf budget and are immutable once Grow returns.
//
// Nodes are stored in a flat arena with an explicit kind tag instead of a
// pointer-based class hierarchy; traversal is a switch on the tag, which
// keeps the memory layout compact on hot prediction paths.
package tree

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	// LeafNode is a terminal node carrying a prediction.
	LeafNode NodeKind = iota
	// NumericalNode splits a continuous feature on a threshold.
	NumericalNode
	// NominalNode splits a nominal feature on a category subset.
	NominalNode
)

// Node is a single node in the arena. Exactly one variant's fields are
// meaningful, as selected by Kind. Child links are arena indices and are
// only read on internal nodes. Children are exclusively owned by their
// parent: the tree is strictly binary and acyclic with no shared nodes.
type Node struct {
	Kind NodeKind

	// split payload (NumericalNode, NominalNode)
	Feature   int
	Threshold float64 // NumericalNode: go to True child when x[Feature] <= Threshold
	Subset    uint64  // NominalNode: go to True child when bit int(x[Feature]) is set
	Gain      float64 // impurity/variance reduction achieved by this split
	True      int
	False     int

	// leaf payload
	Output     float64   // class label (classification) or mean response (regression)
	Posteriori []float64 // leaf class distribution, nil for regression

	// weighted sample count that reached this node during growth
	Count int
}

// IsLeaf reports whether the node is terminal.
func (n *Node) IsLeaf() bool {
	return n.Kind == LeafNode
}

// branchTrue reports which child row x falls into.
func (n *Node) branchTrue(x []float64) bool {
	if n.Kind == NominalNode {
		return n.Subset&(1<<uint(int(x[n.Feature]))) != 0
	}
	return x[n.Feature] <= n.Threshold
}
