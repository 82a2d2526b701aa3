package tree

import (
	"container/heap"
	"math/rand"

	"github.com/TiftGolofebitke/smile-sub000/core/data"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// Config controls tree induction.
type Config struct {
	// NodeSize is the minimum weighted sample count of a leaf. Nodes at or
	// below this size are never split.
	NodeSize int
	// MaxNodes bounds the number of leaves. Growth is best-first, so when
	// the budget runs out the splits kept are the highest-gain ones.
	MaxNodes int
	// Mtry is the number of features sampled per node. When Mtry >= p all
	// features are scanned in natural order and no sampling happens.
	Mtry int
	// Rule is the classification impurity criterion.
	Rule SplitRule
}

func (c Config) validate(p int) error {
	if c.NodeSize < 1 {
		return errors.NewValidationError("nodeSize", "must be at least 1", c.NodeSize)
	}
	if c.MaxNodes < 2 {
		return errors.NewValidationError("maxNodes", "must be at least 2", c.MaxNodes)
	}
	if c.Mtry < 1 {
		return errors.NewValidationError("mtry", "must be at least 1", c.Mtry)
	}
	if p < 1 {
		return errors.NewValidationError("features", "dataset has no feature columns", p)
	}
	return nil
}

// pending is a splittable leaf waiting in the growth queue together with the
// best split already found for it.
type pending struct {
	node    int
	split   Split
	samples []int
	seq     int
}

// splitQueue is a max-heap on split gain. Equal gains pop in insertion order
// so growth is deterministic for a fixed random source.
type splitQueue []*pending

func (q splitQueue) Len() int { return len(q) }

func (q splitQueue) Less(i, j int) bool {
	if q[i].split.Gain != q[j].split.Gain {
		return q[i].split.Gain > q[j].split.Gain
	}
	return q[i].seq < q[j].seq
}

func (q splitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *splitQueue) Push(x interface{}) { *q = append(*q, x.(*pending)) }

func (q *splitQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Grow induces a decision tree on the rows of ds weighted by samples, where
// samples[i] is the multiplicity of row i (zero excludes the row). Growth is
// best-first: the pending leaf with the highest split gain is expanded until
// no positive-gain split remains or the leaf budget is exhausted.
func Grow(ds *data.Dataset, samples []int, cfg Config, rng *rand.Rand) (*Tree, error) {
	p := ds.Features()
	if err := cfg.validate(p); err != nil {
		return nil, err
	}
	if len(samples) != ds.Len() {
		return nil, errors.NewDimensionError("tree.Grow", ds.Len(), len(samples), 0)
	}

	t := &Tree{K: ds.Classes(), importance: make([]float64, p)}

	b := &builder{ds: ds, cfg: cfg, rng: rng, tree: t}
	root, count, err := b.makeLeaf(samples)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, errors.NewValueError("tree.Grow", "no samples with positive weight")
	}

	heap.Init(&b.queue)
	if err := b.enqueue(root, samples, count); err != nil {
		return nil, err
	}

	leaves := 1
	for b.queue.Len() > 0 && leaves < cfg.MaxNodes {
		item := heap.Pop(&b.queue).(*pending)
		if err := b.apply(item); err != nil {
			return nil, err
		}
		leaves++
	}

	return t, nil
}

// builder holds the growth state for a single Grow call.
type builder struct {
	ds    *data.Dataset
	cfg   Config
	rng   *rand.Rand
	tree  *Tree
	queue splitQueue
	seq   int
}

// makeLeaf appends a leaf node summarizing the weighted rows and returns its
// index and weighted count.
func (b *builder) makeLeaf(samples []int) (int, int, error) {
	n := &Node{Kind: LeafNode}
	count := 0

	if b.tree.K > 0 {
		hist := make([]int, b.tree.K)
		labels := b.ds.Labels()
		for i, w := range samples {
			if w > 0 {
				hist[labels[i]] += w
				count += w
			}
		}
		if count > 0 {
			n.Posteriori = make([]float64, b.tree.K)
			argmax := 0
			for j, c := range hist {
				n.Posteriori[j] = float64(c) / float64(count)
				if c > hist[argmax] {
					argmax = j
				}
			}
			n.Output = float64(argmax)
		}
	} else {
		y := b.ds.Y()
		var sum float64
		for i, w := range samples {
			if w > 0 {
				sum += float64(w) * y[i]
				count += w
			}
		}
		if count > 0 {
			n.Output = sum / float64(count)
		}
	}

	n.Count = count
	b.tree.Nodes = append(b.tree.Nodes, *n)
	return len(b.tree.Nodes) - 1, count, nil
}

// enqueue searches for the best split of a leaf and pushes it on the queue
// when one exists that leaves at least nodeSize weighted samples on each
// side.
func (b *builder) enqueue(node int, samples []int, count int) error {
	if count <= b.cfg.NodeSize {
		return nil
	}

	features := b.candidateFeatures()
	split, ok, err := FindBestSplit(b.ds, samples, features, b.cfg.Rule, b.cfg.NodeSize)
	if err != nil {
		return err
	}
	if !ok || split.TrueCount < b.cfg.NodeSize || split.FalseCount < b.cfg.NodeSize {
		return nil
	}

	heap.Push(&b.queue, &pending{node: node, split: split, samples: samples, seq: b.seq})
	b.seq++
	return nil
}

// candidateFeatures returns the feature indices scanned at one node. A
// permutation is only drawn when mtry is an actual subset of the features.
func (b *builder) candidateFeatures() []int {
	p := b.ds.Features()
	if b.cfg.Mtry >= p {
		features := make([]int, p)
		for j := range features {
			features[j] = j
		}
		return features
	}
	return b.rng.Perm(p)[:b.cfg.Mtry]
}

// apply turns a pending leaf into an internal node with two fresh leaves and
// enqueues the children.
func (b *builder) apply(item *pending) error {
	split := item.split
	col := b.ds.Column(split.Feature)

	left := make([]int, len(item.samples))
	right := make([]int, len(item.samples))
	for i, w := range item.samples {
		if w == 0 {
			continue
		}
		if branchBySplit(&split, col.Values[i]) {
			left[i] = w
		} else {
			right[i] = w
		}
	}

	trueChild, trueCount, err := b.makeLeaf(left)
	if err != nil {
		return err
	}
	falseChild, falseCount, err := b.makeLeaf(right)
	if err != nil {
		return err
	}
	if trueCount != split.TrueCount || falseCount != split.FalseCount {
		return errors.NewValueError("tree.Grow", "split partition does not match split counts")
	}

	n := &b.tree.Nodes[item.node]
	if split.Nominal {
		n.Kind = NominalNode
		n.Subset = split.Subset
	} else {
		n.Kind = NumericalNode
		n.Threshold = split.Threshold
	}
	n.Feature = split.Feature
	n.Gain = split.Gain
	n.True = trueChild
	n.False = falseChild
	n.Posteriori = nil

	b.tree.importance[split.Feature] += split.Gain

	if err := b.enqueue(trueChild, left, trueCount); err != nil {
		return err
	}
	return b.enqueue(falseChild, right, falseCount)
}

// branchBySplit mirrors Node.branchTrue for a split that has not been
// written into the arena yet.
func branchBySplit(s *Split, v float64) bool {
	if s.Nominal {
		return s.Subset&(1<<uint(int(v))) != 0
	}
	return v <= s.Threshold
}
