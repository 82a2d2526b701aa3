package ensemble

import (
	"math"

	"github.com/TiftGolofebitke/smile-sub000/core/data"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
	"github.com/TiftGolofebitke/smile-sub000/sklearn/tree"
)

// config holds the resolved forest hyperparameters. Zero values of maxNodes
// and mtry mean "derive from the dataset".
type config struct {
	ntrees      int
	maxNodes    int
	nodeSize    int
	mtry        int
	subsample   float64
	rule        tree.SplitRule
	classWeight []int
	seed        int64
	nJobs       int
}

// Option configures forest growth.
type Option func(*config)

func defaultConfig() config {
	return config{
		ntrees:    500,
		nodeSize:  5,
		subsample: 1.0,
		rule:      tree.Gini,
		seed:      1,
	}
}

// WithNTrees sets the number of trees.
func WithNTrees(n int) Option {
	return func(c *config) { c.ntrees = n }
}

// WithMaxNodes sets the leaf budget per tree, at least 2. Unset, it
// defaults to n/nodeSize.
func WithMaxNodes(m int) Option {
	return func(c *config) { c.maxNodes = m }
}

// WithNodeSize sets the minimum weighted sample count of a leaf.
func WithNodeSize(s int) Option {
	return func(c *config) { c.nodeSize = s }
}

// WithMtry sets the number of features sampled per node. Unset, it defaults
// to floor(sqrt(p)) for classification and ceil(p/3) for regression.
func WithMtry(m int) Option {
	return func(c *config) { c.mtry = m }
}

// WithSubsample sets the per-tree sampling ratio. 1.0 bootstraps with
// replacement; anything below samples without replacement.
func WithSubsample(ratio float64) Option {
	return func(c *config) { c.subsample = ratio }
}

// WithSplitRule sets the classification impurity criterion. Ignored by
// regression forests.
func WithSplitRule(rule tree.SplitRule) Option {
	return func(c *config) { c.rule = rule }
}

// WithClassWeight sets per-class undersampling divisors for stratified
// bagging: class c contributes n_c/weight[c] rows to each tree's sample.
func WithClassWeight(weight []int) Option {
	return func(c *config) { c.classWeight = weight }
}

// WithSeed sets the base random seed. Tree i draws from seed+i.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithNJobs sets the number of worker goroutines. Zero or negative uses one
// per CPU core.
func WithNJobs(n int) Option {
	return func(c *config) { c.nJobs = n }
}

// resolve validates the configuration against a dataset and fills in the
// derived defaults.
func (c *config) resolve(ds *data.Dataset) error {
	n := ds.Len()
	p := ds.Features()

	if c.ntrees < 1 {
		return errors.NewValidationError("ntrees", "must be at least 1", c.ntrees)
	}
	if c.nodeSize < 1 {
		return errors.NewValidationError("nodeSize", "must be at least 1", c.nodeSize)
	}
	if c.subsample <= 0 || c.subsample > 1 {
		return errors.NewValidationError("subsample", "must be in (0, 1]", c.subsample)
	}
	if c.mtry == 0 {
		if ds.Classification() {
			c.mtry = int(math.Floor(math.Sqrt(float64(p))))
		} else {
			c.mtry = (p + 2) / 3
		}
		if c.mtry < 1 {
			c.mtry = 1
		}
	}
	if c.mtry < 1 || c.mtry > p {
		return errors.NewValidationError("mtry", "must be in [1, p]", c.mtry)
	}
	if c.maxNodes != 0 && c.maxNodes < 2 {
		return errors.NewValidationError("maxNodes", "must be at least 2", c.maxNodes)
	}
	if c.maxNodes == 0 {
		c.maxNodes = n / c.nodeSize
		if c.maxNodes < 2 {
			c.maxNodes = 2
		}
	}
	if c.classWeight != nil {
		if !ds.Classification() {
			return errors.NewValidationError("classWeight", "only valid for classification", c.classWeight)
		}
		if len(c.classWeight) != ds.Classes() {
			return errors.NewValidationError("classWeight", "length must equal the number of classes", len(c.classWeight))
		}
		for _, w := range c.classWeight {
			if w < 1 {
				return errors.NewValidationError("classWeight", "weights must be at least 1", w)
			}
		}
	}
	return nil
}
