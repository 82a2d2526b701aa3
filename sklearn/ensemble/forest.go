// Package ensemble implements Random Forest bagging on top of the tree
// package: stratified per-tree sampling, parallel independent growth,
// out-of-bag error estimation and per-feature importance sums.
package ensemble

import (
	"math"
	"math/rand"
	"time"

	"github.com/TiftGolofebitke/smile-sub000/core/data"
	"github.com/TiftGolofebitke/smile-sub000/core/parallel"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
	"github.com/TiftGolofebitke/smile-sub000/pkg/log"
	"github.com/TiftGolofebitke/smile-sub000/sklearn/tree"
)

// Forest is a trained random forest. Trees, voting weights and importance
// sums are fixed after Grow returns.
type Forest struct {
	trees   []*tree.Tree
	weights []float64 // per-tree out-of-bag accuracy, 1.0 for regression

	k int // classes, 0 for regression
	p int // features

	oobError   float64
	importance []float64
}

// Grow trains a random forest on ds. Trees are grown independently across
// worker goroutines; tree i draws all its randomness from a generator seeded
// with seed+i, so a fixed seed reproduces the same forest at any worker
// count.
func Grow(ds *data.Dataset, opts ...Option) (*Forest, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.resolve(ds); err != nil {
		return nil, err
	}

	n := ds.Len()
	p := ds.Features()
	k := ds.Classes()
	workers := parallel.NumWorkers(cfg.nJobs, cfg.ntrees)

	logger := log.GetLoggerWithName("ensemble.forest")
	logger.Info("growing forest",
		log.OperationKey, "fit",
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.ClassesKey, k,
		log.TreesKey, cfg.ntrees,
		log.WorkersKey, workers,
		log.RandomSeedKey, cfg.seed,
	)
	start := time.Now()

	f := &Forest{
		trees:      make([]*tree.Tree, cfg.ntrees),
		weights:    make([]float64, cfg.ntrees),
		k:          k,
		p:          p,
		importance: make([]float64, p),
	}

	smp := newSampler(ds, cfg.subsample, cfg.classWeight)
	treeCfg := tree.Config{
		NodeSize: cfg.nodeSize,
		MaxNodes: cfg.maxNodes,
		Mtry:     cfg.mtry,
		Rule:     cfg.rule,
	}

	// out-of-bag accumulators are per worker and merged single-threaded
	// after all trees finish, so growth takes no locks
	acc := make([]*oobAccumulator, workers)
	for w := range acc {
		acc[w] = newOOBAccumulator(n, k)
	}
	errs := make([]error, workers)

	parallel.ParallelizeWorkers(workers, cfg.ntrees, func(worker, first, last int) {
		errs[worker] = errors.SafeExecute("ensemble.Grow", func() error {
			weights := make([]int, n)
			var x []float64
			for i := first; i < last; i++ {
				rng := rand.New(rand.NewSource(cfg.seed + int64(i)))
				for j := range weights {
					weights[j] = 0
				}
				smp.draw(rng, weights)

				tr, err := tree.Grow(ds, weights, treeCfg, rng)
				if err != nil {
					return err
				}
				tr.Collapse()
				f.trees[i] = tr

				w, x2, err := acc[worker].observe(ds, tr, weights, x)
				if err != nil {
					return err
				}
				x = x2
				if math.IsNaN(w) {
					errors.Warn(errors.NewDegenerateDataWarning("RandomForest",
						"tree has no out-of-bag rows", "voting weight set to 1.0"))
					w = 1.0
				}
				f.weights[i] = w
			}
			return nil
		})
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := acc[0]
	for _, a := range acc[1:] {
		merged.merge(a)
	}
	f.oobError = merged.estimate(ds)
	if math.IsNaN(f.oobError) {
		errors.Warn(errors.NewUndefinedMetricWarning("oob_error",
			"no row was ever out of bag", math.NaN()))
	}

	for _, tr := range f.trees {
		imp := tr.Importance()
		for j, v := range imp {
			f.importance[j] += v
		}
	}

	logger.Info("forest grown",
		log.OperationKey, "fit",
		log.TreesKey, cfg.ntrees,
		log.OOBErrorKey, f.oobError,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return f, nil
}

// oobAccumulator collects one worker's out-of-bag predictions. For
// classification votes is an n×k vote matrix; for regression sum/count hold
// per-row running means.
type oobAccumulator struct {
	k     int
	votes []float64
	sum   []float64
	count []int
}

func newOOBAccumulator(n, k int) *oobAccumulator {
	a := &oobAccumulator{k: k}
	if k > 0 {
		a.votes = make([]float64, n*k)
	} else {
		a.sum = make([]float64, n)
		a.count = make([]int, n)
	}
	return a
}

// observe runs one grown tree over its out-of-bag rows, records the votes
// and returns the tree's out-of-bag accuracy (NaN when no row is out of
// bag; always 1.0 for regression). The row buffer is returned for reuse.
func (a *oobAccumulator) observe(ds *data.Dataset, tr *tree.Tree, weights []int, x []float64) (float64, []float64, error) {
	oob := 0
	correct := 0
	labels := ds.Labels()

	for i, w := range weights {
		if w != 0 {
			continue
		}
		oob++
		x = ds.Row(i, x)
		if a.k > 0 {
			class, err := tr.PredictClass(x, nil)
			if err != nil {
				return 0, x, err
			}
			a.votes[i*a.k+class]++
			if class == labels[i] {
				correct++
			}
		} else {
			a.sum[i] += tr.Predict(x)
			a.count[i]++
		}
	}

	if a.k == 0 {
		return 1.0, x, nil
	}
	if oob == 0 {
		return math.NaN(), x, nil
	}
	return float64(correct) / float64(oob), x, nil
}

func (a *oobAccumulator) merge(o *oobAccumulator) {
	if a.k > 0 {
		for i, v := range o.votes {
			a.votes[i] += v
		}
		return
	}
	for i := range o.sum {
		a.sum[i] += o.sum[i]
		a.count[i] += o.count[i]
	}
}

// estimate computes the forest-level out-of-bag error over the rows that
// received at least one vote: misclassification rate for classification,
// RMSE for regression. NaN when no row was ever out of bag.
func (a *oobAccumulator) estimate(ds *data.Dataset) float64 {
	voted := 0
	if a.k > 0 {
		labels := ds.Labels()
		wrong := 0
		for i := 0; i < ds.Len(); i++ {
			row := a.votes[i*a.k : (i+1)*a.k]
			best, total := 0, 0.0
			for j, v := range row {
				total += v
				if v > row[best] {
					best = j
				}
			}
			if total == 0 {
				continue
			}
			voted++
			if best != labels[i] {
				wrong++
			}
		}
		if voted == 0 {
			return math.NaN()
		}
		return float64(wrong) / float64(voted)
	}

	y := ds.Y()
	var sse float64
	for i, c := range a.count {
		if c == 0 {
			continue
		}
		voted++
		d := a.sum[i]/float64(c) - y[i]
		sse += d * d
	}
	if voted == 0 {
		return math.NaN()
	}
	return math.Sqrt(sse / float64(voted))
}

// Error returns the out-of-bag error estimated during growth:
// misclassification rate for classification forests, root mean squared
// error for regression forests.
func (f *Forest) Error() float64 { return f.oobError }

// Importance returns a copy of the per-feature importance sums: the raw
// accumulated split gains over all trees, not normalized.
func (f *Forest) Importance() []float64 {
	imp := make([]float64, len(f.importance))
	copy(imp, f.importance)
	return imp
}

// Size returns the number of trees.
func (f *Forest) Size() int { return len(f.trees) }

// Trees returns the forest's trees. The slice is a copy; the trees are not.
func (f *Forest) Trees() []*tree.Tree {
	trees := make([]*tree.Tree, len(f.trees))
	copy(trees, f.trees)
	return trees
}

// Classification reports whether the forest predicts class labels.
func (f *Forest) Classification() bool { return f.k > 0 }

// Features returns the number of features the forest was trained on.
func (f *Forest) Features() int { return f.p }

// Merge returns a new forest containing the receiver's trees followed by
// o's, with importance sums added. The out-of-bag estimate is NOT
// recomputed: Error() of the merged forest reflects the receiver's
// training-time estimate only.
func (f *Forest) Merge(o *Forest) (*Forest, error) {
	if f.k != o.k || f.p != o.p {
		return nil, errors.NewValueError("ensemble.Merge",
			"forests were trained on incompatible schemas")
	}

	m := &Forest{
		trees:      make([]*tree.Tree, 0, len(f.trees)+len(o.trees)),
		weights:    make([]float64, 0, len(f.weights)+len(o.weights)),
		k:          f.k,
		p:          f.p,
		oobError:   f.oobError,
		importance: make([]float64, f.p),
	}
	m.trees = append(append(m.trees, f.trees...), o.trees...)
	m.weights = append(append(m.weights, f.weights...), o.weights...)
	for j := range m.importance {
		m.importance[j] = f.importance[j] + o.importance[j]
	}
	return m, nil
}

// Trim returns a new forest keeping only the first k trees. Importance sums
// are recomputed over the kept trees; the out-of-bag estimate is carried
// over unchanged.
func (f *Forest) Trim(k int) (*Forest, error) {
	if k <= 0 || k > len(f.trees) {
		return nil, errors.NewValidationError("k",
			"must be in [1, the number of trees]", k)
	}

	m := &Forest{
		trees:      make([]*tree.Tree, k),
		weights:    make([]float64, k),
		k:          f.k,
		p:          f.p,
		oobError:   f.oobError,
		importance: make([]float64, f.p),
	}
	copy(m.trees, f.trees[:k])
	copy(m.weights, f.weights[:k])
	for _, tr := range m.trees {
		for j, v := range tr.Importance() {
			m.importance[j] += v
		}
	}
	return m, nil
}
