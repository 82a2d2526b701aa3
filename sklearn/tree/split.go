package tree

import (
	"math"

	"github.com/TiftGolofebitke/smile-sub000/core/data"
	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// SplitRule selects the impurity criterion for classification splits.
// Regression trees always use variance reduction and ignore the rule.
type SplitRule int

const (
	// Gini impurity.
	Gini SplitRule = iota
	// Entropy (information gain).
	Entropy
	// ClassificationError (misclassification rate).
	ClassificationError
)

// String returns the rule name.
func (r SplitRule) String() string {
	switch r {
	case Gini:
		return "gini"
	case Entropy:
		return "entropy"
	case ClassificationError:
		return "classification_error"
	default:
		return "unknown"
	}
}

// ParseSplitRule converts a criterion name to a SplitRule.
func ParseSplitRule(name string) (SplitRule, error) {
	switch name {
	case "gini":
		return Gini, nil
	case "entropy":
		return Entropy, nil
	case "classification_error":
		return ClassificationError, nil
	default:
		return Gini, errors.NewValidationError("criterion", "unknown split rule", name)
	}
}

// Split describes the best binary split found for a node, or the absence of
// one. Counts are weighted by the node's bagging weights.
type Split struct {
	Feature    int
	Nominal    bool
	Threshold  float64 // continuous: x <= Threshold goes to the true branch
	Subset     uint64  // nominal: categories in the subset go to the true branch
	Gain       float64
	TrueCount  int
	FalseCount int
}

// categories beyond this are split one-vs-rest instead of by exhaustive
// bipartition enumeration
const maxEnumCategories = 12

// weightedImpurity returns count times the impurity of a class histogram.
// Using the count-scaled form makes split gains additive across nodes, which
// is what the importance accumulator sums.
func weightedImpurity(hist []int, count int, rule SplitRule) float64 {
	if count == 0 {
		return 0
	}
	total := float64(count)
	switch rule {
	case Gini:
		var sq float64
		for _, c := range hist {
			sq += float64(c) * float64(c)
		}
		return total - sq/total
	case Entropy:
		var e float64
		for _, c := range hist {
			if c > 0 {
				p := float64(c) / total
				e -= float64(c) * math.Log2(p)
			}
		}
		return e
	default: // ClassificationError
		maxc := 0
		for _, c := range hist {
			if c > maxc {
				maxc = c
			}
		}
		return total - float64(maxc)
	}
}

// sumOfSquares returns the count-scaled variance sum*x² − (sum*x)²/n used
// for regression splits.
func sumOfSquares(sum, sumSq float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sumSq - sum*sum/float64(count)
}

// splitContext carries the parent-node sufficient statistics shared by all
// candidate features.
type splitContext struct {
	ds      *data.Dataset
	samples []int
	count   int
	rule    SplitRule

	// classification
	k    int
	hist []int

	// regression
	sum    float64
	sumSq  float64
	ss     float64
	parent float64 // count-scaled parent impurity or SS
}

// FindBestSplit scans the candidate features in order and returns the best
// binary split of the rows weighted by samples. The boolean result is false
// when no feature admits a positive-gain split separating at least one
// weighted sample on each side.
//
// On score ties the first-found feature in scan order wins: an incumbent is
// only replaced by a strictly greater gain.
//
// Calling FindBestSplit on a node whose weighted sample count is at or below
// nodeSize is a contract violation and returns an error.
func FindBestSplit(ds *data.Dataset, samples []int, features []int, rule SplitRule, nodeSize int) (Split, bool, error) {
	ctx := &splitContext{ds: ds, samples: samples, rule: rule}

	for _, w := range samples {
		if w < 0 {
			return Split{}, false, errors.NewValueError("tree.FindBestSplit", "negative sample weight")
		}
		ctx.count += w
	}
	if ctx.count <= nodeSize {
		return Split{}, false, errors.NewValueError("tree.FindBestSplit",
			"node has too few weighted samples to split")
	}

	if ds.Classification() {
		ctx.k = ds.Classes()
		ctx.hist = make([]int, ctx.k)
		labels := ds.Labels()
		for i, w := range samples {
			if w > 0 {
				ctx.hist[labels[i]] += w
			}
		}
		ctx.parent = weightedImpurity(ctx.hist, ctx.count, rule)
		// a pure node admits no positive-gain split
		if ctx.parent == 0 {
			return Split{}, false, nil
		}
	} else {
		y := ds.Y()
		for i, w := range samples {
			if w > 0 {
				ctx.sum += float64(w) * y[i]
				ctx.sumSq += float64(w) * y[i] * y[i]
			}
		}
		ctx.ss = sumOfSquares(ctx.sum, ctx.sumSq, ctx.count)
		ctx.parent = ctx.ss
		if ctx.parent <= 0 {
			return Split{}, false, nil
		}
	}

	var best Split
	found := false
	for _, f := range features {
		var cand Split
		var ok bool
		if ds.Column(f).Nominal {
			cand, ok = bestNominalSplit(ctx, f)
		} else {
			cand, ok = bestNumericalSplit(ctx, f)
		}
		if ok && cand.Gain > 0 && (!found || cand.Gain > best.Gain) {
			best = cand
			found = true
		}
	}

	return best, found, nil
}

// bestNumericalSplit sweeps a separator between consecutive distinct values
// of a continuous feature, using the dataset's precomputed ascending order.
func bestNumericalSplit(ctx *splitContext, f int) (Split, bool) {
	col := ctx.ds.Column(f)
	order := col.Order()
	values := col.Values

	best := Split{Feature: f}
	found := false

	if ctx.k > 0 {
		labels := ctx.ds.Labels()
		leftHist := make([]int, ctx.k)
		rightHist := make([]int, ctx.k)
		copy(rightHist, ctx.hist)
		leftCount := 0
		prev := 0.0

		for _, i := range order {
			w := ctx.samples[i]
			if w == 0 {
				continue
			}
			v := values[i]
			if leftCount > 0 && v > prev {
				gain := ctx.parent -
					weightedImpurity(leftHist, leftCount, ctx.rule) -
					weightedImpurity(rightHist, ctx.count-leftCount, ctx.rule)
				if !found || gain > best.Gain {
					best.Threshold = (prev + v) / 2
					best.Gain = gain
					best.TrueCount = leftCount
					best.FalseCount = ctx.count - leftCount
					found = true
				}
			}
			leftHist[labels[i]] += w
			rightHist[labels[i]] -= w
			leftCount += w
			prev = v
		}
	} else {
		y := ctx.ds.Y()
		var leftSum, leftSumSq float64
		leftCount := 0
		prev := 0.0

		for _, i := range order {
			w := ctx.samples[i]
			if w == 0 {
				continue
			}
			v := values[i]
			if leftCount > 0 && v > prev {
				rightCount := ctx.count - leftCount
				gain := ctx.parent -
					sumOfSquares(leftSum, leftSumSq, leftCount) -
					sumOfSquares(ctx.sum-leftSum, ctx.sumSq-leftSumSq, rightCount)
				if !found || gain > best.Gain {
					best.Threshold = (prev + v) / 2
					best.Gain = gain
					best.TrueCount = leftCount
					best.FalseCount = rightCount
					found = true
				}
			}
			leftSum += float64(w) * y[i]
			leftSumSq += float64(w) * y[i] * y[i]
			leftCount += w
			prev = v
		}
	}

	return best, found
}

// bestNominalSplit evaluates bipartitions of a nominal feature's categories.
// Small-cardinality features are searched exhaustively; larger ones fall
// back to one-vs-rest subsets. Features with more than 64 categories are
// skipped because the subset is stored as a bit mask.
func bestNominalSplit(ctx *splitContext, f int) (Split, bool) {
	col := ctx.ds.Column(f)
	m := col.Categories
	if m > 64 {
		return Split{}, false
	}

	best := Split{Feature: f, Nominal: true}
	found := false

	if ctx.k > 0 {
		labels := ctx.ds.Labels()
		catHist := make([]int, m*ctx.k)
		catCount := make([]int, m)
		for i, w := range ctx.samples {
			if w > 0 {
				c := int(col.Values[i])
				catHist[c*ctx.k+labels[i]] += w
				catCount[c] += w
			}
		}

		leftHist := make([]int, ctx.k)
		evaluate := func(mask uint64) {
			leftCount := 0
			for j := range leftHist {
				leftHist[j] = 0
			}
			for c := 0; c < m; c++ {
				if mask&(1<<uint(c)) == 0 {
					continue
				}
				leftCount += catCount[c]
				for j := 0; j < ctx.k; j++ {
					leftHist[j] += catHist[c*ctx.k+j]
				}
			}
			rightCount := ctx.count - leftCount
			if leftCount == 0 || rightCount == 0 {
				return
			}
			rightHist := make([]int, ctx.k)
			for j := 0; j < ctx.k; j++ {
				rightHist[j] = ctx.hist[j] - leftHist[j]
			}
			gain := ctx.parent -
				weightedImpurity(leftHist, leftCount, ctx.rule) -
				weightedImpurity(rightHist, rightCount, ctx.rule)
			if !found || gain > best.Gain {
				best.Subset = mask
				best.Gain = gain
				best.TrueCount = leftCount
				best.FalseCount = rightCount
				found = true
			}
		}

		forEachCandidateMask(m, evaluate)
	} else {
		y := ctx.ds.Y()
		catSum := make([]float64, m)
		catSumSq := make([]float64, m)
		catCount := make([]int, m)
		for i, w := range ctx.samples {
			if w > 0 {
				c := int(col.Values[i])
				catSum[c] += float64(w) * y[i]
				catSumSq[c] += float64(w) * y[i] * y[i]
				catCount[c] += w
			}
		}

		evaluate := func(mask uint64) {
			var leftSum, leftSumSq float64
			leftCount := 0
			for c := 0; c < m; c++ {
				if mask&(1<<uint(c)) == 0 {
					continue
				}
				leftSum += catSum[c]
				leftSumSq += catSumSq[c]
				leftCount += catCount[c]
			}
			rightCount := ctx.count - leftCount
			if leftCount == 0 || rightCount == 0 {
				return
			}
			gain := ctx.parent -
				sumOfSquares(leftSum, leftSumSq, leftCount) -
				sumOfSquares(ctx.sum-leftSum, ctx.sumSq-leftSumSq, rightCount)
			if !found || gain > best.Gain {
				best.Subset = mask
				best.Gain = gain
				best.TrueCount = leftCount
				best.FalseCount = rightCount
				found = true
			}
		}

		forEachCandidateMask(m, evaluate)
	}

	return best, found
}

// forEachCandidateMask enumerates candidate category subsets. Exhaustive
// bipartition enumeration fixes the last category on the false side to avoid
// visiting each partition twice.
func forEachCandidateMask(m int, evaluate func(mask uint64)) {
	if m <= maxEnumCategories {
		limit := uint64(1) << uint(m-1)
		for mask := uint64(1); mask < limit; mask++ {
			evaluate(mask)
		}
		return
	}
	for c := 0; c < m; c++ {
		evaluate(uint64(1) << uint(c))
	}
}
