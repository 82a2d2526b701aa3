package ensemble

import (
	"math/rand"

	"github.com/TiftGolofebitke/smile-sub000/core/data"
)

// sampler draws the per-tree integer row weights. For classification the
// draw is stratified: each class is sampled from its own row pool so rare
// classes keep their share of every tree, with classWeight[c] acting as an
// undersampling divisor for class c.
type sampler struct {
	n           int
	subsample   float64
	classWeight []int
	strata      [][]int // classification row pools, nil for regression
}

func newSampler(ds *data.Dataset, subsample float64, classWeight []int) *sampler {
	s := &sampler{n: ds.Len(), subsample: subsample, classWeight: classWeight}
	if ds.Classification() {
		s.strata = make([][]int, ds.Classes())
		for i, label := range ds.Labels() {
			s.strata[label] = append(s.strata[label], i)
		}
	}
	return s
}

// draw fills weights, previously zeroed by the caller, with the row
// multiplicities of one tree's training sample.
func (s *sampler) draw(rng *rand.Rand, weights []int) {
	if s.strata == nil {
		s.drawPool(rng, weights, nil, s.n, 1)
		return
	}
	for c, pool := range s.strata {
		divisor := 1
		if s.classWeight != nil {
			divisor = s.classWeight[c]
		}
		s.drawPool(rng, weights, pool, len(pool), divisor)
	}
}

// drawPool samples from one row pool. A nil pool stands for the identity
// pool [0, size).
func (s *sampler) drawPool(rng *rand.Rand, weights []int, pool []int, size, divisor int) {
	row := func(j int) int {
		if pool == nil {
			return j
		}
		return pool[j]
	}

	if s.subsample == 1.0 {
		// bootstrap with replacement
		draws := size / divisor
		for k := 0; k < draws; k++ {
			weights[row(rng.Intn(size))]++
		}
		return
	}

	// without replacement: a prefix of a permutation
	draws := int(s.subsample*float64(size)) / divisor
	perm := rng.Perm(size)
	for k := 0; k < draws; k++ {
		weights[row(perm[k])]++
	}
}
