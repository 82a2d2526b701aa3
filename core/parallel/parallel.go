// Package parallel provides chunked worker-pool helpers used by training and
// batch prediction.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the worker count used for items units of work under the
// requested parallelism. requested <= 0 means one worker per CPU core. The
// result never exceeds items.
func NumWorkers(requested, items int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > items {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Parallelize splits items units of work across one worker per CPU core and
// runs fn on each contiguous range [start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := NumWorkers(0, items)

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over [0, items) when items is
// at or below threshold, and in parallel otherwise. Small inputs are not
// worth the goroutine overhead.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}

// ParallelizeWorkers runs fn over items units of work split across exactly
// workers goroutines, passing each its worker index. Callers that keep
// per-worker accumulators size them with the same workers value and merge
// after return; no synchronization is needed inside fn as long as it only
// touches its own accumulator and its own [start, end) range.
func ParallelizeWorkers(workers, items int, fn func(worker, start, end int)) {
	if items == 0 || workers < 1 {
		return
	}
	if workers > items {
		workers = items
	}

	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			fn(w, s, e)
		}(i, start, end)
	}

	wg.Wait()
}
