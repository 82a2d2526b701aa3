package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	const items = 1000
	seen := make([]int32, items)

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("item %d processed %d times", i, c)
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential path should cover [0, 10), got [%d, %d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected a single sequential call, got %d", calls)
	}
}

func TestParallelizeWorkers(t *testing.T) {
	const workers = 4
	const items = 103

	counts := make([]int64, workers)
	seen := make([]int32, items)

	ParallelizeWorkers(workers, items, func(worker, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
			atomic.AddInt64(&counts[worker], 1)
		}
	})

	var total int64
	for _, c := range counts {
		total += c
	}
	if total != items {
		t.Errorf("processed %d items, want %d", total, items)
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("item %d processed %d times", i, c)
		}
	}
}

func TestParallelizeWorkersMoreWorkersThanItems(t *testing.T) {
	seen := make([]int32, 3)
	ParallelizeWorkers(16, 3, func(worker, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("item %d processed %d times", i, c)
		}
	}
}

func TestNumWorkers(t *testing.T) {
	if got := NumWorkers(4, 100); got != 4 {
		t.Errorf("NumWorkers(4, 100) = %d", got)
	}
	if got := NumWorkers(8, 3); got != 3 {
		t.Errorf("NumWorkers(8, 3) = %d, want 3", got)
	}
	if got := NumWorkers(0, 100); got < 1 {
		t.Errorf("NumWorkers(0, 100) = %d, want >= 1", got)
	}
}
