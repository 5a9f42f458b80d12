package remap

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/almanac/interval"
)

// pointwiseBatch is the number of values one worker maps per task.
const pointwiseBatch = 1 << 16

// LowestPointwise computes the same answer as Lowest by mapping every single
// value of every seed interval. It exists as an oracle for small inputs;
// the cost is O(total seed width · rules).
//
// Seed intervals are cut into batches of pointwiseBatch values and handed to
// at most workers goroutines (runtime.GOMAXPROCS(0) if workers <= 0). The
// first error cancels the remaining batches.
func LowestPointwise(ctx context.Context, seeds []interval.Interval, stages []Stage, workers int) (int64, error) {
	if len(seeds) == 0 {
		return 0, ErrNoSeeds
	}
	if err := checkWorkingSet(seeds); err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu    sync.Mutex
		low   int64
		found bool
	)
	record := func(v int64) {
		mu.Lock()
		if !found || v < low {
			low, found = v, true
		}
		mu.Unlock()
	}

	for _, s := range seeds {
		forEachBatch(s.Len(), pointwiseBatch, func(off, n uint64) bool {
			if gctx.Err() != nil {
				return false
			}
			lo := s.Start() + int64(off)
			g.Go(func() error {
				best, err := MapPoint(lo, stages)
				if err != nil {
					return err
				}
				for i := uint64(1); i < n; i++ {
					loc, err := MapPoint(lo+int64(i), stages)
					if err != nil {
						return err
					}
					best = min(best, loc)
				}
				record(best)

				return gctx.Err()
			})

			return true
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return low, nil
}

// forEachBatch calls fn with consecutive (offset, count) windows of at most
// size values covering [0, width), stopping early when fn returns false.
func forEachBatch(width, size uint64, fn func(off, n uint64) bool) {
	for off := uint64(0); off < width; off += size {
		if !fn(off, min(size, width-off)) {
			return
		}
		// last window; stepping off again could wrap past 2^64
		if width-off <= size {
			return
		}
	}
}
