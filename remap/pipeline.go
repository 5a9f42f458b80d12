package remap

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/almanac/interval"
)

// Run applies stages in order, feeding each stage the previous output.
// seeds is not modified; every stage produces a fresh working set.
func Run(seeds []interval.Interval, stages []Stage, opts ...Option) ([]interval.Interval, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	if err = checkWorkingSet(seeds); err != nil {
		return nil, err
	}

	ws := slices.Clone(seeds)
	for i, st := range stages {
		if err = cfg.Ctx.Err(); err != nil {
			return nil, err
		}
		ws, err = apply(ws, st, &cfg)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, st.Name, err)
		}
		cfg.OnStage(i, st, ws)
	}

	return ws, nil
}

// checkWorkingSet rejects empty intervals, which only the zero Interval{}
// can produce.
func checkWorkingSet(ws []interval.Interval) error {
	for i, iv := range ws {
		if iv.Start() >= iv.End() {
			return fmt.Errorf("working set %d: %w: %s", i, interval.ErrEmpty, iv)
		}
	}

	return nil
}

// Lowest runs the pipeline and returns the smallest start of the final
// working set.
func Lowest(seeds []interval.Interval, stages []Stage, opts ...Option) (int64, error) {
	if len(seeds) == 0 {
		return 0, ErrNoSeeds
	}
	ws, err := Run(seeds, stages, opts...)
	if err != nil {
		return 0, err
	}
	low, err := interval.Min(ws)
	if err != nil {
		return 0, err
	}

	return low.Start(), nil
}

// SeedsFromPairs turns a flat (start, length, start, length, ...) list into
// intervals.
func SeedsFromPairs(pairs ...int64) ([]interval.Interval, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrOddPairs, len(pairs))
	}
	seeds := make([]interval.Interval, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		iv, err := interval.FromLength(pairs[i], pairs[i+1])
		if err != nil {
			return nil, fmt.Errorf("seed pair %d: %w", i/2, err)
		}
		seeds = append(seeds, iv)
	}

	return seeds, nil
}

// MapPoint sends a single value through every stage. Within a stage the
// first rule containing the value wins.
func MapPoint(v int64, stages []Stage) (int64, error) {
	var err error
	for _, st := range stages {
		if v, err = st.Map(v); err != nil {
			return 0, fmt.Errorf("stage %s: %w", st.Name, err)
		}
	}

	return v, nil
}

// LowestPoint maps every value and returns the smallest result.
// Stages are validated under the configured OverlapPolicy first, so the
// point and interval paths reject the same inputs.
func LowestPoint(values []int64, stages []Stage, opts ...Option) (int64, error) {
	if len(values) == 0 {
		return 0, ErrNoSeeds
	}
	cfg, err := buildOptions(opts)
	if err != nil {
		return 0, err
	}
	for i, st := range stages {
		if err = st.Validate(cfg.OverlapPolicy); err != nil {
			return 0, fmt.Errorf("stage %d (%s): %w", i, st.Name, err)
		}
	}
	if err = cfg.Ctx.Err(); err != nil {
		return 0, err
	}

	low := int64(0)
	for i, v := range values {
		loc, err := MapPoint(v, stages)
		if err != nil {
			return 0, err
		}
		if i == 0 || loc < low {
			low = loc
		}
	}

	return low, nil
}
