package almanac

import (
	"context"
	"fmt"

	"github.com/katalvlaran/almanac/interval"
	"github.com/katalvlaran/almanac/remap"
)

// Almanac is a parsed input: seed numbers and the chain of maps.
type Almanac struct {
	Seeds []int64
	Maps  []Map
}

// Map converts one category into the next, e.g. seed → soil.
type Map struct {
	From    string
	To      string
	Entries []Entry
}

// Entry is one "destination source length" line.
type Entry struct {
	Destination int64
	Source      int64
	Length      int64
}

// Name returns "<from>-to-<to>".
func (m Map) Name() string { return m.From + categorySep + m.To }

// Stage converts m into a remap.Stage.
func (m Map) Stage() (remap.Stage, error) {
	triples := make([][3]int64, len(m.Entries))
	for i, e := range m.Entries {
		triples[i] = [3]int64{e.Destination, e.Source, e.Length}
	}

	return remap.NewStage(m.Name(), triples...)
}

// Validate checks that consecutive maps link up (maps[i].To == maps[i+1].From)
// and, if expectStages > 0, that there are exactly that many maps.
func (a *Almanac) Validate(expectStages int) error {
	if expectStages > 0 && len(a.Maps) != expectStages {
		return fmt.Errorf("%w: got %d, want %d", ErrStageCount, len(a.Maps), expectStages)
	}
	for i := 1; i < len(a.Maps); i++ {
		if a.Maps[i-1].To != a.Maps[i].From {
			return fmt.Errorf("%w: %s is followed by %s", ErrBrokenChain, a.Maps[i-1].Name(), a.Maps[i].Name())
		}
	}

	return nil
}

// Stages converts every map, in order.
func (a *Almanac) Stages() ([]remap.Stage, error) {
	stages := make([]remap.Stage, 0, len(a.Maps))
	for _, m := range a.Maps {
		st, err := m.Stage()
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}

	return stages, nil
}

// SeedRanges reads Seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]interval.Interval, error) {
	return remap.SeedsFromPairs(a.Seeds...)
}

// Part1 returns the lowest location reached by any single seed number.
// Only the OverlapPolicy and context of opts apply.
func (a *Almanac) Part1(opts ...remap.Option) (int64, error) {
	stages, err := a.Stages()
	if err != nil {
		return 0, err
	}

	return remap.LowestPoint(a.Seeds, stages, opts...)
}

// Part2 returns the lowest location reached by any seed range.
func (a *Almanac) Part2(opts ...remap.Option) (int64, error) {
	seeds, stages, err := a.rangeInputs()
	if err != nil {
		return 0, err
	}

	return remap.Lowest(seeds, stages, opts...)
}

// Part2Pointwise answers part 2 by mapping every seed value individually.
// Only practical for small inputs.
func (a *Almanac) Part2Pointwise(ctx context.Context, workers int) (int64, error) {
	seeds, stages, err := a.rangeInputs()
	if err != nil {
		return 0, err
	}

	return remap.LowestPointwise(ctx, seeds, stages, workers)
}

func (a *Almanac) rangeInputs() ([]interval.Interval, []remap.Stage, error) {
	seeds, err := a.SeedRanges()
	if err != nil {
		return nil, nil, err
	}
	stages, err := a.Stages()
	if err != nil {
		return nil, nil, err
	}

	return seeds, stages, nil
}
