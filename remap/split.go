package remap

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/almanac/interval"
)

// Apply maps the working set ws through one stage and returns the next
// working set. ws is not modified.
//
// Steps:
//  1. Validate the stage under the configured OverlapPolicy.
//  2. Split every interval at each rule boundary it crosses (Sweep or FixedPoint).
//  3. Verify that every piece is Disjoint from or Inside each rule (ErrInvariant).
//  4. Shift each piece by the first rule that contains it; others pass through.
//
// Complexity (n = |ws|, r = |rules|, p = output pieces):
//   - Sweep:      O(n·r + p·r) time, O(p) extra space.
//   - FixedPoint: O(p²·r) time in the worst case.
func Apply(ws []interval.Interval, stage Stage, opts ...Option) ([]interval.Interval, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err = checkWorkingSet(ws); err != nil {
		return nil, err
	}

	return apply(ws, stage, &cfg)
}

func apply(ws []interval.Interval, stage Stage, cfg *Options) ([]interval.Interval, error) {
	if err := stage.Validate(cfg.OverlapPolicy); err != nil {
		return nil, err
	}

	var (
		pieces []interval.Interval
		err    error
	)
	switch cfg.Strategy {
	case FixedPoint:
		pieces, err = splitFixedPoint(ws, stage.Rules, cfg)
	default:
		pieces, err = splitSweep(ws, stage.Rules, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err = verify(pieces, stage.Rules); err != nil {
		return nil, err
	}

	return shift(pieces, stage.Rules, cfg)
}

// splitSweep cuts each interval once, at the sorted distinct rule
// boundaries lying strictly inside it.
func splitSweep(ws []interval.Interval, rules []Rule, cfg *Options) ([]interval.Interval, error) {
	out := make([]interval.Interval, 0, len(ws))
	points := make([]int64, 0, 2*len(rules)) // reused per interval

	for _, t := range ws {
		// Collect every rule boundary strictly inside t
		points = points[:0]
		for _, r := range rules {
			rel, err := t.Relate(r.Source)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvariant, err)
			}
			if !rel.NeedsSplit() {
				continue
			}
			cfg.OnSplit(t, r.Source, rel)
			if t.CanSplitAt(r.Source.Start()) {
				points = append(points, r.Source.Start())
			}
			if t.CanSplitAt(r.Source.End()) {
				points = append(points, r.Source.End())
			}
		}
		// Order and dedupe; shared boundaries cut once
		slices.Sort(points)
		points = slices.Compact(points)

		// Peel pieces off the left, keeping the remainder in rest
		rest := t
		for _, p := range points {
			left, right, ok := rest.SplitAt(p)
			if !ok {
				return nil, fmt.Errorf("%w: cannot cut %s at %d", ErrInvariant, rest, p)
			}
			out = append(out, left)
			rest = right
		}
		out = append(out, rest) // tail, or t itself when nothing cut
	}

	return out, nil
}

// splitFixedPoint repeats: find the first (piece, rule) pair that needs a
// cut, replace the piece by its 2 or 3 parts at the end of the pool, and
// rescan from the start. It stops when a full pass makes no cut.
func splitFixedPoint(ws []interval.Interval, rules []Rule, cfg *Options) ([]interval.Interval, error) {
	pool := slices.Clone(ws) // caller's slice stays untouched

	for cut := true; cut; {
		cut = false
		// Each pass may be long on wide inputs; honor cancellation
		if err := cfg.Ctx.Err(); err != nil {
			return nil, err
		}

	scan:
		for i, t := range pool {
			for _, r := range rules {
				rel, err := t.Relate(r.Source)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrInvariant, err)
				}
				if !rel.NeedsSplit() {
					continue
				}
				cfg.OnSplit(t, r.Source, rel)

				// Replace t by its parts at the tail of the pool
				parts, err := cutAround(t, r.Source, rel)
				if err != nil {
					return nil, err
				}
				pool = append(slices.Delete(pool, i, i+1), parts...)

				// pool changed under the range; start over
				cut = true
				break scan
			}
		}
	}

	return pool, nil
}

// cutAround splits t at whichever boundaries of r lie inside it:
//   - StraddlesBoth:  [t.start, r.start) [r.start, r.end) [r.end, t.end)
//   - StraddlesLeft:  [t.start, r.start) [r.start, t.end)
//   - StraddlesRight: [t.start, r.end)   [r.end, t.end)
func cutAround(t, r interval.Interval, rel interval.Relation) ([]interval.Interval, error) {
	switch rel {
	case interval.StraddlesBoth:
		head, rest, ok1 := t.SplitAt(r.Start())
		mid, tail, ok2 := rest.SplitAt(r.End())
		if ok1 && ok2 {
			return []interval.Interval{head, mid, tail}, nil
		}
	case interval.StraddlesLeft:
		if head, tail, ok := t.SplitAt(r.Start()); ok {
			return []interval.Interval{head, tail}, nil
		}
	case interval.StraddlesRight:
		if head, tail, ok := t.SplitAt(r.End()); ok {
			return []interval.Interval{head, tail}, nil
		}
	}

	return nil, fmt.Errorf("%w: cannot cut %s around %s (%s)", ErrInvariant, t, r, rel)
}

// verify checks the split fixed point: no piece may straddle any rule.
func verify(pieces []interval.Interval, rules []Rule) error {
	for _, p := range pieces {
		for _, r := range rules {
			rel, err := p.Relate(r.Source)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvariant, err)
			}
			if rel.NeedsSplit() {
				return fmt.Errorf("%w: piece %s %s rule %s", ErrInvariant, p, rel, r.Source)
			}
		}
	}

	return nil
}

// shift moves each piece by the first rule containing it.
func shift(pieces []interval.Interval, rules []Rule, cfg *Options) ([]interval.Interval, error) {
	out := make([]interval.Interval, len(pieces))
	for i, p := range pieces {
		out[i] = p // identity unless a rule claims p
		for _, r := range rules {
			if !p.IsContained(r.Source) {
				continue
			}
			moved, err := p.OffsetBy(r.Offset)
			if err != nil {
				return nil, err
			}
			cfg.OnShift(p, moved, r.Offset)
			out[i] = moved
			break // first containing rule wins
		}
	}

	return out, nil
}
