// Package remap pushes sets of disjoint integer intervals through a chain of
// piecewise-linear stages and reports the lowest reachable value.
//
// 🚀 What is a stage?
//
//	A Stage is a set of Rules. A Rule says "every value inside Source moves
//	by Offset". Values outside every rule pass through unchanged. A chain
//	of stages turns a seed value into a final location.
//
//	Seed ranges may span billions of values, so the engine never maps single
//	values. It cuts each working interval at the boundaries of the rules it
//	overlaps, then shifts every piece that lies inside a rule. The cost per
//	stage is O(|working set| · |rules|), independent of range width.
//
// ✨ Key features:
//   - two split strategies with identical results:
//     Sweep       — per interval, collect every rule boundary it crosses and
//     cut once (default).
//     FixedPoint  — cut against one rule, restart the scan, repeat until no
//     piece crosses a rule boundary.
//   - post-split verification: any piece still straddling a rule aborts the
//     stage with ErrInvariant
//   - overlapping rules are rejected (RejectOverlap) or resolved by input
//     order (FirstMatch)
//   - exact int64 arithmetic; overflow is reported, never wrapped
//   - OnSplit / OnShift / OnStage hooks for tracing
//   - LowestPointwise: a brute-force errgroup oracle for small inputs
//
// ⚙️ Usage:
//
//	seeds, _ := remap.SeedsFromPairs(79, 14, 55, 13)
//	soil, _ := remap.NewStage("seed-to-soil", [3]int64{50, 98, 2}, [3]int64{52, 50, 48})
//	low, err := remap.Lowest(seeds, []remap.Stage{soil /* ... */},
//		remap.WithStrategy(remap.Sweep),
//	)
//
// Errors (sentinel):
//
//	– ErrBadRule           rule with an empty or malformed source interval.
//	– ErrOverlappingRules  two sources of one stage overlap under RejectOverlap.
//	– ErrInvariant         a piece still straddles a rule after splitting.
//	– ErrNoSeeds           nothing to map.
//	– ErrOddPairs          (start, length) list with an odd element count.
//	– ErrOptionViolation   an invalid Option was supplied.
//
// Overflow surfaces as interval.ErrOverflow wrapped with stage context.
package remap
