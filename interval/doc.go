// Package interval provides the half-open integer Interval used by the
// range remapper.
//
// 🚀 What is an Interval?
//
//	A run of consecutive int64 values written [start, end). The start is
//	included, the end is not, and start < end always holds, so an Interval
//	is never empty.
//
//	  [3, 7)  = {3, 4, 5, 6}
//
// ✨ Key features:
//   - immutable value type; OffsetBy returns a new Interval
//   - overflow-checked construction and shifting (ErrOverflow)
//   - the four predicates the splitter needs: IsContained,
//     OverlapsLeftOf, OverlapsRightOf, OverlapsBothSidesOf
//   - Relate folds those predicates into one Relation and fails with
//     ErrAmbiguousOverlap if more than one straddle predicate fires
//
// Geometry of Relate(t, r) for a piece t against a rule r:
//
//	r               :     |========|
//	Inside          :       |----|
//	StraddlesLeft   :  |-----|
//	StraddlesRight  :         |-------|
//	StraddlesBoth   :   |--------------|
//	Disjoint        : |--|          |--|
//
// ⚙️ Usage:
//
//	seed, err := interval.FromLength(79, 14) // [79, 93)
//	if err != nil {
//		return err
//	}
//	rule := interval.MustNew(50, 98)
//	rel, _ := seed.Relate(rule) // interval.Inside
//	moved, err := seed.OffsetBy(2)
//
// Complexity: every operation is O(1), except Sort (O(n log n)) and
// Min (O(n)).
package interval
