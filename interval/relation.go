package interval

import "fmt"

// Relation is the position of one interval relative to another,
// as seen by the splitter.
type Relation int

const (
	// Disjoint: no shared values.
	Disjoint Relation = iota

	// Inside: the interval lies entirely within the other (equal intervals included).
	Inside

	// StraddlesLeft: crosses only the other's start boundary.
	StraddlesLeft

	// StraddlesRight: crosses only the other's end boundary.
	StraddlesRight

	// StraddlesBoth: crosses both boundaries, i.e. strictly covers the other.
	StraddlesBoth
)

var relationNames = [...]string{
	Disjoint:       "disjoint",
	Inside:         "inside",
	StraddlesLeft:  "straddles-left",
	StraddlesRight: "straddles-right",
	StraddlesBoth:  "straddles-both",
}

// String returns a lower-case name for r.
func (r Relation) String() string {
	if r < 0 || int(r) >= len(relationNames) {
		return fmt.Sprintf("relation(%d)", int(r))
	}

	return relationNames[r]
}

// NeedsSplit reports whether a piece in relation r must be cut before it
// can be shifted as a whole.
func (r Relation) NeedsSplit() bool {
	return r == StraddlesLeft || r == StraddlesRight || r == StraddlesBoth
}

// Relate classifies iv against other.
//
// Inside is decided first, so iv == other is Inside. Otherwise exactly one
// of the three straddle predicates may hold; if several do, Relate returns
// ErrAmbiguousOverlap. If none holds the pair is Disjoint.
func (iv Interval) Relate(other Interval) (Relation, error) {
	if iv.IsContained(other) {
		return Inside, nil
	}

	rel := Disjoint
	fired := 0
	if iv.OverlapsBothSidesOf(other) {
		rel = StraddlesBoth
		fired++
	}
	if iv.OverlapsLeftOf(other) {
		rel = StraddlesLeft
		fired++
	}
	if iv.OverlapsRightOf(other) {
		rel = StraddlesRight
		fired++
	}
	if fired > 1 {
		return Disjoint, fmt.Errorf("%w: %s vs %s", ErrAmbiguousOverlap, iv, other)
	}

	return rel, nil
}
