package interval

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Sentinel errors returned by the interval package.
var (
	// ErrEmpty indicates start >= end (or a non-positive length) at construction.
	ErrEmpty = errors.New("interval: start must be less than end")

	// ErrOverflow indicates that a bound left the signed 64-bit range.
	ErrOverflow = errors.New("interval: int64 overflow")

	// ErrAmbiguousOverlap indicates that more than one straddle predicate
	// matched the same pair, which valid geometry never allows.
	ErrAmbiguousOverlap = errors.New("interval: overlap predicates are not mutually exclusive")

	// ErrNoIntervals indicates a minimum was requested over an empty set.
	ErrNoIntervals = errors.New("interval: no intervals")
)

// Interval is the half-open range [start, end) with start < end.
// The zero value is not a valid Interval; use New, FromLength or MustNew.
type Interval struct {
	start int64
	end   int64
}

// New returns [start, end) or ErrEmpty if start >= end.
func New(start, end int64) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf("%w: [%d, %d)", ErrEmpty, start, end)
	}

	return Interval{start: start, end: end}, nil
}

// FromLength returns [start, start+length).
// A non-positive length yields ErrEmpty; an end past math.MaxInt64 yields ErrOverflow.
func FromLength(start, length int64) (Interval, error) {
	if length <= 0 {
		return Interval{}, fmt.Errorf("%w: length %d at %d", ErrEmpty, length, start)
	}
	end, err := Add(start, length)
	if err != nil {
		return Interval{}, err
	}

	return Interval{start: start, end: end}, nil
}

// MustNew is like New but panics on error. Intended for literals.
func MustNew(start, end int64) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}

	return iv
}

// Start returns the inclusive lower bound.
func (iv Interval) Start() int64 { return iv.start }

// End returns the exclusive upper bound.
func (iv Interval) End() int64 { return iv.end }

// Len returns end - start as uint64 so that intervals wider than
// math.MaxInt64 still report their true size.
func (iv Interval) Len() uint64 { return uint64(iv.end - iv.start) }

// Contains reports whether start <= v < end.
func (iv Interval) Contains(v int64) bool {
	return iv.start <= v && v < iv.end
}

// IsContained reports whether iv lies entirely inside other.
func (iv Interval) IsContained(other Interval) bool {
	return iv.start >= other.start && iv.end <= other.end
}

// OverlapsLeftOf reports whether iv starts before other and ends inside it,
// crossing only other's left boundary.
func (iv Interval) OverlapsLeftOf(other Interval) bool {
	return iv.start < other.start && iv.end > other.start && iv.end <= other.end
}

// OverlapsRightOf reports whether iv starts inside other and ends after it,
// crossing only other's right boundary.
func (iv Interval) OverlapsRightOf(other Interval) bool {
	return iv.start >= other.start && iv.start < other.end && iv.end > other.end
}

// OverlapsBothSidesOf reports whether iv starts before and ends after other.
func (iv Interval) OverlapsBothSidesOf(other Interval) bool {
	return iv.start < other.start && iv.end > other.end
}

// Overlaps reports whether iv and other share at least one value.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// CanSplitAt reports whether splitting at x yields two non-empty intervals,
// i.e. start < x < end.
func (iv Interval) CanSplitAt(x int64) bool {
	return iv.start < x && x < iv.end
}

// SplitAt returns [start, x) and [x, end). If CanSplitAt(x) is false it
// returns iv, the zero Interval and false.
func (iv Interval) SplitAt(x int64) (Interval, Interval, bool) {
	if !iv.CanSplitAt(x) {
		return iv, Interval{}, false
	}

	return Interval{start: iv.start, end: x}, Interval{start: x, end: iv.end}, true
}

// OffsetBy returns [start+delta, end+delta). iv itself is unchanged.
func (iv Interval) OffsetBy(delta int64) (Interval, error) {
	start, err := Add(iv.start, delta)
	if err != nil {
		return Interval{}, fmt.Errorf("shift %s by %d: %w", iv, delta, err)
	}
	end, err := Add(iv.end, delta)
	if err != nil {
		return Interval{}, fmt.Errorf("shift %s by %d: %w", iv, delta, err)
	}

	return Interval{start: start, end: end}, nil
}

// Compare orders intervals by start, then by end.
func (iv Interval) Compare(other Interval) int {
	switch {
	case iv.start < other.start:
		return -1
	case iv.start > other.start:
		return 1
	case iv.end < other.end:
		return -1
	case iv.end > other.end:
		return 1
	}

	return 0
}

// Less reports whether iv sorts before other.
func (iv Interval) Less(other Interval) bool { return iv.Compare(other) < 0 }

// String renders iv as "[start, end)".
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.start, iv.end)
}

// Sort orders ws in place by start ascending.
func Sort(ws []Interval) {
	slices.SortFunc(ws, Interval.Compare)
}

// Min returns the interval with the smallest start.
// Ties are broken by the smaller end so the result is deterministic.
func Min(ws []Interval) (Interval, error) {
	if len(ws) == 0 {
		return Interval{}, ErrNoIntervals
	}

	return slices.MinFunc(ws, Interval.Compare), nil
}

// Add returns a+b or ErrOverflow.
func Add(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}

	return a + b, nil
}

// Sub returns a-b or ErrOverflow.
func Sub(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, a, b)
	}

	return a - b, nil
}
