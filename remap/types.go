package remap

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/almanac/interval"
)

// Sentinel errors for remapping.
var (
	// ErrBadRule indicates a rule whose source interval is empty or malformed.
	ErrBadRule = errors.New("remap: bad rule")

	// ErrOverlappingRules indicates two source intervals of one stage overlap.
	ErrOverlappingRules = errors.New("remap: overlapping rules in stage")

	// ErrInvariant indicates a piece still straddles a rule after splitting.
	ErrInvariant = errors.New("remap: split invariant violated")

	// ErrNoSeeds indicates an empty seed list.
	ErrNoSeeds = errors.New("remap: no seeds")

	// ErrOddPairs indicates a (start, length) list with an odd number of values.
	ErrOddPairs = errors.New("remap: seed pairs must have even length")

	// ErrOptionViolation is returned when an invalid Option was supplied.
	ErrOptionViolation = errors.New("remap: invalid option supplied")
)

// Rule moves every value inside Source by Offset.
type Rule struct {
	Source interval.Interval
	Offset int64
}

// NewRule converts an almanac triple into a Rule: source
// [sourceStart, sourceStart+length), offset destinationStart-sourceStart.
func NewRule(destinationStart, sourceStart, length int64) (Rule, error) {
	if length <= 0 {
		return Rule{}, fmt.Errorf("%w: length %d (dst=%d src=%d)", ErrBadRule, length, destinationStart, sourceStart)
	}
	src, err := interval.FromLength(sourceStart, length)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %w", ErrBadRule, err)
	}
	offset, err := interval.Sub(destinationStart, sourceStart)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: offset: %w", ErrBadRule, err)
	}
	// the destination range must fit as well
	if _, err = src.OffsetBy(offset); err != nil {
		return Rule{}, fmt.Errorf("%w: %w", ErrBadRule, err)
	}

	return Rule{Source: src, Offset: offset}, nil
}

// Target returns the destination interval of r.
func (r Rule) Target() (interval.Interval, error) {
	return r.Source.OffsetBy(r.Offset)
}

// String renders r as "[a, b) +offset".
func (r Rule) String() string {
	return fmt.Sprintf("%s %+d", r.Source, r.Offset)
}

// Stage is one level of the pipeline.
type Stage struct {
	Name  string
	Rules []Rule
}

// NewStage builds a Stage from almanac (destination, source, length) triples.
func NewStage(name string, triples ...[3]int64) (Stage, error) {
	st := Stage{Name: name, Rules: make([]Rule, 0, len(triples))}
	for i, tr := range triples {
		r, err := NewRule(tr[0], tr[1], tr[2])
		if err != nil {
			return Stage{}, fmt.Errorf("stage %q rule %d: %w", name, i, err)
		}
		st.Rules = append(st.Rules, r)
	}

	return st, nil
}

// Validate checks every rule and, under RejectOverlap, that no two sources overlap.
func (s Stage) Validate(policy OverlapPolicy) error {
	for i, r := range s.Rules {
		if r.Source.Start() >= r.Source.End() {
			return fmt.Errorf("%w: stage %q rule %d has empty source", ErrBadRule, s.Name, i)
		}
	}
	if policy == FirstMatch {
		return nil
	}

	// After sorting by start, any overlap shows up between neighbours
	sources := s.sources()
	interval.Sort(sources)
	for i := 1; i < len(sources); i++ {
		if sources[i-1].Overlaps(sources[i]) {
			return fmt.Errorf("%w: stage %q: %s and %s", ErrOverlappingRules, s.Name, sources[i-1], sources[i])
		}
	}

	return nil
}

// Map returns v shifted by the first rule containing it, or v unchanged.
func (s Stage) Map(v int64) (int64, error) {
	for _, r := range s.Rules {
		if r.Source.Contains(v) {
			return interval.Add(v, r.Offset)
		}
	}

	return v, nil
}

// Strategy selects the splitting algorithm.
type Strategy int

const (
	// Sweep cuts each interval once at the sorted set of rule boundaries it crosses.
	Sweep Strategy = iota

	// FixedPoint cuts against one rule at a time and rescans the pool after
	// every cut until no piece crosses a boundary.
	FixedPoint
)

// String returns "sweep" or "fixpoint".
func (s Strategy) String() string {
	switch s {
	case Sweep:
		return "sweep"
	case FixedPoint:
		return "fixpoint"
	}

	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "sweep", "":
		return Sweep, nil
	case "fixpoint", "fixed-point":
		return FixedPoint, nil
	}

	return Sweep, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
}

// OverlapPolicy decides what happens when two rules of a stage overlap.
type OverlapPolicy int

const (
	// RejectOverlap fails the stage with ErrOverlappingRules.
	RejectOverlap OverlapPolicy = iota

	// FirstMatch accepts the stage; a piece inside several rules is shifted
	// by the earliest one in input order.
	FirstMatch
)

// String returns "reject" or "first".
func (p OverlapPolicy) String() string {
	switch p {
	case RejectOverlap:
		return "reject"
	case FirstMatch:
		return "first"
	}

	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseOverlapPolicy is the inverse of OverlapPolicy.String.
func ParseOverlapPolicy(name string) (OverlapPolicy, error) {
	switch name {
	case "reject", "":
		return RejectOverlap, nil
	case "first", "first-match":
		return FirstMatch, nil
	}

	return RejectOverlap, fmt.Errorf("%w: unknown overlap policy %q", ErrOptionViolation, name)
}

// Option configures Apply, Run and Lowest.
// Invalid values are recorded and surface as ErrOptionViolation.
type Option func(*Options)

// Options holds the settings and hooks of one remapping run.
type Options struct {
	// Ctx is checked between stages and between fixed-point passes.
	Ctx context.Context

	// Strategy selects the splitting algorithm.
	Strategy Strategy

	// OverlapPolicy governs stages whose rules overlap.
	OverlapPolicy OverlapPolicy

	// OnSplit is called when piece must be cut at rule's boundaries.
	OnSplit func(piece, rule interval.Interval, rel interval.Relation)

	// OnShift is called for every piece moved by a rule.
	OnShift func(from, to interval.Interval, offset int64)

	// OnStage is called after a stage completes with its output working set.
	// The slice must not be retained or modified.
	OnStage func(index int, stage Stage, out []interval.Interval)

	err error
}

// DefaultOptions returns:
//   - context.Background()
//   - Sweep strategy
//   - RejectOverlap policy
//   - no-op hooks
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Strategy:      Sweep,
		OverlapPolicy: RejectOverlap,
		OnSplit:       func(interval.Interval, interval.Interval, interval.Relation) {},
		OnShift:       func(interval.Interval, interval.Interval, int64) {},
		OnStage:       func(int, Stage, []interval.Interval) {},
	}
}

// WithContext sets the cancellation context. A nil ctx is an option violation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithStrategy selects Sweep or FixedPoint.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s != Sweep && s != FixedPoint {
			o.err = fmt.Errorf("%w: strategy %d", ErrOptionViolation, int(s))
			return
		}
		o.Strategy = s
	}
}

// WithOverlapPolicy selects RejectOverlap or FirstMatch.
func WithOverlapPolicy(p OverlapPolicy) Option {
	return func(o *Options) {
		if p != RejectOverlap && p != FirstMatch {
			o.err = fmt.Errorf("%w: overlap policy %d", ErrOptionViolation, int(p))
			return
		}
		o.OverlapPolicy = p
	}
}

// WithOnSplit installs a split hook. nil restores the no-op.
func WithOnSplit(fn func(piece, rule interval.Interval, rel interval.Relation)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSplit = fn
		}
	}
}

// WithOnShift installs a shift hook. nil restores the no-op.
func WithOnShift(fn func(from, to interval.Interval, offset int64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnShift = fn
		}
	}
}

// WithOnStage installs a per-stage hook. nil restores the no-op.
func WithOnStage(fn func(index int, stage Stage, out []interval.Interval)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStage = fn
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return cfg, cfg.err
	}

	return cfg, nil
}

// sources returns a copy of the stage's source intervals in rule order.
func (s Stage) sources() []interval.Interval {
	out := make([]interval.Interval, len(s.Rules))
	for i, r := range s.Rules {
		out[i] = r.Source
	}

	return out
}

// Clone returns a deep copy of s.
func (s Stage) Clone() Stage {
	return Stage{Name: s.Name, Rules: slices.Clone(s.Rules)}
}
