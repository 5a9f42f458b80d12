package remap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/almanac/interval"
)

// TestVerify_DetectsStraddlingPiece feeds an unsplit pool straight into the
// fixed-point check.
func TestVerify_DetectsStraddlingPiece(t *testing.T) {
	rules := []Rule{{Source: interval.MustNew(5, 15), Offset: 1}}

	err := verify([]interval.Interval{interval.MustNew(0, 10)}, rules)
	require.ErrorIs(t, err, ErrInvariant)

	err = verify([]interval.Interval{interval.MustNew(0, 5), interval.MustNew(5, 10)}, rules)
	require.NoError(t, err)
}

// TestSplit_PartitionPreserving checks that both splitters return pairwise
// disjoint pieces covering exactly the input.
func TestSplit_PartitionPreserving(t *testing.T) {
	ws := []interval.Interval{interval.MustNew(0, 30), interval.MustNew(40, 70), interval.MustNew(90, 95)}
	rules := []Rule{
		{Source: interval.MustNew(25, 45), Offset: 3},
		{Source: interval.MustNew(50, 55), Offset: -3},
		{Source: interval.MustNew(60, 100), Offset: 9},
		{Source: interval.MustNew(2, 4), Offset: 1},
	}
	cfg := DefaultOptions()

	for name, split := range map[string]func([]interval.Interval, []Rule, *Options) ([]interval.Interval, error){
		"sweep":    splitSweep,
		"fixpoint": splitFixedPoint,
	} {
		t.Run(name, func(t *testing.T) {
			pieces, err := split(ws, rules, &cfg)
			require.NoError(t, err)
			require.NoError(t, verify(pieces, rules))

			interval.Sort(pieces)
			for i := 1; i < len(pieces); i++ {
				require.False(t, pieces[i-1].Overlaps(pieces[i]), "%s overlaps %s", pieces[i-1], pieces[i])
			}

			var in, out uint64
			for _, iv := range ws {
				in += iv.Len()
			}
			for _, p := range pieces {
				out += p.Len()
				covered := false
				for _, iv := range ws {
					covered = covered || p.IsContained(iv)
				}
				require.True(t, covered, "piece %s outside the input", p)
			}
			require.Equal(t, in, out)
			require.Equal(t, []interval.Interval{
				interval.MustNew(0, 2), interval.MustNew(2, 4), interval.MustNew(4, 25), interval.MustNew(25, 30),
				interval.MustNew(40, 45), interval.MustNew(45, 50), interval.MustNew(50, 55), interval.MustNew(55, 60),
				interval.MustNew(60, 70), interval.MustNew(90, 95),
			}, pieces)
		})
	}
}

// TestCutAround_RejectsNonStraddling guards the fixed-point cutter.
func TestCutAround_RejectsNonStraddling(t *testing.T) {
	_, err := cutAround(interval.MustNew(0, 5), interval.MustNew(10, 20), interval.StraddlesLeft)
	require.ErrorIs(t, err, ErrInvariant)
}

// TestForEachBatch_CoversWidth checks window layout, early stop and that the
// full uint64 width terminates instead of wrapping.
func TestForEachBatch_CoversWidth(t *testing.T) {
	type window struct{ off, n uint64 }
	collect := func(width, size uint64, limit int) []window {
		var got []window
		forEachBatch(width, size, func(off, n uint64) bool {
			got = append(got, window{off, n})
			return len(got) < limit
		})
		return got
	}

	require.Equal(t, []window{{0, 4}, {4, 4}, {8, 2}}, collect(10, 4, 10))
	require.Equal(t, []window{{0, 4}, {4, 4}}, collect(8, 4, 10))
	require.Empty(t, collect(0, 4, 10))
	require.Equal(t, []window{{0, 4}}, collect(10, 4, 1), "fn returning false stops the walk")

	half := uint64(1) << 63
	require.Equal(t, []window{{0, half}, {half, half - 1}}, collect(math.MaxUint64, half, 10))
}
