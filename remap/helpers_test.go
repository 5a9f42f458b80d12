package remap_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/almanac/interval"
	"github.com/katalvlaran/almanac/remap"
)

// exampleTriples is the seven-stage sample almanac, one slice per stage.
var exampleTriples = []struct {
	name    string
	triples [][3]int64
}{
	{"seed-to-soil", [][3]int64{{50, 98, 2}, {52, 50, 48}}},
	{"soil-to-fertilizer", [][3]int64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
	{"fertilizer-to-water", [][3]int64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
	{"water-to-light", [][3]int64{{88, 18, 7}, {18, 25, 70}}},
	{"light-to-temperature", [][3]int64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
	{"temperature-to-humidity", [][3]int64{{0, 69, 1}, {1, 0, 69}}},
	{"humidity-to-location", [][3]int64{{60, 56, 37}, {56, 93, 4}}},
}

// exampleStages builds the sample almanac stages.
func exampleStages(t testing.TB) []remap.Stage {
	t.Helper()
	stages := make([]remap.Stage, 0, len(exampleTriples))
	for _, e := range exampleTriples {
		st, err := remap.NewStage(e.name, e.triples...)
		require.NoError(t, err)
		stages = append(stages, st)
	}

	return stages
}

// exampleSeeds returns the sample seed ranges 79+14 and 55+13.
func exampleSeeds(t testing.TB) []interval.Interval {
	t.Helper()
	seeds, err := remap.SeedsFromPairs(79, 14, 55, 13)
	require.NoError(t, err)

	return seeds
}

// randomStage draws up to maxRules pairwise-disjoint rules inside [0, domain)
// with offsets in [-domain/2, domain/2].
func randomStage(rng *rand.Rand, name string, domain int64, maxRules int) remap.Stage {
	cuts := make([]int64, 0, 2*maxRules)
	for i := 0; i < 2*maxRules; i++ {
		cuts = append(cuts, rng.Int63n(domain))
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	st := remap.Stage{Name: name}
	for i := 0; i+1 < len(cuts); i += 2 {
		st.Rules = append(st.Rules, remap.Rule{
			Source: interval.MustNew(cuts[i], cuts[i+1]),
			Offset: rng.Int63n(domain+1) - domain/2,
		})
	}
	rng.Shuffle(len(st.Rules), func(i, j int) { st.Rules[i], st.Rules[j] = st.Rules[j], st.Rules[i] })

	return st
}

// randomSeeds draws up to n pairwise-disjoint intervals inside [0, domain).
func randomSeeds(rng *rand.Rand, domain int64, n int) []interval.Interval {
	st := randomStage(rng, "seeds", domain, n)
	seeds := make([]interval.Interval, 0, len(st.Rules))
	for _, r := range st.Rules {
		seeds = append(seeds, r.Source)
	}
	if len(seeds) == 0 {
		seeds = append(seeds, interval.MustNew(0, domain))
	}

	return seeds
}

// expand lists every value covered by ws, sorted, duplicates kept.
func expand(ws []interval.Interval) []int64 {
	var out []int64
	for _, iv := range ws {
		for v := iv.Start(); v < iv.End(); v++ {
			out = append(out, v)
		}
	}
	slices.Sort(out)

	return out
}

// sorted returns a sorted copy of ws.
func sorted(ws []interval.Interval) []interval.Interval {
	out := slices.Clone(ws)
	interval.Sort(out)

	return out
}
