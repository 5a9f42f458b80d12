// Package almanac is a small toolkit for mapping huge integer ranges through
// chains of piecewise-linear range maps, built around the seed almanac
// puzzle.
//
// 🚀 What problem does it solve?
//
//	A seed range such as [2276375722, 2436523854) passes through seven maps
//	(seed → soil → … → location). Mapping every value costs minutes; mapping
//	intervals costs microseconds. This module does the latter and keeps the
//	former around as a cross-check.
//
// Under the hood, everything is organized under a few packages:
//
//	interval/        — half-open [start, end) value type, overlap predicates, checked arithmetic
//	remap/           — rules, stages, split-and-shift engine, pipeline, brute-force oracle
//	almanac/         — text parser and part 1 / part 2 solvers
//	cmd/almanac/     — command-line front end (cobra)
//	internal/config/ — .env + ALMANAC_* environment configuration
//	internal/log/    — zerolog setup and remap tracing hooks
//
// Quick example:
//
//	seeds, _ := remap.SeedsFromPairs(79, 14, 55, 13)
//	low, err := remap.Lowest(seeds, stages)
//
//	go install github.com/katalvlaran/almanac/cmd/almanac@latest
//	almanac solve input.txt --part all -o yaml
package almanac
