// Package almanac reads the seed almanac text format and answers both
// puzzle parts with the remap engine.
//
// Format:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
//	soil-to-fertilizer map:
//	...
//
// Each map line is "destination source length". Part 1 treats every seed
// number as a single value; part 2 reads the seeds as (start, length) pairs.
package almanac
