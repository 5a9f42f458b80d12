package almanac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sentinel errors for parsing and validation.
var (
	// ErrSyntax indicates a line that does not fit the grammar.
	ErrSyntax = errors.New("almanac: syntax error")

	// ErrNoSeeds indicates a missing or empty "seeds:" line.
	ErrNoSeeds = errors.New("almanac: no seeds")

	// ErrNoMaps indicates an input without any "x-to-y map:" block.
	ErrNoMaps = errors.New("almanac: no maps")

	// ErrBrokenChain indicates a map whose source category is not the
	// previous map's destination category.
	ErrBrokenChain = errors.New("almanac: map chain is broken")

	// ErrStageCount indicates an unexpected number of maps.
	ErrStageCount = errors.New("almanac: unexpected number of maps")
)

// ParseError locates a parse failure.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("almanac: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const (
	seedsPrefix = "seeds:"
	mapSuffix   = " map:"
	categorySep = "-to-"
)

// ParseString parses an almanac held in memory.
func ParseString(s string) (*Almanac, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile opens and parses path.
func ParseFile(path string) (*Almanac, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("almanac: open: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads an almanac from r. Blank lines are ignored; entry lines must
// follow a map header.
func Parse(r io.Reader) (*Almanac, error) {
	var (
		a       Almanac
		current *Map
		seen    bool
		lineNo  int
	)
	fail := func(text string, err error) error {
		return &ParseError{Line: lineNo, Text: text, Err: err}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, seedsPrefix):
			if seen {
				return nil, fail(line, fmt.Errorf("%w: duplicate seeds line", ErrSyntax))
			}
			seen = true
			nums, err := parseInts(strings.TrimPrefix(line, seedsPrefix))
			if err != nil {
				return nil, fail(line, err)
			}
			if len(nums) == 0 {
				return nil, fail(line, ErrNoSeeds)
			}
			a.Seeds = nums

		case strings.HasSuffix(line, mapSuffix):
			from, to, ok := strings.Cut(strings.TrimSuffix(line, mapSuffix), categorySep)
			if !ok || from == "" || to == "" {
				return nil, fail(line, fmt.Errorf("%w: map header must be <from>-to-<to> map:", ErrSyntax))
			}
			a.Maps = append(a.Maps, Map{From: from, To: to})
			current = &a.Maps[len(a.Maps)-1]

		default:
			if current == nil {
				return nil, fail(line, fmt.Errorf("%w: entry outside of a map", ErrSyntax))
			}
			nums, err := parseInts(line)
			if err != nil {
				return nil, fail(line, err)
			}
			if len(nums) != 3 {
				return nil, fail(line, fmt.Errorf("%w: want 3 numbers, got %d", ErrSyntax, len(nums)))
			}
			current.Entries = append(current.Entries, Entry{Destination: nums[0], Source: nums[1], Length: nums[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("almanac: read: %w", err)
	}

	// end-of-input failures point at the last line read
	if !seen {
		return nil, fail("", ErrNoSeeds)
	}
	if len(a.Maps) == 0 {
		return nil, fail("", ErrNoMaps)
	}

	return &a, nil
}

func parseInts(s string) ([]int64, error) {
	fields := strings.Fields(s)
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		out = append(out, n)
	}

	return out, nil
}
