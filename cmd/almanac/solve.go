package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/almanac/almanac"
	"github.com/katalvlaran/almanac/internal/config"
	"github.com/katalvlaran/almanac/internal/log"
	"github.com/katalvlaran/almanac/remap"
)

var errBadFlag = errors.New("invalid flag value")

// result is what solve prints.
type result struct {
	File     string `json:"file" yaml:"file"`
	Strategy string `json:"strategy" yaml:"strategy"`
	Part1    *int64 `json:"part1,omitempty" yaml:"part1,omitempty"`
	Part2    *int64 `json:"part2,omitempty" yaml:"part2,omitempty"`
	Brute    *int64 `json:"part2_pointwise,omitempty" yaml:"part2_pointwise,omitempty"`
	Elapsed  string `json:"elapsed" yaml:"elapsed"`
}

func solveCmd() *cobra.Command {
	var (
		envFile      string
		part         string
		strategy     string
		overlap      string
		brute        bool
		workers      int
		expectStages int
		output       string
	)

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve part 1 and/or part 2 for an almanac file",
		Long: `Solve reads an almanac file and prints the lowest location.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  ALMANAC_LOG_LEVEL        trace, debug, info, warn, error (default: info)
  ALMANAC_LOG_FORMAT       console, json (default: console)
  ALMANAC_STRATEGY         sweep, fixpoint (default: sweep)
  ALMANAC_OVERLAP_POLICY   reject, first (default: reject)
  ALMANAC_WORKERS          brute-force goroutines (default: 4)
  ALMANAC_EXPECT_STAGES    required number of maps, 0 to disable (default: 0)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("strategy") {
				cfg.Strategy = strategy
			}
			if flags.Changed("overlap") {
				cfg.OverlapPolicy = overlap
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("expect-stages") {
				cfg.ExpectStages = expectStages
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if part != "1" && part != "2" && part != "all" {
				return fmt.Errorf("%w: --part %q (want 1, 2 or all)", errBadFlag, part)
			}
			if output != "text" && output != "json" && output != "yaml" {
				return fmt.Errorf("%w: --output %q (want text, json or yaml)", errBadFlag, output)
			}

			logger := log.New(cmd.ErrOrStderr(), log.Format(cfg.LogFormat), cfg.LogLevel)

			start := time.Now()
			a, err := almanac.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err = a.Validate(cfg.ExpectStages); err != nil {
				return err
			}
			logger.Info().Str("file", args[0]).Int("seeds", len(a.Seeds)).Int("maps", len(a.Maps)).Msg("almanac loaded")

			opts, err := cfg.RemapOptions()
			if err != nil {
				return err
			}
			opts = append(opts, remap.WithContext(cmd.Context()))
			opts = append(opts, log.TraceOptions(logger)...)

			res := result{File: args[0], Strategy: cfg.Strategy}
			if part == "1" || part == "all" {
				v, err := a.Part1(opts...)
				if err != nil {
					return fmt.Errorf("part 1: %w", err)
				}
				res.Part1 = &v
			}
			if part == "2" || part == "all" {
				v, err := a.Part2(opts...)
				if err != nil {
					return fmt.Errorf("part 2: %w", err)
				}
				res.Part2 = &v

				if brute {
					b, err := a.Part2Pointwise(cmd.Context(), cfg.Workers)
					if err != nil {
						return fmt.Errorf("part 2 pointwise: %w", err)
					}
					res.Brute = &b
					if b != v {
						logger.Warn().Int64("intervals", v).Int64("pointwise", b).Msg("part 2 answers disagree")
					}
				}
			}
			res.Elapsed = time.Since(start).Round(time.Microsecond).String()
			logger.Info().Str("elapsed", res.Elapsed).Msg("solved")

			return writeResult(cmd.OutOrStdout(), output, res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	f.StringVar(&part, "part", "all", "Which part to solve: 1, 2 or all")
	f.StringVar(&strategy, "strategy", config.DefaultStrategy, "Split strategy: sweep or fixpoint")
	f.StringVar(&overlap, "overlap", config.DefaultOverlapPolicy, "Overlapping rules: reject or first")
	f.BoolVar(&brute, "brute", false, "Also solve part 2 value by value (small inputs only)")
	f.IntVar(&workers, "workers", config.DefaultWorkers, "Goroutines for --brute (0 = GOMAXPROCS)")
	f.IntVar(&expectStages, "expect-stages", 0, "Require exactly this many maps (0 disables the check)")
	f.StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")

	return cmd
}

func writeResult(w io.Writer, format string, res result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(res)
	}

	if res.Part1 != nil {
		fmt.Fprintf(w, "Part 1: %d\n", *res.Part1)
	}
	if res.Part2 != nil {
		fmt.Fprintf(w, "Part 2: %d\n", *res.Part2)
	}
	if res.Brute != nil {
		fmt.Fprintf(w, "Part 2 (pointwise): %d\n", *res.Brute)
	}

	return nil
}
