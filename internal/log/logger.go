// Package log builds the zerolog logger used by the CLI and adapts it to the
// remap tracing hooks.
package log

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/almanac/interval"
	"github.com/katalvlaran/almanac/remap"
)

// Format selects the output encoding.
type Format string

// Supported formats.
const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// New returns a logger writing to w at the given level ("info" if unknown).
func New(w io.Writer, format Format, level string) zerolog.Logger {
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}

	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to zerolog; unknown names yield info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// TraceOptions returns remap hooks that log every split, shift and finished
// stage at debug level.
func TraceOptions(l zerolog.Logger) []remap.Option {
	return []remap.Option{
		remap.WithOnSplit(func(piece, rule interval.Interval, rel interval.Relation) {
			l.Debug().Stringer("piece", piece).Stringer("rule", rule).Stringer("relation", rel).Msg("split")
		}),
		remap.WithOnShift(func(from, to interval.Interval, offset int64) {
			l.Debug().Stringer("from", from).Stringer("to", to).Int64("offset", offset).Msg("shift")
		}),
		remap.WithOnStage(func(index int, stage remap.Stage, out []interval.Interval) {
			l.Debug().Int("stage", index).Str("name", stage.Name).Int("rules", len(stage.Rules)).
				Int("intervals", len(out)).Msg("stage applied")
		}),
	}
}
