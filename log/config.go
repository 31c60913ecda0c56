package log

import (
	"io"
	"log/slog"
	"strings"
)

// Level is the minimum severity of messages that will be logged.
// It extends [slog.Level] with a Trace level below Debug.
type Level int

// Log levels, ordered from most to least verbose.
const (
	LevelTrace = Level(slog.LevelDebug) - 4
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"

	case LevelDebug:
		return "debug"

	case LevelInfo:
		return "info"

	case LevelWarn:
		return "warn"

	case LevelError:
		return "error"

	default:
		return slog.Level(l).String()
	}
}

// ParseLevel converts a level name to a [Level].
// Unrecognized names yield [DefaultLevel].
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace

	case "debug":
		return LevelDebug

	case "info":
		return LevelInfo

	case "warn", "warning":
		return LevelWarn

	case "error":
		return LevelError

	default:
		return DefaultLevel
	}
}

// Format selects the output encoding of log records.
type Format int

const (
	// FormatText is the standard slog text handler.
	FormatText Format = iota

	// FormatJSON is the standard slog JSON handler.
	FormatJSON

	// FormatPretty is a colorized text handler for terminals.
	FormatPretty
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"

	case FormatJSON:
		return "json"

	case FormatPretty:
		return "pretty"

	default:
		return "unknown"
	}
}

// ParseFormat converts a format name to a [Format].
// Unrecognized names yield [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON

	case "pretty":
		return FormatPretty

	default:
		return DefaultFormat
	}
}

// Defaults used by [Make] when no options are given.
const (
	DefaultLevel  = LevelInfo
	DefaultFormat = FormatText
)

// config holds the assembled handler configuration.
type config struct {
	w      io.Writer
	level  Level
	format Format
	source bool
}

func makeConfig(w io.Writer) config {
	return config{
		w:      w,
		level:  DefaultLevel,
		format: DefaultFormat,
	}
}

// handler constructs the slog.Handler described by the config.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     slog.Level(c.level),
		AddSource: c.source,
	}

	switch c.format {
	case FormatJSON:
		return slog.NewJSONHandler(c.w, opts)

	case FormatPretty:
		return newPrettyHandler(c.w, opts)

	default:
		return slog.NewTextHandler(c.w, opts)
	}
}

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithLevel sets the minimum level of logged messages.
func WithLevel(level Level) Option {
	return func(cfg config) config {
		cfg.level = level

		return cfg
	}
}

// WithFormat sets the output encoding of log records.
func WithFormat(format Format) Option {
	return func(cfg config) config {
		cfg.format = format

		return cfg
	}
}

// WithSource enables caller file/line annotation on each record.
func WithSource(enable bool) Option {
	return func(cfg config) config {
		cfg.source = enable

		return cfg
	}
}
