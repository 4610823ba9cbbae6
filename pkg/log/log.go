// Package log builds nepo's [slog.Handler] and carries the active logger
// through a [context.Context], so that lower layers log with the attributes
// (mode, association) the CLI has already resolved.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/termenv"

	charmlog "github.com/charmbracelet/log"
)

// Format selects the handler built by [NewHandler].
type Format string

const (
	// FormatText is human-readable output through charmbracelet/log.
	FormatText Format = "text"
	// FormatJSON is one JSON object per record.
	FormatJSON Format = "json"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")

	// Levels lists the accepted level names, most severe first.
	Levels = []string{"error", "warn", "info", "debug"}
	// Formats lists the accepted format names.
	Formats = []string{string(FormatText), string(FormatJSON)}
)

var levelNames = map[string]slog.Level{
	"error":   slog.LevelError,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"info":    slog.LevelInfo,
	"debug":   slog.LevelDebug,
}

type loggerKey struct{}

// ParseLevel converts a level name, ignoring case.
func ParseLevel(name string) (slog.Level, error) {
	lvl, ok := levelNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}

	return lvl, nil
}

// ParseFormat converts a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// NewHandler returns a handler writing records at level or above to w.
// Source locations are only reported at debug level.
func NewHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	if f == FormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: lvl <= slog.LevelDebug,
			Level:     lvl,
		}), nil
	}

	//nolint:gosec // G115: bounded by levelNames.
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(int32(lvl)),
		ReportTimestamp: true,
		ReportCaller:    lvl <= slog.LevelDebug,
		TimeFormat:      time.TimeOnly,
	})
	logger.SetColorProfile(termenv.NewOutput(w).ColorProfile())

	return logger, nil
}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or [slog.Default].
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}

// With returns a copy of ctx whose logger also records attrs.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	return NewContext(ctx, FromContext(ctx).With(args...))
}
