package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates the application logger on Stderr, keeping Stdout for
// explanations, NDJSON and JSON-RPC.
func New(level slog.Level) *slog.Logger {
	return NewWith(os.Stderr, level, FormatText)
}

// NewWith creates a logger writing to w in the given format.
// The "error" key is renamed to "err" so adapters log errors uniformly.
func NewWith(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a level. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DebugHooks logs every pipeline event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnParsed: func(ctx context.Context, e *domain.ParseEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "Parse Failed", "input", e.Input, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Parsed", "input", e.Input, "terms", len(e.Terms))
		},
		OnClassified: func(ctx context.Context, e *domain.ClassifyEvent) {
			logger.DebugContext(ctx, "Classified", "input", e.Input, "form", e.Form.Kind, "reason", e.Form.Reason)
		},
		OnSearched: func(ctx context.Context, e *domain.SearchEvent) {
			logger.DebugContext(ctx, "Searched", "b", e.B, "c", e.C, "found", e.Pair != nil, "duration", e.Duration)
		},
		OnRendered: func(ctx context.Context, e *domain.RenderEvent) {
			logger.DebugContext(ctx, "Rendered", "input", e.Input, "solved", e.Explanation.Solved, "cached", e.Cached)
		},
	}
}
