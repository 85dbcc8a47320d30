// Package logging adapts optional slog output for the parsing and
// loading components. Components embed a Sink so logging costs
// nothing when no logger was configured.
package logging

import (
	"context"
	"log/slog"
)

// TraceLevel sits one notch below slog.LevelDebug. It carries
// per-item output (individual tokens, OID nodes, backtracking steps)
// that would drown a debug log. Enable it with a handler configured
// for slog.Level(-8) or lower.
const TraceLevel = slog.LevelDebug - 4

// Sink emits structured records to an optional slog.Logger. The zero
// Sink discards everything, so it can be embedded unconditionally.
type Sink struct {
	Out *slog.Logger
}

// Active reports whether records at the given level reach a handler.
// Use it to guard attribute construction in hot paths.
func (s *Sink) Active(level slog.Level) bool {
	return s.Out != nil && s.Out.Enabled(context.Background(), level)
}

// Emit writes one record when a handler accepts the level.
func (s *Sink) Emit(level slog.Level, msg string, attrs ...slog.Attr) {
	if !s.Active(level) {
		return
	}
	s.Out.LogAttrs(context.Background(), level, msg, attrs...)
}

// Tracing reports whether per-item trace output is enabled.
func (s *Sink) Tracing() bool {
	return s.Active(TraceLevel)
}

// Trace emits one per-item trace record.
func (s *Sink) Trace(msg string, attrs ...slog.Attr) {
	s.Emit(TraceLevel, msg, attrs...)
}

// Tagged derives a child logger tagged with the originating
// subsystem, or nil when there is no parent to derive from.
func Tagged(parent *slog.Logger, subsystem string) *slog.Logger {
	if parent == nil {
		return nil
	}
	return parent.With(slog.String("subsystem", subsystem))
}
