package logging

import (
	"context"
	"log/slog"
)

// NewMultiHandler fans records out to every handler, so a run can log to
// the terminal and to a log file at once.
func NewMultiHandler(handlers ...slog.Handler) slog.Handler {
	return multiHandler(handlers)
}

type multiHandler []slog.Handler

func (h multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes the record to every handler enabled for its level. The
// first failure is reported after the remaining handlers have run.
func (h multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, hh := range h {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(multiHandler, len(h))
	for i, hh := range h {
		next[i] = hh.WithAttrs(attrs)
	}
	return next
}

func (h multiHandler) WithGroup(name string) slog.Handler {
	next := make(multiHandler, len(h))
	for i, hh := range h {
		next[i] = hh.WithGroup(name)
	}
	return next
}
