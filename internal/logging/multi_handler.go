package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler duplicates each record to every wrapped handler, so the
// stdout JSON stream and the batching DB sink see the same records.
// Sinks filter by level themselves; a failing sink does not stop the
// others from receiving the record.
type MultiHandler struct {
	sinks []slog.Handler
}

func NewMultiHandler(sinks ...slog.Handler) *MultiHandler {
	return &MultiHandler{sinks: sinks}
}

// Enabled reports whether at least one sink wants records at this level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range m.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range m.sinks {
		if !s.Enabled(ctx, record.Level) {
			continue
		}
		if err := s.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, 0, len(m.sinks))
	for _, s := range m.sinks {
		next = append(next, s.WithAttrs(attrs))
	}
	return &MultiHandler{sinks: next}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, 0, len(m.sinks))
	for _, s := range m.sinks {
		next = append(next, s.WithGroup(name))
	}
	return &MultiHandler{sinks: next}
}
