package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout duplicates log records to every target handler. Used to pair the
// stdout JSON handler with the Postgres error sink, so a failing database
// write never silences the console stream.
type Fanout struct {
	targets []slog.Handler
}

func NewFanout(targets ...slog.Handler) *Fanout {
	return &Fanout{targets: targets}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, target := range f.targets {
		if target.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every enabled target. Delivery continues past
// individual failures; the joined error is returned at the end.
func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, target := range f.targets {
		if !target.Enabled(ctx, record.Level) {
			continue
		}
		if err := target.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, 0, len(f.targets))
	for _, target := range f.targets {
		next = append(next, target.WithAttrs(attrs))
	}
	return &Fanout{targets: next}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, 0, len(f.targets))
	for _, target := range f.targets {
		next = append(next, target.WithGroup(name))
	}
	return &Fanout{targets: next}
}
