package core

import (
	"context"
	"log/slog"
)

// Persist is the load/save contract shared by every persisted aggregate.
type Persist interface {
	// Load hydrates the aggregate from its storage. It never fails: when the
	// storage cannot provide a valid payload the aggregate is reset to its
	// defaults and the outcome says so.
	Load(ctx context.Context) LoadOutcome

	// Save writes the aggregate's full state through its storage.
	Save(ctx context.Context) error
}

// LoadOutcome reports how an aggregate was hydrated.
type LoadOutcome struct {
	// UsedDefaults is true when the persisted state could not be used.
	UsedDefaults bool
	// Err is the storage failure that caused the fallback, if any.
	Err error
}

// loadOrDefault applies the start-up policy: a failed load is logged and
// replaced with the fallback value. A first run has no persisted state yet.
func loadOrDefault[T any](ctx context.Context, storage Storage[T], fallback func() T, logger *slog.Logger, what string) (T, LoadOutcome) {
	data, err := storage.Load(ctx)
	if err != nil {
		logger.Warn("could not load persisted state, using defaults", "aggregate", what, "error", err)
		return fallback(), LoadOutcome{UsedDefaults: true, Err: err}
	}
	return data, LoadOutcome{}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
