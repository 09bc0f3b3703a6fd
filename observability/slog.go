package observability

import (
	"context"
	"log/slog"
)

// SlogObserver emits engine events ("engine.turn.start", "engine.phase.run",
// ...) through a slog.Logger: the event type becomes the log message, the
// event level maps via SlogLevel, and Data keys become top-level attributes.
//
// A nil logger resolves slog.Default at emit time rather than construction
// time, so an observer built during package init still routes through
// whatever handler the command line installs before the first turn.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates a SlogObserver bound to the given logger. Pass nil
// to follow the process-wide default logger.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnEvent(ctx context.Context, event Event) {
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := make([]slog.Attr, 0, len(event.Data)+1)
	attrs = append(attrs, slog.String("source", event.Source))
	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}

	logger.LogAttrs(ctx, event.Level.SlogLevel(), string(event.Type), attrs...)
}
