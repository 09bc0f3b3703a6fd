package observability

import (
	"context"
	"log/slog"
)

// AuditSink is an append-only event log. Implementations live in the store
// package; the interface is declared here so the audit observer stays
// decoupled from storage wiring.
type AuditSink interface {
	Append(ctx context.Context, event string, data map[string]any) error
}

// AuditObserver writes events to an append-only audit sink. Sink failures are
// caught here, logged at warning level, and discarded: audit writes are
// fire-and-forget and must never abort the operation that emitted the event.
type AuditObserver struct {
	sink   AuditSink
	logger *slog.Logger
}

// NewAuditObserver creates an AuditObserver over the given sink. A nil logger
// falls back to slog.Default.
func NewAuditObserver(sink AuditSink, logger *slog.Logger) *AuditObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditObserver{sink: sink, logger: logger}
}

func (o *AuditObserver) OnEvent(ctx context.Context, event Event) {
	data := make(map[string]any, len(event.Data)+1)
	for k, v := range event.Data {
		data[k] = v
	}
	data["source"] = event.Source

	if err := o.sink.Append(ctx, string(event.Type), data); err != nil {
		o.logger.Warn("audit write failed",
			"event", string(event.Type),
			"error", err,
		)
	}
}
