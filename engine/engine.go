// Package engine implements the session orchestrator: it owns the phase state
// machine, drives one turn per user input through router and processors, and
// persists the discussion after every step.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/socraticlabs/copilot/agent"
	"github.com/socraticlabs/copilot/core/protocol"
	"github.com/socraticlabs/copilot/discussion"
	"github.com/socraticlabs/copilot/observability"
	"github.com/socraticlabs/copilot/phase"
	"github.com/socraticlabs/copilot/store"
)

// Step is the one-shot result of a turn: either a normal update or a
// structured error. It is surfaced through a sequence interface for
// uniformity with future incremental delivery, but each turn yields exactly
// one Step.
type Step struct {
	DiscussionID string
	Phase        phase.Phase        // phase that executed, or summarize/end
	Reply        string             // new assistant message, "" for end
	Transcript   []protocol.Message // full updated transcript
	Fragment     string             // rendered document fragment for the executed phase
	Saved        bool               // false only when a save was attempted and failed
	Err          error
}

// Option configures an Engine before config-driven initialization fills in
// the remaining subsystems.
type Option func(*Engine)

// WithGenerator overrides the config-created language-model generator.
func WithGenerator(g agent.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithStore overrides the config-created discussion store.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithAuditSink overrides the config-created audit sink.
func WithAuditSink(sink store.AuditSink) Option {
	return func(e *Engine) { e.audit = sink }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine is the session orchestrator. A single discussion is processed one
// turn at a time with no internal parallelism; different discussions are
// fully independent and may be processed concurrently. The engine provides
// no locking against two concurrent turns for the same discussion ID — a
// documented limitation, not a guarantee.
type Engine struct {
	generator agent.Generator
	store     store.Store
	audit     store.AuditSink
	observer  observability.Observer
	timeout   time.Duration
}

// New creates an Engine from configuration. Options are applied first;
// subsystems they did not provide are initialized from their config sections.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		timeout: time.Duration(cfg.TurnTimeoutSeconds) * time.Second,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.generator == nil {
		g, err := agent.New(ctx, &cfg.Agent)
		if err != nil {
			return nil, err
		}
		e.generator = g
	}

	if e.store == nil {
		s, sink, err := store.Open(&cfg.Store)
		if err != nil {
			return nil, err
		}
		e.store = s
		if e.audit == nil {
			e.audit = sink
		}
	}

	if e.observer == nil {
		name := cfg.Observer
		if name == "" {
			name = defaultObserver
		}
		obs, err := observability.GetObserver(name)
		if err != nil {
			return nil, err
		}
		e.observer = obs
	}

	// Audit rides the observer side channel so its failures can never
	// affect control flow.
	if e.audit != nil {
		e.observer = observability.NewMultiObserver(
			e.observer,
			observability.NewAuditObserver(e.audit, slog.Default()),
		)
	}

	return e, nil
}

// List returns summaries of all stored discussions for history display.
func (e *Engine) List(ctx context.Context) ([]store.Summary, error) {
	return e.store.List(ctx)
}

// Load returns the stored discussion for read-only history display, or
// (nil, nil) when absent.
func (e *Engine) Load(ctx context.Context, id string) (*discussion.Discussion, error) {
	return e.store.Load(ctx, id)
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.store.Close()
}

func (e *Engine) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	e.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "engine.Turn",
		Data:      data,
	})
}
