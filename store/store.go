// Package store persists discussions and the append-only audit log. Backends:
// filesystem (one JSON document per discussion, atomic writes), Redis
// (JSON values with TTL), and in-memory (tests).
package store

import (
	"context"

	"github.com/socraticlabs/copilot/discussion"
)

// Summary identifies a stored discussion for history listings.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Store persists discussion records keyed by ID.
//
// Save is an upsert: it must be safe to repeat if retried by the caller.
// Load returns (nil, nil) when the ID does not exist or is malformed; absent
// is an expected outcome, not an error. List returns summaries ordered most
// recently updated first.
type Store interface {
	Save(ctx context.Context, d *discussion.Discussion) error
	Load(ctx context.Context, id string) (*discussion.Discussion, error)
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

// AuditSink appends structured events to an append-only log. It satisfies
// observability.AuditSink; callers treat write failures as best-effort.
type AuditSink interface {
	Append(ctx context.Context, event string, data map[string]any) error
}
