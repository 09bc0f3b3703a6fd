package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/socraticlabs/copilot/discussion"
)

// MemoryStore keeps discussions in a process-local map. Records are stored as
// JSON snapshots so loads return independent copies, matching the isolation
// of the durable backends. Intended for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	updated map[string]time.Time
	titles  map[string]string
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		updated: make(map[string]time.Time),
		titles:  make(map[string]string),
	}
}

func (s *MemoryStore) Save(_ context.Context, d *discussion.Discussion) error {
	d.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[d.ID] = data
	s.updated[d.ID] = d.UpdatedAt
	s.titles[d.ID] = d.Title()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*discussion.Discussion, error) {
	s.mu.RLock()
	data, exists := s.records[id]
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	var d discussion.Discussion
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.updated[ids[i]].After(s.updated[ids[j]])
	})

	summaries := make([]Summary, len(ids))
	for i, id := range ids {
		summaries[i] = Summary{ID: id, Title: s.titles[id]}
	}
	return summaries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// MemoryAuditLog collects audit events in memory for inspection in tests.
type MemoryAuditLog struct {
	mu     sync.Mutex
	events []AuditEvent
}

// AuditEvent is one recorded audit entry.
type AuditEvent struct {
	Event string
	Data  map[string]any
}

// NewMemoryAuditLog creates an empty in-memory audit log.
func NewMemoryAuditLog() *MemoryAuditLog {
	return &MemoryAuditLog{}
}

func (l *MemoryAuditLog) Append(_ context.Context, event string, data map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, AuditEvent{Event: event, Data: data})
	return nil
}

// Events returns a copy of the recorded events.
func (l *MemoryAuditLog) Events() []AuditEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEvent, len(l.events))
	copy(out, l.events)
	return out
}
