package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/socraticlabs/copilot/discussion"
)

const discussionExt = ".json"

// FileStore persists each discussion as a JSON document under root. Writes go
// through a temp file plus rename so a crash mid-write never leaves a corrupt
// record.
type FileStore struct {
	root string
}

// NewFileStore creates a Store rooted at the given directory. The directory
// is created if missing.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.root, id+discussionExt)
}

// validID rejects identifiers that cannot be a stored discussion, including
// anything that would escape the root directory. Malformed IDs resolve to
// absent, not a crash.
func validID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (s *FileStore) Save(_ context.Context, d *discussion.Discussion) error {
	d.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}

	path := s.path(d.ID)
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, d.ID, err)
	}

	return nil
}

func (s *FileStore) Load(_ context.Context, id string) (*discussion.Discussion, error) {
	if !validID(id) {
		return nil, nil
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}

	var d discussion.Discussion
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}
	return &d, nil
}

func (s *FileStore) List(_ context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	type item struct {
		summary Summary
		updated time.Time
	}
	var items []item

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, discussionExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			continue
		}
		var d discussion.Discussion
		if err := json.Unmarshal(data, &d); err != nil {
			continue
		}

		items = append(items, item{
			summary: Summary{ID: d.ID, Title: d.Title()},
			updated: d.UpdatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].updated.After(items[j].updated)
	})

	summaries := make([]Summary, len(items))
	for i, it := range items {
		summaries[i] = it.summary
	}
	return summaries, nil
}

func (s *FileStore) Close() error {
	return nil
}

// FileAuditLog appends events as JSON lines to a single log file.
type FileAuditLog struct {
	mu   sync.Mutex
	path string
}

// NewFileAuditLog creates an append-only JSONL audit log at path. The parent
// directory is created if missing.
func NewFileAuditLog(path string) (*FileAuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &FileAuditLog{path: path}, nil
}

type auditRecord struct {
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

func (l *FileAuditLog) Append(_ context.Context, event string, data map[string]any) error {
	line, err := json.Marshal(auditRecord{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("%w: audit: %v", ErrSaveFailed, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: audit: %v", ErrSaveFailed, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("%w: audit: %v", ErrSaveFailed, err)
	}
	return nil
}
