package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/socraticlabs/copilot/core/protocol"
	"github.com/socraticlabs/copilot/discussion"
	"github.com/socraticlabs/copilot/phase"
	"github.com/socraticlabs/copilot/store"
)

func newStoredDiscussion(t *testing.T, s store.Store, firstUser string) *discussion.Discussion {
	t.Helper()

	d := discussion.New()
	if firstUser != "" {
		d.AppendUser(firstUser)
		d.AppendAssistant("tell me more")
		d.Document.Append(phase.VisionAndScoping, protocol.RoleUser, firstUser)
	}
	if err := s.Save(context.Background(), d); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return d
}

func testStoreRoundTrip(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	d := newStoredDiscussion(t, s, "I want to build a URL shortener")
	d.Phase = phase.FunctionalRequirements
	d.MarkAsked(phase.VisionAndScoping)
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := s.Load(ctx, d.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("load returned absent for a saved discussion")
	}

	if loaded.ID != d.ID {
		t.Errorf("ID = %s, want %s", loaded.ID, d.ID)
	}
	if loaded.Phase != phase.FunctionalRequirements {
		t.Errorf("phase = %s, want functional_requirements", loaded.Phase)
	}
	if len(loaded.Transcript) != len(d.Transcript) {
		t.Fatalf("transcript length = %d, want %d", len(loaded.Transcript), len(d.Transcript))
	}
	for i := range d.Transcript {
		if loaded.Transcript[i] != d.Transcript[i] {
			t.Errorf("transcript[%d] = %+v, want %+v", i, loaded.Transcript[i], d.Transcript[i])
		}
	}
	if !loaded.Asked[phase.VisionAndScoping] {
		t.Error("asked flag lost")
	}
	if loaded.Document.Render(phase.VisionAndScoping) != d.Document.Render(phase.VisionAndScoping) {
		t.Error("document fragment lost")
	}
}

func testStoreAbsent(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	for _, id := range []string{"does-not-exist", "", "not a uuid at all"} {
		loaded, err := s.Load(ctx, id)
		if err != nil {
			t.Errorf("Load(%q) error = %v, want nil", id, err)
		}
		if loaded != nil {
			t.Errorf("Load(%q) = %+v, want absent", id, loaded)
		}
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testStoreRoundTrip(t, s)
}

func TestFileStore_Absent(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testStoreAbsent(t, s)
}

func TestFileStore_MalformedIDDoesNotEscapeRoot(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"../etc/passwd", "a/b", `a\b`, ".", ".."} {
		loaded, err := s.Load(context.Background(), id)
		if err != nil || loaded != nil {
			t.Errorf("Load(%q) = (%v, %v), want absent", id, loaded, err)
		}
	}
}

func TestFileStore_List(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	older := newStoredDiscussion(t, s, "first project")
	newer := newStoredDiscussion(t, s, "second project")
	untitled := newStoredDiscussion(t, s, "")

	summaries, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	// Most recently updated first.
	if summaries[0].ID != untitled.ID {
		t.Errorf("summaries[0].ID = %s, want %s", summaries[0].ID, untitled.ID)
	}
	if summaries[0].Title != discussion.DefaultTitle {
		t.Errorf("untitled summary title = %q, want %q", summaries[0].Title, discussion.DefaultTitle)
	}

	byID := make(map[string]string)
	for _, sum := range summaries {
		byID[sum.ID] = sum.Title
	}
	if byID[older.ID] != "first project" || byID[newer.ID] != "second project" {
		t.Errorf("titles = %v", byID)
	}
}

func TestFileStore_SaveIsUpsert(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	d := newStoredDiscussion(t, s, "idempotent save")
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("repeated save failed: %v", err)
	}

	summaries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Errorf("got %d summaries after repeated save, want 1", len(summaries))
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	testStoreRoundTrip(t, store.NewMemoryStore())
}

func TestMemoryStore_Absent(t *testing.T) {
	testStoreAbsent(t, store.NewMemoryStore())
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	s := store.NewMemoryStore()
	d := newStoredDiscussion(t, s, "isolation")

	loaded, err := s.Load(context.Background(), d.ID)
	if err != nil || loaded == nil {
		t.Fatalf("load = (%v, %v)", loaded, err)
	}
	loaded.AppendUser("mutation after load")

	again, err := s.Load(context.Background(), d.ID)
	if err != nil || again == nil {
		t.Fatalf("second load = (%v, %v)", again, err)
	}
	if len(again.Transcript) != 2 {
		t.Errorf("stored transcript mutated through a loaded copy: %d entries", len(again.Transcript))
	}
}

func TestFileAuditLog_Append(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")

	log, err := store.NewFileAuditLog(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := log.Append(ctx, "engine.phase.run", map[string]any{"phase": "data_model"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := log.Append(ctx, "engine.turn.start", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d audit lines, want 2", len(lines))
	}

	var rec struct {
		Event     string         `json:"event"`
		Data      map[string]any `json:"data"`
		Timestamp int64          `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("audit line not valid JSON: %v", err)
	}
	if rec.Event != "engine.phase.run" || rec.Data["phase"] != "data_model" {
		t.Errorf("audit record = %+v", rec)
	}
	if rec.Timestamp == 0 {
		t.Error("audit record missing timestamp")
	}
}

func TestOpen_Drivers(t *testing.T) {
	tests := []struct {
		name        string
		cfg         store.Config
		expectError bool
	}{
		{
			name: "file driver",
			cfg:  store.Config{Driver: store.DriverFile, Path: filepath.Join(t.TempDir(), "d")},
		},
		{
			name: "default driver is file",
			cfg:  store.Config{Path: filepath.Join(t.TempDir(), "d")},
		},
		{
			name: "memory driver",
			cfg:  store.Config{Driver: store.DriverMemory},
		},
		{
			name:        "redis driver without addr",
			cfg:         store.Config{Driver: store.DriverRedis},
			expectError: true,
		},
		{
			name:        "unknown driver",
			cfg:         store.Config{Driver: "bolt"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, audit, err := store.Open(&tt.cfg)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s == nil || audit == nil {
				t.Error("Open returned nil store or audit sink")
			}
			s.Close()
		})
	}
}
