package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lbartels/bionet/pkg/bionet"
)

func TestNew(t *testing.T) {
	s := New("string-network", time.Hour)

	if s.ID == "" {
		t.Fatal("expected a generated session ID")
	}
	if s.GraphName != "string-network" {
		t.Errorf("GraphName = %q, want string-network", s.GraphName)
	}
	if s.Highlight != bionet.HighlightAll.String() {
		t.Errorf("Highlight = %q, want all", s.Highlight)
	}
	if s.IsExpired() {
		t.Error("fresh session must not be expired")
	}

	other := New("string-network", time.Hour)
	if s.ID == other.ID {
		t.Error("session IDs must be unique")
	}
}

func TestMemoryStore_Roundtrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New("net", time.Hour)
	sess.Thresholds = bionet.Thresholds{Weight: 0.001, Degree: 2}
	sess.Selected = "EGFR"

	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected session")
	}
	if got.Thresholds != sess.Thresholds {
		t.Errorf("Thresholds = %+v, want %+v", got.Thresholds, sess.Thresholds)
	}
	if got.Selected != "EGFR" {
		t.Errorf("Selected = %q, want EGFR", got.Selected)
	}
}

func TestMemoryStore_GetCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New("net", time.Hour)
	_ = store.Set(ctx, sess)

	got, _ := store.Get(ctx, sess.ID)
	got.Selected = "MUTATED"

	again, _ := store.Get(ctx, sess.ID)
	if again.Selected == "MUTATED" {
		t.Error("Get must return a copy, not shared state")
	}
}

func TestMemoryStore_MissingIsNil(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get(missing) = %+v, want nil", got)
	}
}

func TestMemoryStore_ExpiredDropped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New("net", -time.Minute)
	_ = store.Set(ctx, sess)

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expired session must be dropped on Get")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New("net", time.Hour)
	_ = store.Set(ctx, sess)
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("expected nil after delete")
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	live := New("net", time.Hour)
	dead := New("net", -time.Minute)
	_ = store.Set(ctx, live)
	_ = store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}

	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("cleanup must keep live sessions")
	}
	if got, _ := store.Get(ctx, dead.ID); got != nil {
		t.Error("cleanup must drop expired sessions")
	}
}

func TestFileStore_Roundtrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	ctx := context.Background()

	sess := New("net", time.Hour)
	sess.Highlight = bionet.Cancer.String()

	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected session")
	}
	if got.Highlight != bionet.Cancer.String() {
		t.Errorf("Highlight = %q, want cancer", got.Highlight)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("expected nil after delete")
	}
}

func TestFileStore_RejectsNonUUIDIDs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Cookie values are attacker-controlled; a path-shaped ID must not
	// reach the filesystem.
	outside := filepath.Join(dir, "..", "escape.json")
	if err := os.WriteFile(outside, []byte(`{"id":"x"}`), 0600); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"../escape", "..", "a/b", "not-a-uuid"} {
		got, err := store.Get(ctx, id)
		if err != nil || got != nil {
			t.Errorf("Get(%q) = %v, %v, want nil, nil", id, got, err)
		}
		if err := store.Delete(ctx, id); err != nil {
			t.Errorf("Delete(%q) error = %v", id, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Error("file outside the session dir was touched")
	}

	bad := New("net", time.Hour)
	bad.ID = "../escape"
	if err := store.Set(ctx, bad); err == nil {
		t.Error("Set with a path-shaped ID must fail")
	}
}

func TestFileStore_Cleanup(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	dead := New("net", -time.Minute)
	_ = store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, dead.ID); got != nil {
		t.Error("cleanup must drop expired sessions")
	}
}
