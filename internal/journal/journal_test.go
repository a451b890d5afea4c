package journal_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/RogerChu8/voiceRecorder-app/internal/journal"
)

func newStore(t *testing.T) *journal.Store {
	t.Helper()

	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close journal: %v", err)
		}
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "demo", journal.ActionAccept, 3, "new recording"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "demo", journal.ActionRemove, 5, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	events, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Action != journal.ActionRemove || events[0].ItemNum != 5 {
		t.Fatalf("newest event = %+v", events[0])
	}
	if events[1].Action != journal.ActionAccept || events[1].Detail != "new recording" {
		t.Fatalf("oldest event = %+v", events[1])
	}
	for _, event := range events {
		if event.SessionID != store.SessionID() {
			t.Fatalf("session id = %q, want %q", event.SessionID, store.SessionID())
		}
		if event.CreatedAt.IsZero() {
			t.Fatal("created_at not parsed")
		}
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := store.Record(ctx, "demo", journal.ActionAccept, i, ""); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	events, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].ItemNum != 5 {
		t.Fatalf("newest item = %d, want 5", events[0].ItemNum)
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
