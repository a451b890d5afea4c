package project_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RogerChu8/voiceRecorder-app/internal/project"
	"github.com/RogerChu8/voiceRecorder-app/internal/script"
	"github.com/RogerChu8/voiceRecorder-app/internal/testsupport"
)

func TestSyncDirAndLoadDirRoundTrip(t *testing.T) {
	dir := t.TempDir()
	session := newSession(t)
	acceptRecording(t, session, 1, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	if err := session.Remove(2); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if err := session.SyncDir(dir); err != nil {
		t.Fatalf("SyncDir: %v", err)
	}

	resumed, err := project.LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	for i := range session.Items {
		if resumed.Items[i] != session.Items[i] {
			t.Fatalf("item %d differs after round trip: %+v vs %+v", i, resumed.Items[i], session.Items[i])
		}
	}
}

func TestSyncDirPrunesStaleArtifactsOnly(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "script0001_20200101.wav")
	if err := os.WriteFile(stale, testsupport.SilentWAV(t, 8000, 800), 0o644); err != nil {
		t.Fatalf("write stale artifact: %v", err)
	}
	unrelated := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(unrelated, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	session := newSession(t)
	if err := session.SyncDir(dir); err != nil {
		t.Fatalf("SyncDir: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("stale artifact should have been pruned")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("unrelated file must survive: %v", err)
	}
}

func TestLoadDirRequiresScripts(t *testing.T) {
	if _, err := project.LoadDir(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for a directory without scripts.txt")
	}
}

func TestLockDirExcludesSecondEditor(t *testing.T) {
	dir := t.TempDir()

	lock, err := project.LockDir(dir)
	if err != nil {
		t.Fatalf("LockDir: %v", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			t.Errorf("unlock: %v", err)
		}
	}()

	if _, err := project.LockDir(dir); err == nil {
		t.Fatal("second lock must fail while the first is held")
	}
}

func TestLoadDirIgnoresLockFile(t *testing.T) {
	dir := t.TempDir()
	session := newSession(t)
	if err := session.SyncDir(dir); err != nil {
		t.Fatalf("SyncDir: %v", err)
	}
	lock, err := project.LockDir(dir)
	if err != nil {
		t.Fatalf("LockDir: %v", err)
	}
	defer lock.Unlock()

	resumed, err := project.LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(resumed.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(resumed.Items))
	}
	for _, item := range resumed.Items {
		if item.Status != script.StatusNotStarted {
			t.Fatalf("item %d status = %q", item.Num, item.Status)
		}
	}
}
