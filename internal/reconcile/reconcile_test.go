package reconcile_test

import (
	"testing"

	"github.com/RogerChu8/voiceRecorder-app/internal/artifact"
	"github.com/RogerChu8/voiceRecorder-app/internal/reconcile"
	"github.com/RogerChu8/voiceRecorder-app/internal/script"
	"github.com/RogerChu8/voiceRecorder-app/internal/testsupport"
)

func newItems(nums ...int) []script.Item {
	items := make([]script.Item, 0, len(nums))
	for _, num := range nums {
		items = append(items, script.Item{Num: num, Text: "prompt", Status: script.StatusNotStarted})
	}
	return items
}

func putPair(t *testing.T, store *artifact.Store, num int, date, text string, sampleRate, frames int) {
	t.Helper()
	textKey := artifact.Key{Num: num, Date: date, Kind: artifact.KindText}
	audioKey := artifact.Key{Num: num, Date: date, Kind: artifact.KindAudio}
	store.Put(textKey.Filename(), []byte(text))
	store.Put(audioKey.Filename(), testsupport.SilentWAV(t, sampleRate, frames))
}

func TestLatestCompleteDateWins(t *testing.T) {
	items := newItems(7)
	store := artifact.NewStore()
	putPair(t, store, 7, "20240101", "old text", 8000, 8000)  // 1.0 s
	putPair(t, store, 7, "20240305", "new text", 8000, 16000) // 2.0 s

	warnings := reconcile.Reconcile(items, script.NewRemovalSet(), store)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	item := items[0]
	if item.Status != script.StatusCompleted {
		t.Fatalf("status = %q, want completed", item.Status)
	}
	if item.Text != "new text" {
		t.Fatalf("text = %q, want latest submission's text", item.Text)
	}
	if item.LatestDate != "20240305" {
		t.Fatalf("latest date = %q, want 20240305", item.LatestDate)
	}
	if item.RecordSeconds != 2.0 {
		t.Fatalf("duration = %v, want 2.0", item.RecordSeconds)
	}

	// The superseded pair is pruned; exactly the kept pair remains.
	names := store.Names()
	if len(names) != 2 {
		t.Fatalf("store contents = %v, want exactly the kept pair", names)
	}
	for _, name := range names {
		key, _ := artifact.ParseName(name)
		if key.Date != "20240305" {
			t.Fatalf("stale artifact retained: %s", name)
		}
	}
}

func TestRemovalDominatesUploads(t *testing.T) {
	items := newItems(3)
	removed := script.NewRemovalSet()
	removed.Add(3)
	store := artifact.NewStore()
	putPair(t, store, 3, "20240401", "ignored", 8000, 8000)

	reconcile.Reconcile(items, removed, store)

	item := items[0]
	if item.Status != script.StatusRemoved {
		t.Fatalf("status = %q, want removed", item.Status)
	}
	if item.RecordSeconds != 0 {
		t.Fatalf("duration = %v, want 0", item.RecordSeconds)
	}
	if item.LatestDate != "" {
		t.Fatalf("latest date = %q, want empty", item.LatestDate)
	}
	if len(store.KeysForNum(3)) != 0 {
		t.Fatal("artifacts for removed item were retained")
	}
}

func TestIncompletePairIgnored(t *testing.T) {
	items := newItems(9)
	store := artifact.NewStore()
	textKey := artifact.Key{Num: 9, Date: "20240501", Kind: artifact.KindText}
	store.Put(textKey.Filename(), []byte("text without audio"))

	reconcile.Reconcile(items, script.NewRemovalSet(), store)

	item := items[0]
	if item.Status != script.StatusNotStarted {
		t.Fatalf("status = %q, want not_started", item.Status)
	}
	if item.Text != "prompt" {
		t.Fatalf("text = %q, canonical text should be untouched", item.Text)
	}
	if len(store.KeysForNum(9)) != 0 {
		t.Fatal("orphaned text artifact was retained")
	}
}

func TestIncompleteLatestFallsBackToOlderCompleteDate(t *testing.T) {
	items := newItems(4)
	store := artifact.NewStore()
	putPair(t, store, 4, "20240101", "complete", 8000, 8000)
	// Later date with only audio: not complete, must not win.
	audioKey := artifact.Key{Num: 4, Date: "20240901", Kind: artifact.KindAudio}
	store.Put(audioKey.Filename(), testsupport.SilentWAV(t, 8000, 4000))

	reconcile.Reconcile(items, script.NewRemovalSet(), store)

	if items[0].LatestDate != "20240101" {
		t.Fatalf("latest date = %q, want the older complete date", items[0].LatestDate)
	}
	if len(store.KeysForNum(4)) != 2 {
		t.Fatalf("store keys for num 4 = %v, want the kept pair only", store.KeysForNum(4))
	}
}

func TestIdempotence(t *testing.T) {
	items := newItems(1, 2, 3)
	removed := script.NewRemovalSet()
	removed.Add(2)
	store := artifact.NewStore()
	putPair(t, store, 1, "20240101", "first", 8000, 8000)
	putPair(t, store, 1, "20240202", "second", 8000, 8000)
	putPair(t, store, 3, "20240303", "third", 8000, 8000)

	reconcile.Reconcile(items, removed, store)

	snapshotItems := make([]script.Item, len(items))
	copy(snapshotItems, items)
	snapshotNames := store.Names()

	reconcile.Reconcile(items, removed, store)

	for i := range items {
		if items[i] != snapshotItems[i] {
			t.Fatalf("item %d changed on second pass: %+v vs %+v", i, items[i], snapshotItems[i])
		}
	}
	names := store.Names()
	if len(names) != len(snapshotNames) {
		t.Fatalf("store changed on second pass: %v vs %v", names, snapshotNames)
	}
	for i := range names {
		if names[i] != snapshotNames[i] {
			t.Fatalf("store changed on second pass: %v vs %v", names, snapshotNames)
		}
	}
}

func TestCorruptAudioWarnsAndSkips(t *testing.T) {
	items := newItems(5, 6)
	store := artifact.NewStore()
	// Item 5: corrupt wav alongside its text.
	textKey := artifact.Key{Num: 5, Date: "20240601", Kind: artifact.KindText}
	audioKey := artifact.Key{Num: 5, Date: "20240601", Kind: artifact.KindAudio}
	store.Put(textKey.Filename(), []byte("text"))
	store.Put(audioKey.Filename(), []byte("definitely not a wav file"))
	// Item 6: healthy pair; the bad file must not affect it.
	putPair(t, store, 6, "20240601", "healthy", 8000, 8000)

	warnings := reconcile.Reconcile(items, script.NewRemovalSet(), store)

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Filename != audioKey.Filename() {
		t.Fatalf("warning filename = %q", warnings[0].Filename)
	}
	if items[0].Status != script.StatusNotStarted {
		t.Fatalf("item 5 status = %q, want not_started (incomplete after skip)", items[0].Status)
	}
	if items[1].Status != script.StatusCompleted {
		t.Fatalf("item 6 status = %q, want completed", items[1].Status)
	}
}

func TestInvalidTextEncodingWarnsAndSkips(t *testing.T) {
	items := newItems(2, 3)
	store := artifact.NewStore()
	// Item 2: undecodable text alongside valid audio.
	textKey := artifact.Key{Num: 2, Date: "20240701", Kind: artifact.KindText}
	audioKey := artifact.Key{Num: 2, Date: "20240701", Kind: artifact.KindAudio}
	store.Put(textKey.Filename(), []byte{0xff, 0xfe, 0xfd})
	store.Put(audioKey.Filename(), testsupport.SilentWAV(t, 8000, 800))
	// Item 3: healthy pair; the bad file must not affect it.
	putPair(t, store, 3, "20240701", "healthy", 8000, 800)

	warnings := reconcile.Reconcile(items, script.NewRemovalSet(), store)

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Filename != textKey.Filename() {
		t.Fatalf("warning filename = %q", warnings[0].Filename)
	}
	if items[0].Status != script.StatusNotStarted {
		t.Fatalf("item 2 status = %q, want not_started (date incomplete after skip)", items[0].Status)
	}
	if len(store.KeysForNum(2)) != 0 {
		t.Fatal("artifacts for the incomplete date were retained")
	}
	if items[1].Status != script.StatusCompleted {
		t.Fatalf("item 3 status = %q, want completed", items[1].Status)
	}
}

func TestNonArtifactFilesUntouched(t *testing.T) {
	items := newItems(1)
	store := artifact.NewStore()
	store.Put("scripts.txt", []byte("1. prompt"))
	store.Put("README", []byte("hello"))

	warnings := reconcile.Reconcile(items, script.NewRemovalSet(), store)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if store.Len() != 2 {
		t.Fatalf("non-artifact entries were pruned: %v", store.Names())
	}
}
