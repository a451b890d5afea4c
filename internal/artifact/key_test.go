package artifact_test

import (
	"testing"

	"github.com/RogerChu8/voiceRecorder-app/internal/artifact"
)

func TestParseName(t *testing.T) {
	cases := []struct {
		name string
		want artifact.Key
		ok   bool
	}{
		{"script0007_20240305.wav", artifact.Key{Num: 7, Date: "20240305", Kind: artifact.KindAudio}, true},
		{"script0007_20240305.txt", artifact.Key{Num: 7, Date: "20240305", Kind: artifact.KindText}, true},
		{"script1234_19991231.txt", artifact.Key{Num: 1234, Date: "19991231", Kind: artifact.KindText}, true},
		{"scripts.txt", artifact.Key{}, false},
		{"removed.txt", artifact.Key{}, false},
		{"script007_20240305.wav", artifact.Key{}, false},   // 3-digit num
		{"script00070_20240305.wav", artifact.Key{}, false}, // 5-digit num
		{"script0007_2024035.wav", artifact.Key{}, false},   // 7-digit date
		{"script0007_20240305.mp3", artifact.Key{}, false},  // wrong extension
		{"script0007-20240305.wav", artifact.Key{}, false},  // wrong separator
		{"scriptabcd_20240305.wav", artifact.Key{}, false},
		{"script0007_2024030x.wav", artifact.Key{}, false},
		{"", artifact.Key{}, false},
	}

	for _, tc := range cases {
		got, ok := artifact.ParseName(tc.name)
		if ok != tc.ok {
			t.Errorf("ParseName(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseName(%q) = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	key := artifact.Key{Num: 42, Date: "20250101", Kind: artifact.KindAudio}
	name := key.Filename()
	if name != "script0042_20250101.wav" {
		t.Fatalf("Filename = %q", name)
	}
	parsed, ok := artifact.ParseName(name)
	if !ok || parsed != key {
		t.Fatalf("round trip failed: %+v ok=%v", parsed, ok)
	}
}

func TestStoreRetentionOps(t *testing.T) {
	store := artifact.NewStore()
	store.Put("script0007_20240101.txt", []byte("old"))
	store.Put("script0007_20240101.wav", []byte("old-audio"))
	store.Put("script0007_20240305.txt", []byte("new"))
	store.Put("script0007_20240305.wav", []byte("new-audio"))
	store.Put("script0008_20240305.txt", []byte("other"))
	store.Put("notes.txt", []byte("unrelated"))

	store.DeleteNumExcept(7, "20240305")
	if _, ok := store.Get("script0007_20240101.txt"); ok {
		t.Fatal("superseded text artifact survived retention")
	}
	if _, ok := store.Get("script0007_20240305.wav"); !ok {
		t.Fatal("kept audio artifact was deleted")
	}
	if _, ok := store.Get("script0008_20240305.txt"); !ok {
		t.Fatal("artifact of another num was deleted")
	}
	if _, ok := store.Get("notes.txt"); !ok {
		t.Fatal("non-artifact entry was deleted")
	}

	store.DeleteNum(7)
	if len(store.KeysForNum(7)) != 0 {
		t.Fatal("DeleteNum left artifacts behind")
	}
	if store.Len() != 2 {
		t.Fatalf("store len = %d, want 2", store.Len())
	}
}
