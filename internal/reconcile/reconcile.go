package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/RogerChu8/voiceRecorder-app/internal/artifact"
	"github.com/RogerChu8/voiceRecorder-app/internal/script"
	"github.com/RogerChu8/voiceRecorder-app/internal/wavecodec"
)

var errInvalidTextEncoding = errors.New("text artifact is not valid UTF-8")

// Warning reports one uploaded file that could not be used. Warnings never
// abort a pass; the offending file is skipped and, being absent from the
// decoded set, pruned by retention.
type Warning struct {
	Filename string
	Err      error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Filename, w.Err)
}

// submission collects the decoded payloads found for one (num, date).
type submission struct {
	text     string
	hasText  bool
	duration float64
	hasAudio bool
}

// complete reports whether both payload kinds are present, which is what
// makes a dated submission eligible for selection.
func (s submission) complete() bool {
	return s.hasText && s.hasAudio
}

// Reconcile derives every item's status from the removal set and the
// artifact store, selects the latest complete submission per item, and
// prunes superseded artifacts. Items are mutated in place; the returned
// warnings list one skipped file each.
//
// Precedence per item: removal first, then the lexicographically largest
// date holding both a text and an audio artifact (dates are fixed-width
// YYYYMMDD, so lexicographic order is chronological), else not started.
func Reconcile(items []script.Item, removed script.RemovalSet, store *artifact.Store) []Warning {
	decoded, warnings := decodeArtifacts(store)

	for i := range items {
		item := &items[i]
		if removed.Has(item.Num) {
			item.ClearSubmission(script.StatusRemoved)
			continue
		}

		latest, ok := latestCompleteDate(decoded[item.Num])
		if !ok {
			item.ClearSubmission(script.StatusNotStarted)
			continue
		}

		sub := decoded[item.Num][latest]
		item.Status = script.StatusCompleted
		item.Text = sub.text
		item.RecordSeconds = sub.duration
		item.LatestDate = latest
	}

	// Retention: exactly one dated pair survives per completed item,
	// nothing survives for any other item.
	for i := range items {
		item := &items[i]
		if item.Status == script.StatusCompleted && item.LatestDate != "" {
			store.DeleteNumExcept(item.Num, item.LatestDate)
		} else {
			store.DeleteNum(item.Num)
		}
	}

	return warnings
}

// decodeArtifacts groups the store's artifacts by num and date, decoding
// payloads as it goes. Files that do not match the naming convention are
// ignored outright; files that match but fail to decode produce warnings.
func decodeArtifacts(store *artifact.Store) (map[int]map[string]submission, []Warning) {
	decoded := make(map[int]map[string]submission)
	var warnings []Warning

	for _, name := range store.Names() {
		key, ok := artifact.ParseName(name)
		if !ok {
			continue
		}
		data, _ := store.Get(name)

		byDate := decoded[key.Num]
		if byDate == nil {
			byDate = make(map[string]submission)
			decoded[key.Num] = byDate
		}
		sub := byDate[key.Date]

		switch key.Kind {
		case artifact.KindText:
			if !utf8.Valid(data) {
				warnings = append(warnings, Warning{Filename: name, Err: errInvalidTextEncoding})
				continue
			}
			sub.text = strings.TrimSpace(string(data))
			sub.hasText = true
		case artifact.KindAudio:
			wf, err := wavecodec.Decode(data)
			if err != nil {
				warnings = append(warnings, Warning{Filename: name, Err: err})
				continue
			}
			sub.duration = wf.Duration()
			sub.hasAudio = true
		}

		byDate[key.Date] = sub
	}

	return decoded, warnings
}

// latestCompleteDate picks the largest date whose submission has both
// payload kinds.
func latestCompleteDate(byDate map[string]submission) (string, bool) {
	var latest string
	for date, sub := range byDate {
		if !sub.complete() {
			continue
		}
		if date > latest {
			latest = date
		}
	}
	return latest, latest != ""
}
