package project

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RogerChu8/voiceRecorder-app/internal/artifact"
	"github.com/RogerChu8/voiceRecorder-app/internal/logging"
	"github.com/RogerChu8/voiceRecorder-app/internal/reconcile"
	"github.com/RogerChu8/voiceRecorder-app/internal/script"
	"github.com/RogerChu8/voiceRecorder-app/internal/wavecodec"
)

// Project file names. The removal list is also accepted under its legacy
// alias on load but is always written as removed.txt.
const (
	ScriptsFileName      = "scripts.txt"
	RemovedFileName      = "removed.txt"
	removedFileNameAlias = "scripts.removed"
)

// Contract violations by the caller. These indicate a programming error in
// the collaborator and are meant to be treated as fatal, not retried.
var (
	ErrUnknownItem    = errors.New("unknown script item")
	ErrNoPendingAudio = errors.New("no pending recording to accept")
	ErrMissingScripts = errors.New("project has no " + ScriptsFileName)
)

// pendingRecording is the unsaved audio buffer for the selected item.
// isNew distinguishes a fresh capture from re-armed retained audio; only a
// fresh capture fabricates a new submission date on accept.
type pendingRecording struct {
	audio    []byte
	duration float64
	isNew    bool
}

// Session is the aggregate state of one open project. It is designed for a
// single active editor; every mutating operation completes its writing and
// pruning before returning.
type Session struct {
	Items     []script.Item
	Removed   script.RemovalSet
	Artifacts *artifact.Store

	// Warnings lists the files skipped by the last reconciliation pass.
	Warnings []reconcile.Warning

	selected int
	pending  *pendingRecording
	logger   *slog.Logger
}

// New starts a project from a prompt list alone.
func New(promptData []byte, logger *slog.Logger) (*Session, error) {
	items := script.ParsePrompts(promptData)
	if len(items) == 0 {
		return nil, errors.New("prompt list contains no items")
	}

	session := &Session{
		Items:     items,
		Removed:   script.NewRemovalSet(),
		Artifacts: artifact.NewStore(),
		logger:    logging.NewComponentLogger(logger, "project"),
	}
	session.Reconcile()
	return session, nil
}

// Load resumes a project from its files. ScriptsFileName is required; the
// removal list and artifacts are optional. Entries that are neither project
// lists nor artifact-named files are ignored.
func Load(files map[string][]byte, logger *slog.Logger) (*Session, error) {
	promptData, ok := files[ScriptsFileName]
	if !ok {
		return nil, ErrMissingScripts
	}
	items := script.ParsePrompts(promptData)
	if len(items) == 0 {
		return nil, fmt.Errorf("%s contains no items", ScriptsFileName)
	}

	removed := script.NewRemovalSet()
	if data, ok := files[RemovedFileName]; ok {
		removed = script.ParseRemovals(data)
	} else if data, ok := files[removedFileNameAlias]; ok {
		removed = script.ParseRemovals(data)
	}

	store := artifact.NewStore()
	for name, data := range files {
		if name == ScriptsFileName || name == RemovedFileName || name == removedFileNameAlias {
			continue
		}
		if _, ok := artifact.ParseName(name); !ok {
			continue
		}
		store.Put(name, data)
	}

	session := &Session{
		Items:     items,
		Removed:   removed,
		Artifacts: store,
		logger:    logging.NewComponentLogger(logger, "project"),
	}
	session.Reconcile()
	return session, nil
}

// Reconcile re-derives every item's state from the removal set and the
// artifact store and prunes superseded artifacts. Skipped-file warnings are
// retained on the session and logged.
func (s *Session) Reconcile() {
	s.Warnings = reconcile.Reconcile(s.Items, s.Removed, s.Artifacts)
	for _, warning := range s.Warnings {
		s.logger.Warn("skipped unusable artifact", logging.Args(
			logging.String(logging.FieldFile, warning.Filename),
			logging.Error(warning.Err))...)
	}
}

// Item returns the item with the given num.
func (s *Session) Item(num int) (*script.Item, bool) {
	for i := range s.Items {
		if s.Items[i].Num == num {
			return &s.Items[i], true
		}
	}
	return nil, false
}

// Selected returns the currently selected item num, 0 when none.
func (s *Session) Selected() int {
	return s.selected
}

// Select makes num the active item. Selecting a Completed item re-arms its
// retained audio as the pending buffer so it can be re-accepted without
// fabricating a new date; selecting anything else clears the buffer.
func (s *Session) Select(num int) error {
	item, ok := s.Item(num)
	if !ok {
		return fmt.Errorf("select item %d: %w", num, ErrUnknownItem)
	}
	s.selected = num
	s.pending = nil

	if item.Status != script.StatusCompleted || item.LatestDate == "" {
		return nil
	}
	audioKey := artifact.Key{Num: num, Date: item.LatestDate, Kind: artifact.KindAudio}
	audio, ok := s.Artifacts.Get(audioKey.Filename())
	if !ok {
		return nil
	}
	s.pending = &pendingRecording{audio: audio, duration: item.RecordSeconds, isNew: false}
	return nil
}

// SetPending captures a fresh recording for the selected item. The audio is
// decoded up front so a malformed capture is rejected here, not at accept.
func (s *Session) SetPending(audio []byte) error {
	wf, err := wavecodec.Decode(audio)
	if err != nil {
		return err
	}
	s.pending = &pendingRecording{audio: audio, duration: wf.Duration(), isNew: true}
	return nil
}

// PendingDuration returns the pending buffer's duration in seconds and
// whether a buffer is armed.
func (s *Session) PendingDuration() (float64, bool) {
	if s.pending == nil {
		return 0, false
	}
	return s.pending.duration, true
}

// Accept commits the pending recording to the item. The effective date is
// now for a fresh capture and the item's retained date for re-armed audio.
// All prior artifacts for the num are replaced by the accepted pair, and
// the num is cleared from the removal set.
func (s *Session) Accept(num int, now time.Time) error {
	item, ok := s.Item(num)
	if !ok {
		return fmt.Errorf("accept item %d: %w", num, ErrUnknownItem)
	}
	if s.pending == nil {
		return fmt.Errorf("accept item %d: %w", num, ErrNoPendingAudio)
	}

	newRecording := s.pending.isNew
	date := now.Format("20060102")
	if !newRecording && item.LatestDate != "" {
		date = item.LatestDate
	}

	s.Artifacts.DeleteNum(num)
	textKey, audioKey := artifact.Key{Num: num, Date: date}.Pair()
	s.Artifacts.Put(textKey.Filename(), []byte(item.Text))
	s.Artifacts.Put(audioKey.Filename(), s.pending.audio)

	item.Status = script.StatusCompleted
	item.RecordSeconds = s.pending.duration
	item.LatestDate = date
	s.Removed.Remove(num)

	// Re-accepting the same buffer must keep this date.
	s.pending.isNew = false

	s.logger.Info("accepted recording",
		logging.Int(logging.FieldItemNum, num),
		logging.String("date", date),
		logging.Bool("new_recording", newRecording),
		logging.Float64("duration_seconds", item.RecordSeconds))
	return nil
}

// Remove marks the item Removed, which is authoritative over any uploaded
// artifacts, and discards everything stored for its num. Reversible by
// re-accepting.
func (s *Session) Remove(num int) error {
	item, ok := s.Item(num)
	if !ok {
		return fmt.Errorf("remove item %d: %w", num, ErrUnknownItem)
	}

	item.ClearSubmission(script.StatusRemoved)
	s.Removed.Add(num)
	s.Artifacts.DeleteNum(num)
	if s.selected == num {
		s.pending = nil
	}

	s.logger.Info("removed item", logging.Int(logging.FieldItemNum, num))
	return nil
}

// Merge appends prompts from an additional list, skipping texts already
// present. It returns the number of items added.
func (s *Session) Merge(promptData []byte) int {
	items, added := script.MergePrompts(s.Items, promptData)
	s.Items = items
	if added > 0 {
		s.logger.Info("merged prompts", logging.Int("added", added))
	}
	return added
}

// RenderScripts regenerates the prompt list from the in-memory items.
func (s *Session) RenderScripts() []byte {
	return script.RenderPrompts(s.Items)
}

// RenderRemovals regenerates the removal list.
func (s *Session) RenderRemovals() []byte {
	return script.RenderRemovals(s.Removed)
}
