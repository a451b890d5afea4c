package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/RogerChu8/voiceRecorder-app/internal/artifact"
	"github.com/RogerChu8/voiceRecorder-app/internal/logging"
)

const lockFileName = ".voicerec.lock"

// LockDir takes the project directory's advisory lock. A held lock means
// another editor is active, which is a hard error naming the lock path.
// The caller must Unlock the returned lock when done.
func LockDir(dir string) (*flock.Flock, error) {
	lockPath := filepath.Join(dir, lockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("project is already open by another editor (lock %s held)", lockPath)
	}
	return lock, nil
}

// LoadDir resumes a session from a project directory's top-level files.
// The session's log events carry the directory's base name as the project.
func LoadDir(dir string, logger *slog.Logger) (*Session, error) {
	if logger != nil {
		logger = logger.With(logging.String(logging.FieldProject, filepath.Base(dir)))
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}

	files := make(map[string][]byte)
	for _, entry := range dirEntries {
		if entry.IsDir() || entry.Name() == lockFileName {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			return nil, fmt.Errorf("read project file %s: %w", entry.Name(), readErr)
		}
		files[entry.Name()] = data
	}

	return Load(files, logger)
}

// SyncDir writes the session's reconciled state back to the directory:
// the prompt list, the removal list, and the retained artifacts. Artifact
// files on disk that are no longer retained are deleted; files that are
// not project artifacts are left alone.
func (s *Session) SyncDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure project directory: %w", err)
	}

	if err := writeProjectFile(dir, ScriptsFileName, s.RenderScripts()); err != nil {
		return err
	}
	if err := writeProjectFile(dir, RemovedFileName, s.RenderRemovals()); err != nil {
		return err
	}

	retained := make(map[string]struct{})
	for _, name := range s.Artifacts.Names() {
		if _, ok := artifact.ParseName(name); !ok {
			continue
		}
		data, _ := s.Artifacts.Get(name)
		if err := writeProjectFile(dir, name, data); err != nil {
			return err
		}
		retained[name] = struct{}{}
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read project directory: %w", err)
	}
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := artifact.ParseName(name); !ok {
			continue
		}
		if _, ok := retained[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("prune stale artifact %s: %w", name, err)
		}
	}

	return nil
}

func writeProjectFile(dir, name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write project file %s: %w", name, err)
	}
	return nil
}
