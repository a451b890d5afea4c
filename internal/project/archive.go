package project

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/RogerChu8/voiceRecorder-app/internal/artifact"
)

// DefaultArchiveName is the exported zip's name for the given day.
func DefaultArchiveName(now time.Time) string {
	return fmt.Sprintf("project_%s.zip", now.Format("20060102"))
}

// ExportArchive writes the portable project snapshot: the regenerated
// prompt list, the removal list, and every retained artifact pair. The
// archive is an immutable snapshot of the reconciled state.
func (s *Session) ExportArchive(w io.Writer) error {
	zw := zip.NewWriter(w)

	if err := writeZipEntry(zw, ScriptsFileName, s.RenderScripts()); err != nil {
		return err
	}
	if err := writeZipEntry(zw, RemovedFileName, s.RenderRemovals()); err != nil {
		return err
	}

	for _, name := range s.Artifacts.Names() {
		if _, ok := artifact.ParseName(name); !ok {
			continue
		}
		data, _ := s.Artifacts.Get(name)
		if err := writeZipEntry(zw, name, data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("write archive entry %s: %w", name, err)
	}
	return nil
}

// ReadArchive flattens a project zip into a filename-to-bytes map. Nested
// paths lose their directories so archives repacked by hand still load.
func ReadArchive(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string][]byte, len(zr.File))
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %s: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read archive entry %s: %w", entry.Name, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close archive entry %s: %w", entry.Name, closeErr)
		}
		files[path.Base(entry.Name)] = content
	}
	return files, nil
}

// LoadArchive resumes a session from an exported zip.
func LoadArchive(data []byte, logger *slog.Logger) (*Session, error) {
	files, err := ReadArchive(data)
	if err != nil {
		return nil, err
	}
	return Load(files, logger)
}
