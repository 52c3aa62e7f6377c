// Package backup persists timestamped local snapshots of the resume before
// every remote write.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDir is the directory snapshots are written under, relative to
	// the working directory.
	DefaultDir = "backups"

	filePrefix    = "resume_"
	fileExtension = ".tex"
	timeLayout    = "20060102_150405"
)

// Writer saves document snapshots to a local directory. The zero value is
// not usable; construct with NewWriter.
type Writer struct {
	dir     string
	enabled bool
	now     func() time.Time
}

// NewWriter creates a backup writer rooted at dir. When enabled is false,
// Save becomes a no-op.
func NewWriter(dir string, enabled bool) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir, enabled: enabled, now: time.Now}
}

// Save writes content to a new timestamped file and returns its path.
// Files are never overwritten: a second snapshot within the same wall-clock
// second gets a short random suffix. Returns ("", nil) when disabled.
func (w *Writer) Save(content string) (string, error) {
	if !w.enabled {
		return "", nil
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory %s: %w", w.dir, err)
	}

	stamp := w.now().Format(timeLayout)
	path := filepath.Join(w.dir, filePrefix+stamp+fileExtension)

	err := writeExclusive(path, content)
	if errors.Is(err, os.ErrExist) {
		suffix := uuid.NewString()[:8]
		path = filepath.Join(w.dir, filePrefix+stamp+"_"+suffix+fileExtension)
		err = writeExclusive(path, content)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", path, err)
	}
	return path, nil
}

// writeExclusive creates path with content, failing if it already exists.
func writeExclusive(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
