package backup

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backupNamePattern = regexp.MustCompile(`^resume_\d{8}_\d{6}(_[0-9a-f]{8})?\.tex$`)

func TestSave_Disabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	w := NewWriter(dir, false)

	path, err := w.Save("content")
	require.NoError(t, err)
	assert.Empty(t, path)

	// Disabled writer must not even create the directory.
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSave_WritesOriginalContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, true)

	start := time.Now().Truncate(time.Second)
	path, err := w.Save("\\documentclass{article} OLD")
	end := time.Now()
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.Regexp(t, backupNamePattern, name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\\documentclass{article} OLD", string(data))

	stamp, err := time.ParseInLocation(timeLayout, name[len(filePrefix):len(filePrefix)+len(timeLayout)], time.Local)
	require.NoError(t, err)
	assert.False(t, stamp.Before(start), "timestamp before cycle start")
	assert.False(t, stamp.After(end), "timestamp after cycle end")
}

func TestSave_OneFilePerSave(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, true)

	_, err := w.Save("first")
	require.NoError(t, err)
	_, err = w.Save("second")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSave_SameSecondCollisionGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, true)
	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	first, err := w.Save("first")
	require.NoError(t, err)
	second, err := w.Save("second")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(dir, "resume_20260825_120000.tex"), first)
	assert.Regexp(t, `resume_20260825_120000_[0-9a-f-]{8}\.tex$`, second)

	// The first snapshot is never overwritten.
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestNewWriter_DefaultDir(t *testing.T) {
	w := NewWriter("", true)
	assert.Equal(t, DefaultDir, w.dir)
}
