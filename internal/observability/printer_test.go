package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-editor/internal/overleaf"
)

func TestProjects(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrinter(out)

	p.Projects([]overleaf.Project{
		{ID: "proj1", Name: "MyCV"},
		{ID: "proj2", Name: "Thesis"},
	})

	assert.Contains(t, out.String(), "1. MyCV (ID: proj1)")
	assert.Contains(t, out.String(), "2. Thesis (ID: proj2)")
}

func TestDocument_NumbersEveryLine(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrinter(out)

	p.Document("Edited Resume", "line one\nline two")

	s := out.String()
	assert.Contains(t, s, "Edited Resume")
	assert.Contains(t, s, "line one")
	assert.Contains(t, s, "line two")
	assert.Contains(t, s, "1")
	assert.Contains(t, s, "2")
}

func TestStatusLines(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrinter(out)

	p.Statusf("Connecting to %s...", "Overleaf")
	p.Successf("Connected")
	p.Warnf("%d duplicates", 2)
	p.Dimf("Backup saved to %s", "backups/resume_20260825_120000.tex")

	s := out.String()
	assert.Contains(t, s, "Connecting to Overleaf...")
	assert.Contains(t, s, "✓ Connected")
	assert.Contains(t, s, "⚠ 2 duplicates")
	assert.Contains(t, s, "Backup saved to backups/resume_20260825_120000.tex")
}

func TestBanner(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrinter(out)

	p.Banner("Resume Editor - Interactive Mode", "Enter editing instructions, or 'quit' to exit")

	assert.Contains(t, out.String(), "Resume Editor - Interactive Mode")
}
