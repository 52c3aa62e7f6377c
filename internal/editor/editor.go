// Package editor sequences the edit cycle: read the resume from Overleaf,
// snapshot it locally, rewrite it with the LLM, and upload the result after
// optional display and confirmation.
package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/backup"
	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/validation"
)

// DocumentStore is the slice of the Overleaf project handle the edit cycle
// needs. *overleaf.ProjectIO satisfies it.
type DocumentStore interface {
	ReadFile(ctx context.Context, path string) (string, error)
	WriteFile(ctx context.Context, path, content string) error
}

// Editor owns the per-run state: settings, the project file handle, the LLM
// client, the backup writer, and the input/output streams.
type Editor struct {
	settings *config.Settings
	store    DocumentStore
	client   llm.Client
	backups  *backup.Writer
	printer  *observability.Printer
	input    *bufio.Scanner
}

// New wires an Editor from its collaborators. input carries the user's
// interactive answers (confirmation and instruction lines).
func New(settings *config.Settings, store DocumentStore, client llm.Client, backups *backup.Writer, printer *observability.Printer, input io.Reader) *Editor {
	return &Editor{
		settings: settings,
		store:    store,
		client:   client,
		backups:  backups,
		printer:  printer,
		input:    bufio.NewScanner(input),
	}
}

// ApplyEdit runs one full edit cycle for instruction. It returns true when
// the rewritten document was uploaded, false when the user declined at the
// confirmation gate. Any adapter failure aborts the cycle with an error.
func (e *Editor) ApplyEdit(ctx context.Context, instruction string) (bool, error) {
	resumePath := e.settings.Overleaf.ResumeFile

	e.printer.Statusf("Reading %s...", resumePath)
	original, err := e.store.ReadFile(ctx, resumePath)
	if err != nil {
		return false, fmt.Errorf("error reading resume: %w", err)
	}
	e.printer.Successf("Read %d characters", len(original))

	backupPath, err := e.backups.Save(original)
	if err != nil {
		return false, err
	}
	if backupPath != "" {
		e.printer.Dimf("Backup saved to %s", backupPath)
	}

	e.printer.Statusf("Sending to %s for editing...", e.settings.LLM.Model)
	edited, err := editing.RewriteResume(ctx, e.client, original, instruction)
	if err != nil {
		return false, err
	}
	e.printer.Successf("Model finished editing")

	for _, warning := range validation.CheckRewrite(original, edited) {
		e.printer.Warnf("%s", warning)
	}

	if e.settings.Editor.ShowDiff {
		e.printer.Document("Edited Resume", edited)
	}

	if e.settings.Editor.RequireConfirmation && !e.confirm("Apply these changes to Overleaf?") {
		e.printer.Dimf("Edit cancelled")
		return false, nil
	}

	e.printer.Statusf("Uploading to %s...", resumePath)
	if err := e.store.WriteFile(ctx, resumePath, edited); err != nil {
		return false, fmt.Errorf("error writing resume: %w", err)
	}
	e.printer.Successf("Resume updated successfully")
	return true, nil
}

// confirm asks a yes/no question on the editor's input stream.
// Anything other than y/yes declines.
func (e *Editor) confirm(question string) bool {
	e.printer.Statusf("%s [y/N]", question)
	if !e.input.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(e.input.Text()))
	return answer == "y" || answer == "yes"
}
