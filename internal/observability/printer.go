// Package observability provides styled terminal output for the editor.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-editor/internal/overleaf"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	lineNumStyle = lipgloss.NewStyle().Faint(true).Width(5).Align(lipgloss.Right)
	bannerStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// Printer handles all user-facing output. All methods write to the writer
// given at construction, so tests can capture output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Statusf prints a progress line.
func (p *Printer) Statusf(format string, args ...any) {
	fmt.Fprintln(p.out, statusStyle.Render(fmt.Sprintf(format, args...)))
}

// Successf prints a completed-step line.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintln(p.out, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, warnStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Dimf prints a de-emphasized line.
func (p *Printer) Dimf(format string, args ...any) {
	fmt.Fprintln(p.out, dimStyle.Render(fmt.Sprintf(format, args...)))
}

// Banner prints the given lines inside a rounded border panel.
func (p *Printer) Banner(lines ...string) {
	fmt.Fprintln(p.out, bannerStyle.Render(strings.Join(lines, "\n")))
}

// Projects prints the numbered project listing.
func (p *Printer) Projects(projects []overleaf.Project) {
	p.Statusf("Available Overleaf Projects:")
	for i, project := range projects {
		fmt.Fprintf(p.out, "%d. %s (ID: %s)\n", i+1, project.Name, project.ID)
	}
}

// Document prints the full document with line numbers under a titled rule.
func (p *Printer) Document(title, content string) {
	rule := strings.Repeat("═", 3)
	fmt.Fprintln(p.out, statusStyle.Render(fmt.Sprintf("%s %s %s", rule, title, rule)))
	for i, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "%s %s\n", lineNumStyle.Render(fmt.Sprintf("%d", i+1)), line)
	}
	fmt.Fprintln(p.out, statusStyle.Render(strings.Repeat("═", len(title)+8)))
}
