// Package validation provides structural sanity checks on rewritten LaTeX.
// Findings are warnings only; the edit cycle never blocks on them.
package validation

import (
	"fmt"
	"strings"
)

// Warning describes one suspicious property of the rewritten document.
type Warning struct {
	Type    string
	Details string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Type, w.Details)
}

// truncationRatio flags responses much shorter than the input; a heavy
// instruction-following failure usually shows up as a cut-off document.
const truncationRatio = 0.5

// CheckRewrite compares the rewritten document against the original and
// returns warnings for structural problems a bad model response would
// introduce. A nil slice means nothing looked wrong.
func CheckRewrite(original, rewritten string) []Warning {
	var warnings []Warning

	if open, close := countBraces(rewritten); open != close {
		warnings = append(warnings, Warning{
			Type:    "unbalanced_braces",
			Details: fmt.Sprintf("%d opening vs %d closing braces", open, close),
		})
	}

	for _, marker := range []string{`\documentclass`, `\begin{document}`, `\end{document}`} {
		if strings.Contains(original, marker) && !strings.Contains(rewritten, marker) {
			warnings = append(warnings, Warning{
				Type:    "missing_marker",
				Details: fmt.Sprintf("%s present in original but absent from rewrite", marker),
			})
		}
	}

	if len(original) > 0 && float64(len(rewritten)) < truncationRatio*float64(len(original)) {
		warnings = append(warnings, Warning{
			Type:    "possible_truncation",
			Details: fmt.Sprintf("rewrite is %d characters, original was %d", len(rewritten), len(original)),
		})
	}

	return warnings
}

// countBraces counts unescaped { and } occurrences.
func countBraces(text string) (open, close int) {
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '{':
			open++
		case r == '}':
			close++
		}
	}
	return open, close
}
