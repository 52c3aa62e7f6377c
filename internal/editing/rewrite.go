// Package editing assembles the rewrite prompt, calls the LLM, and cleans
// the response into a bare LaTeX document.
package editing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/prompts"
)

const promptFile = "editing.json"

// RewriteResume sends the document and instruction to the LLM and returns
// the edited document. The response is trusted as the new document body;
// only markdown code fences are stripped.
func RewriteResume(ctx context.Context, client llm.Client, document, instruction string) (string, error) {
	system, err := prompts.Get(promptFile, "system")
	if err != nil {
		return "", err
	}
	template, err := prompts.Get(promptFile, "user")
	if err != nil {
		return "", err
	}

	prompt := prompts.Format(template, map[string]string{
		"Document":    document,
		"Instruction": instruction,
	})

	edited, err := client.Rewrite(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to rewrite resume: %w", err)
	}

	return stripCodeFences(edited), nil
}

// stripCodeFences removes a wrapping markdown code block from the reply.
// Models often return LaTeX inside ```latex fences despite the prompt.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```latex")
	trimmed = strings.TrimPrefix(trimmed, "```tex")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
