package editing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records the prompts it receives and replies with a canned
// response.
type fakeClient struct {
	system   string
	prompt   string
	response string
	err      error
}

func (f *fakeClient) Rewrite(_ context.Context, system, prompt string) (string, error) {
	f.system = system
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestRewriteResume_PromptContents(t *testing.T) {
	client := &fakeClient{response: "\\documentclass{article} NEW"}

	edited, err := RewriteResume(context.Background(), client, "\\documentclass{article} OLD", "make it more concise")
	require.NoError(t, err)
	assert.Equal(t, "\\documentclass{article} NEW", edited)

	assert.Contains(t, client.system, "Preserve all LaTeX formatting")
	assert.Contains(t, client.prompt, "\\documentclass{article} OLD")
	assert.Contains(t, client.prompt, "make it more concise")
	// The document comes before the instruction in the user message.
	assert.Less(t,
		strings.Index(client.prompt, "\\documentclass{article} OLD"),
		strings.Index(client.prompt, "make it more concise"))
}

func TestRewriteResume_ClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}

	_, err := RewriteResume(context.Background(), client, "doc", "instr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "\\documentclass{article}",
			want: "\\documentclass{article}",
		},
		{
			name: "latex fence",
			in:   "```latex\n\\documentclass{article}\n```",
			want: "\\documentclass{article}",
		},
		{
			name: "tex fence",
			in:   "```tex\n\\documentclass{article}\n```",
			want: "\\documentclass{article}",
		},
		{
			name: "bare fence",
			in:   "```\n\\documentclass{article}\n```",
			want: "\\documentclass{article}",
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```latex\n\\documentclass{article}\n```\n  ",
			want: "\\documentclass{article}",
		},
		{
			name: "backticks inside document are preserved",
			in:   "uses `verb` markup",
			want: "uses `verb` markup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}
