// Package llm provides the text-generation client used to rewrite the
// resume. It abstracts the provider behind a small interface so the edit
// cycle can be tested without network access.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// APIKeyEnv is the environment variable holding the Gemini credential.
const APIKeyEnv = "GEMINI_API_KEY"

// Client is an abstraction over LLM providers.
type Client interface {
	// Rewrite sends the system instruction and user prompt to the model and
	// returns the generated text verbatim.
	Rewrite(ctx context.Context, system, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Config selects the model and bounds the response size.
type Config struct {
	Model     string
	MaxTokens int
}

// APIKeyFromEnv returns the Gemini API key, with remediation guidance when
// it is unset.
func APIKeyFromEnv() (string, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set (set it with: export %s='your-api-key')", APIKeyEnv, APIKeyEnv)
	}
	return key, nil
}

// NewClient creates the LLM client for the configured provider.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil || config.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Rewrite generates the edited document text.
func (c *GeminiClient) Rewrite(ctx context.Context, system, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(0.2) // Low temperature for faithful edits
	if c.config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.config.MaxTokens))
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts the first candidate's text parts.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
