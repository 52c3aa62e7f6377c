// Package config provides loading and validation of the editor settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file used when no --config flag is given.
const DefaultPath = "config.yaml"

// Settings holds the full configuration for a run. Loaded once at startup
// and treated as immutable afterwards.
type Settings struct {
	Overleaf OverleafSettings `yaml:"overleaf"`
	LLM      LLMSettings      `yaml:"llm"`
	Editor   EditorSettings   `yaml:"editor"`
}

// OverleafSettings identifies the project and file the editor operates on.
type OverleafSettings struct {
	// Host overrides the Overleaf instance, e.g. for self-hosted servers.
	Host        string `yaml:"host"`
	ProjectName string `yaml:"project_name" validate:"required"`
	ResumeFile  string `yaml:"resume_file" validate:"required"`
}

// LLMSettings selects the generation model and response size limit.
type LLMSettings struct {
	Model     string `yaml:"model" validate:"required"`
	MaxTokens int    `yaml:"max_tokens" validate:"required,gt=0"`
}

// EditorSettings are the behavior flags for the edit cycle.
type EditorSettings struct {
	CreateBackup        bool `yaml:"create_backup"`
	ShowDiff            bool `yaml:"show_diff"`
	RequireConfirmation bool `yaml:"require_confirmation"`
}

// Load reads and validates the settings file at path.
// Returns an error if the file cannot be read, parsed, or is missing
// required fields.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every field the edit cycle depends on is present.
// All missing keys are reported in one message so the user can fix the
// file in a single pass.
func (s *Settings) Validate() error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config validation failed: %w", err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, yamlKeyFor(fe.StructNamespace()))
	}
	return fmt.Errorf("config error: missing or invalid keys: %s", strings.Join(missing, ", "))
}

// yamlKeyFor maps a validator namespace like "Settings.Overleaf.ProjectName"
// to the YAML key the user actually sees in the file.
func yamlKeyFor(namespace string) string {
	keys := map[string]string{
		"Settings.Overleaf.ProjectName": "overleaf.project_name",
		"Settings.Overleaf.ResumeFile":  "overleaf.resume_file",
		"Settings.LLM.Model":            "llm.model",
		"Settings.LLM.MaxTokens":        "llm.max_tokens",
	}
	if key, ok := keys[namespace]; ok {
		return key
	}
	return namespace
}
