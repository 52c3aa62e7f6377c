package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/backup"
	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/overleaf"
)

var (
	editListProjects bool
	editInstruction  string
	editConfigPath   string
)

func init() {
	rootCmd.Flags().BoolVar(&editListProjects, "list-projects", false, "List all available Overleaf projects and exit")
	rootCmd.Flags().StringVarP(&editInstruction, "instruction", "i", "", "Single editing instruction (non-interactive mode)")
	rootCmd.Flags().StringVarP(&editConfigPath, "config", "c", config.DefaultPath, "Path to configuration file")
}

func runEdit(_ *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(os.Stdout)
	printer.Statusf("Resume Editor with Gemini & Overleaf")

	cfg, err := config.Load(editConfigPath)
	if err != nil {
		printer.Dimf("Please create a %s file. See README.md for instructions.", config.DefaultPath)
		return err
	}

	ctx := context.Background()

	client := overleaf.NewClient(cfg.Overleaf.Host)
	printer.Statusf("Connecting to Overleaf...")
	if err := client.Connect(ctx); err != nil {
		printer.Dimf("Make sure you're logged into Overleaf in Chrome or Firefox.")
		return err
	}
	printer.Successf("Connected to Overleaf")

	if editListProjects {
		projects, err := client.ListProjects(ctx)
		if err != nil {
			return err
		}
		printer.Projects(projects)
		return nil
	}

	apiKey, err := llm.APIKeyFromEnv()
	if err != nil {
		return err
	}
	llmClient, err := llm.NewClient(ctx, &llm.Config{Model: cfg.LLM.Model, MaxTokens: cfg.LLM.MaxTokens}, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = llmClient.Close() }()
	printer.Successf("Connected to Gemini API")

	printer.Statusf("Looking for project: %s", cfg.Overleaf.ProjectName)
	project, matches, err := client.FindProject(ctx, cfg.Overleaf.ProjectName)
	if err != nil {
		var notFound *overleaf.ProjectNotFoundError
		if errors.As(err, &notFound) {
			printer.Dimf("Run with --list-projects to see all available projects.")
		}
		return err
	}
	if matches > 1 {
		printer.Warnf("%d projects are named %q; using the first one (ID: %s)", matches, project.Name, project.ID)
	}
	printer.Successf("Found project: %s", project.Name)

	ed := editor.New(
		cfg,
		client.OpenProject(project.ID),
		llmClient,
		backup.NewWriter("", cfg.Editor.CreateBackup),
		printer,
		os.Stdin,
	)

	if editInstruction != "" {
		if _, err := ed.ApplyEdit(ctx, editInstruction); err != nil {
			return err
		}
		printer.Successf("Done!")
		return nil
	}
	return ed.Interactive(ctx)
}
