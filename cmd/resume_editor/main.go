// Package main provides the entry point for the resume_editor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "resume_editor",
	Short:         "Edit your Overleaf resume with Gemini",
	Long:          "Resume Editor rewrites a LaTeX resume hosted on Overleaf from natural-language instructions, using the Gemini API and your existing browser login.",
	RunE:          runEdit,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
