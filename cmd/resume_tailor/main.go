// Package main provides the resume_tailor command line tool.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "Tailor a LaTeX resume template to a job description",
	Long: `resume_tailor reads a job description, finds the matching LaTeX resume template,
asks Gemini to rewrite its experience and skills sections for the job, and compiles
the tailored copy to PDF.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file (flags override its values)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		observability.NewPrinter(os.Stderr).Error(err)
		os.Exit(1)
	}
}
