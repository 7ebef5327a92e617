package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/rewriting"
	"github.com/jonathan/resume-tailor/internal/templates"
	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Generate tailored sections without writing or compiling them",
	Long: `Reads the job description, extracts the matching template's sections and asks the rewrite
service for tailored versions. The reply is written as JSON with "experience" and "skills" keys,
suitable as input for the stage command.`,
	RunE: runRewrite,
}

var (
	rewriteJobFile    string
	rewriteTemplates  string
	rewriteAPIKey     string
	rewriteModel      string
	rewriteOutputFile string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteJobFile, "job", "j", "", "Path to the job description file")
	rewriteCmd.Flags().StringVar(&rewriteTemplates, "templates", "", "Directory holding one folder per resume template")
	rewriteCmd.Flags().StringVar(&rewriteAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	rewriteCmd.Flags().StringVar(&rewriteModel, "model", "", "Gemini model")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{
		Job:          rewriteJobFile,
		TemplatesDir: rewriteTemplates,
		APIKey:       rewriteAPIKey,
		Model:        rewriteModel,
	})
	if err != nil {
		return err
	}
	defer restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	job, err := ingestion.ReadJobFile(cfg.Job)
	if err != nil {
		return err
	}
	assets, err := templates.Locate(job.Position, cfg.TemplatesDir)
	if err != nil {
		return err
	}

	tailored, err := newRewriter(cfg).Rewrite(ctx, job, templates.Extract(assets))
	if err != nil {
		return err
	}

	data, err := rewriting.EncodeResponse(tailored)
	if err != nil {
		return err
	}
	return writeOutput(rewriteOutputFile, data)
}
