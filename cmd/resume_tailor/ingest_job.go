package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/spf13/cobra"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Fetch a job posting from a URL into the job description file",
	Long: `Downloads a job posting, extracts its main text (using a headless browser for
JavaScript-rendered boards when --use-browser is set) and writes it in the
position-then-description format read by the run command.`,
	RunE: runIngestJob,
}

var (
	ingestURL            string
	ingestPosition       string
	ingestOutFile        string
	ingestUseBrowser     bool
	ingestBrowserTimeout time.Duration
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from (required)")
	ingestJobCmd.Flags().StringVarP(&ingestPosition, "position", "p", "", "Position title (default: the posting's heading)")
	ingestJobCmd.Flags().StringVarP(&ingestOutFile, "out", "o", "", "Job description file to write (default docs/job_description.txt)")
	ingestJobCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	ingestJobCmd.Flags().DurationVar(&ingestBrowserTimeout, "browser-timeout", 30*time.Second, "Time limit for browser rendering")

	_ = ingestJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{Job: ingestOutFile})
	if err != nil {
		return err
	}
	defer restore()

	job, err := ingestion.IngestFromURL(context.Background(), ingestURL, ingestion.URLOptions{
		Position:       ingestPosition,
		UseBrowser:     ingestUseBrowser,
		BrowserTimeout: ingestBrowserTimeout,
	})
	if err != nil {
		return err
	}

	if err := ingestion.WriteJobFile(cfg.Job, job); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJobRecord(job)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", cfg.Job)
	return nil
}
