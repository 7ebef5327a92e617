package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full tailoring workflow end-to-end",
	Long: `Reads the job description, locates the matching template, extracts its experience and
skills sections, rewrites them for the job, writes them into the template's _Temp copy and
compiles it to PDF.

Configuration can be loaded with --config; flags override file and environment values.`,
	RunE: runPipelineCmd,
}

var (
	runJob            string
	runTemplatesDir   string
	runOutputDir      string
	runAPIKey         string
	runModel          string
	runCompiler       string
	runCompileTimeout time.Duration
	runMaxRetries     int
	runMaxPages       int
	runHistoryURL     string
	runSkipCompile    bool
	runDryRun         bool
	runVerbose        bool
)

func init() {
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to the job description file (default docs/job_description.txt)")
	runCommand.Flags().StringVar(&runTemplatesDir, "templates", "", "Directory holding one folder per resume template (default latex/resume)")
	runCommand.Flags().StringVar(&runOutputDir, "output-dir", "", "Directory for the compiled PDF (default output/pdf at the project root)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Gemini model (default gemini-2.5-flash)")
	runCommand.Flags().StringVar(&runCompiler, "compiler", "", "LaTeX compiler binary (default pdflatex)")
	runCommand.Flags().DurationVar(&runCompileTimeout, "compile-timeout", 0, "Time limit per compiler pass (default 60s)")
	runCommand.Flags().IntVar(&runMaxRetries, "max-retries", 0, "Retries for failed rewrite calls (default 2)")
	runCommand.Flags().IntVar(&runMaxPages, "max-pages", 0, "Warn when the PDF has more pages than this (0 disables)")
	runCommand.Flags().StringVar(&runHistoryURL, "history", "", "Run history: SQLite path, sqlite://path or postgres:// URL")
	runCommand.Flags().BoolVar(&runSkipCompile, "skip-compile", false, "Write the tailored sections but do not compile")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Stop after extracting the template content")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress and debug logs")

	rootCmd.AddCommand(runCommand)
}

// runFlags collects only the flags that were set explicitly
func runFlags(cmd *cobra.Command) config.Config {
	var flags config.Config
	if cmd.Flags().Changed("job") {
		flags.Job = runJob
	}
	if cmd.Flags().Changed("templates") {
		flags.TemplatesDir = runTemplatesDir
	}
	if cmd.Flags().Changed("output-dir") {
		flags.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("api-key") {
		flags.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		flags.Model = runModel
	}
	if cmd.Flags().Changed("compiler") {
		flags.Compiler = runCompiler
	}
	if cmd.Flags().Changed("compile-timeout") {
		flags.CompileTimeout = config.Duration{Duration: runCompileTimeout}
	}
	if cmd.Flags().Changed("max-retries") {
		retries := runMaxRetries
		flags.MaxRetries = &retries
	}
	if cmd.Flags().Changed("max-pages") {
		flags.MaxPages = runMaxPages
	}
	if cmd.Flags().Changed("history") {
		flags.HistoryURL = runHistoryURL
	}
	flags.Verbose = runVerbose
	return flags
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(runFlags(cmd))
	if err != nil {
		return err
	}
	defer restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openHistory(ctx, cfg)
	defer func() { _ = store.Close() }()

	_, err = pipeline.Run(ctx, pipeline.Options{
		JobPath:      cfg.Job,
		TemplatesDir: cfg.TemplatesDir,
		Rewriter:     newRewriter(cfg),
		Stager:       newStager(cfg),
		History:      store,
		Printer:      observability.NewPrinter(os.Stdout),
		DryRun:       runDryRun,
		SkipCompile:  runSkipCompile,
		Verbose:      cfg.Verbose,
	})
	if err != nil {
		zap.S().Named("cli").Debugw("run failed", "kind", pipeline.Classify(err))
		return err
	}
	return nil
}
