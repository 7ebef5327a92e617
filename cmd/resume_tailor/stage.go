package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/rewriting"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/templates"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Write tailored sections from a JSON file into the template copy and compile",
	Long: `Takes a tailored content JSON file (as written by the rewrite command), writes its sections
into the matching template's _Temp copy and compiles it to PDF.`,
	RunE: runStage,
}

var (
	stageInputFile   string
	stagePosition    string
	stageJobFile     string
	stageTemplates   string
	stageOutputDir   string
	stageCompiler    string
	stageSkipCompile bool
)

func init() {
	stageCmd.Flags().StringVarP(&stageInputFile, "in", "i", "", "Path to the tailored content JSON file (required)")
	stageCmd.Flags().StringVarP(&stagePosition, "position", "p", "", "Position to match (default: first line of the job description)")
	stageCmd.Flags().StringVarP(&stageJobFile, "job", "j", "", "Path to the job description file")
	stageCmd.Flags().StringVar(&stageTemplates, "templates", "", "Directory holding one folder per resume template")
	stageCmd.Flags().StringVar(&stageOutputDir, "output-dir", "", "Directory for the compiled PDF")
	stageCmd.Flags().StringVar(&stageCompiler, "compiler", "", "LaTeX compiler binary")
	stageCmd.Flags().BoolVar(&stageSkipCompile, "skip-compile", false, "Write the sections but do not compile")

	_ = stageCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(stageCmd)
}

func runStage(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{
		Job:          stageJobFile,
		TemplatesDir: stageTemplates,
		OutputDir:    stageOutputDir,
		Compiler:     stageCompiler,
	})
	if err != nil {
		return err
	}
	defer restore()

	if err := schemas.ValidateJSONFile(schemas.TailoredContentSchema(), stageInputFile); err != nil {
		return fmt.Errorf("%s is not valid tailored content: %w", stageInputFile, err)
	}
	data, err := os.ReadFile(stageInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	tailored, err := rewriting.ParseResponse(string(data))
	if err != nil {
		return err
	}

	position, err := resolvePosition(stagePosition, cfg.Job)
	if err != nil {
		return err
	}
	assets, err := templates.Locate(position, cfg.TemplatesDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stager := newStager(cfg)
	printer := observability.NewPrinter(os.Stdout)

	var result *types.StagingResult
	if stageSkipCompile {
		scratch, _, err := stager.LocateOrCreateScratch(assets.Root)
		if err != nil {
			return err
		}
		result = &types.StagingResult{TempFolder: scratch, UpdatedFiles: stager.WriteTailored(scratch, tailored, assets)}
	} else {
		result, err = stager.Process(ctx, assets, tailored)
		if err != nil {
			return err
		}
	}

	printer.PrintStagingResult(result)
	return nil
}
