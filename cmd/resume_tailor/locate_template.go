package main

import (
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/templates"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
)

var locateTemplateCmd = &cobra.Command{
	Use:   "locate-template",
	Short: "Show which template matches a position and what it contains",
	Long: `Matches the position (from --position, or the first line of the job description file)
against the template directory names and reports the experience and skills files found.
With --extract the section contents are read as well.`,
	RunE: runLocateTemplate,
}

var (
	locatePosition  string
	locateJobFile   string
	locateTemplates string
	locateExtract   bool
	locateJSON      bool
)

func init() {
	locateTemplateCmd.Flags().StringVarP(&locatePosition, "position", "p", "", "Position to match (default: first line of the job description)")
	locateTemplateCmd.Flags().StringVarP(&locateJobFile, "job", "j", "", "Path to the job description file")
	locateTemplateCmd.Flags().StringVar(&locateTemplates, "templates", "", "Directory holding one folder per resume template")
	locateTemplateCmd.Flags().BoolVar(&locateExtract, "extract", false, "Also read the section files")
	locateTemplateCmd.Flags().BoolVar(&locateJSON, "json", false, "Print JSON instead of a summary")

	rootCmd.AddCommand(locateTemplateCmd)
}

func runLocateTemplate(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{Job: locateJobFile, TemplatesDir: locateTemplates})
	if err != nil {
		return err
	}
	defer restore()

	position, err := resolvePosition(locatePosition, cfg.Job)
	if err != nil {
		return err
	}

	assets, err := templates.Locate(position, cfg.TemplatesDir)
	if err != nil {
		return err
	}

	var content types.ExtractedContent
	if locateExtract {
		content = templates.Extract(assets)
	}

	if locateJSON {
		return writeJSON("", struct {
			Assets  *types.AssetMap        `json:"assets"`
			Content types.ExtractedContent `json:"content,omitempty"`
		}{assets, content})
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAssets(assets)
	if content != nil {
		printer.PrintExtracted(content)
	}
	return nil
}

// resolvePosition returns position, or the position line of the job file when empty
func resolvePosition(position, jobPath string) (string, error) {
	if position != "" {
		return position, nil
	}
	job, err := ingestion.ReadJobFile(jobPath)
	if err != nil {
		return "", err
	}
	return job.Position, nil
}
