package main

import (
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/spf13/cobra"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse the job description file into a JobRecord JSON",
	Long:  "Reads the job description file (first line: position, remaining lines: description) and prints the parsed record as JSON.",
	RunE:  runParseJob,
}

var (
	parseJobFile    string
	parseOutputFile string
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseJobFile, "job", "j", "", "Path to the job description file (default docs/job_description.txt)")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{Job: parseJobFile})
	if err != nil {
		return err
	}
	defer restore()

	job, err := ingestion.ReadJobFile(cfg.Job)
	if err != nil {
		return err
	}
	return writeJSON(parseOutputFile, job)
}
