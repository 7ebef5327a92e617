package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available resume templates",
	RunE:  runTemplates,
}

var templatesDir string

func init() {
	templatesCmd.Flags().StringVar(&templatesDir, "templates", "", "Directory holding one folder per resume template (default latex/resume)")

	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{TemplatesDir: templatesDir})
	if err != nil {
		return err
	}
	defer restore()

	names, err := templates.List(cfg.TemplatesDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No templates found in %s\n", cfg.TemplatesDir)
		return nil
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
