package main

import (
	"context"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/history"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent tailoring runs",
	RunE:  runHistory,
}

var (
	historyURL   string
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.Flags().StringVar(&historyURL, "history", "", "Run history: SQLite path, sqlite://path or postgres:// URL")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultListLimit, "Number of runs to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON instead of a summary")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, restore, err := loadSettings(config.Config{HistoryURL: historyURL})
	if err != nil {
		return err
	}
	defer restore()

	ctx := context.Background()
	store, err := history.Open(ctx, cfg.HistoryURL)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		return writeJSON("", runs)
	}
	observability.NewPrinter(os.Stdout).PrintRuns(runs)
	return nil
}
