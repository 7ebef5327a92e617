package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/compiler"
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/history"
	"github.com/jonathan/resume-tailor/internal/logging"
	"github.com/jonathan/resume-tailor/internal/rewriting"
	"github.com/jonathan/resume-tailor/internal/staging"
	"go.uber.org/zap"
)

// loadSettings resolves the configuration and installs the logger.
// The returned function flushes and restores the logger.
func loadSettings(flags config.Config) (*config.Config, func(), error) {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return cfg, logging.Setup(level), nil
}

func newRewriter(cfg *config.Config) *rewriting.Service {
	return rewriting.NewService(rewriting.Config{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxRetries: cfg.Retries(),
	})
}

func newStager(cfg *config.Config) *staging.Stager {
	return staging.New(compiler.NewPDFLatex(cfg.Compiler, cfg.CompileTimeout.Duration), cfg.OutputDir, cfg.MaxPages)
}

// openHistory opens the run history, falling back to no history when it is unavailable
func openHistory(ctx context.Context, cfg *config.Config) history.Store {
	store, err := history.Open(ctx, cfg.HistoryURL)
	if err != nil {
		zap.S().Named("cli").Warnw("run history unavailable", "url", cfg.HistoryURL, "error", err)
		return history.NopStore{}
	}
	return store
}

// writeJSON writes v as indented JSON to path, or to stdout when path is "" or "-"
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(path, data)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
