// Package compiler turns a LaTeX working directory into a PDF.
package compiler

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// MainTeX is the entry document compiled in the working directory
	MainTeX = "main.tex"
	// MainPDF is the document the compiler is expected to produce
	MainPDF = "main.pdf"
	// MainLog is the compiler log scanned for errors after a failure
	MainLog = "main.log"

	// DefaultBinary is the compiler executable looked up on PATH
	DefaultBinary = "pdflatex"
	// DefaultTimeout bounds a single compiler pass
	DefaultTimeout = 60 * time.Second
	// DefaultPasses is two so cross-references settle
	DefaultPasses = 2
)

// Result describes a successful compilation
type Result struct {
	PDFPath string
	Passes  int
	// Output is the combined stdout/stderr of the last pass
	Output string
}

// Compiler builds main.pdf from main.tex inside workDir
type Compiler interface {
	Compile(ctx context.Context, workDir string) (*Result, error)
}

// PDFLatex runs a pdflatex-compatible binary in nonstop mode.
// Zero fields take their defaults.
type PDFLatex struct {
	Binary  string
	Timeout time.Duration
	Passes  int
}

// NewPDFLatex returns a compiler with the given binary and per-pass timeout
func NewPDFLatex(binary string, timeout time.Duration) *PDFLatex {
	return &PDFLatex{Binary: binary, Timeout: timeout}
}

// Compile implements Compiler
func (p *PDFLatex) Compile(ctx context.Context, workDir string) (*Result, error) {
	binary, timeout, passes := p.settings()
	log := zap.S().Named("compiler")

	if _, err := os.Stat(filepath.Join(workDir, MainTeX)); err != nil {
		return nil, &FailedError{Message: fmt.Sprintf("%s not found in %s", MainTeX, workDir), Cause: err}
	}

	binPath, err := exec.LookPath(binary)
	if err != nil {
		return nil, &FailedError{
			Message: fmt.Sprintf("%s not found; install a LaTeX distribution (e.g. TeX Live)", binary),
			Cause:   err,
		}
	}

	pdfPath := filepath.Join(workDir, MainPDF)
	// a PDF left over from an earlier run must not mask a failure
	if err := os.Remove(pdfPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &FailedError{Message: "failed to remove stale " + MainPDF, Cause: err}
	}

	var output string
	var lastErr error
	for pass := 1; pass <= passes; pass++ {
		log.Infow("running LaTeX pass", "binary", binary, "pass", pass, "of", passes, "dir", workDir)

		output, lastErr = runPass(ctx, binPath, workDir, timeout)
		if errors.Is(lastErr, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Pass: pass, Timeout: timeout}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &FailedError{Message: "compilation cancelled", Cause: ctxErr}
		}
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return nil, &FailedError{
			Message: fmt.Sprintf("%s was not generated; see %s", MainPDF, filepath.Join(workDir, MainLog)),
			Errors:  ScanLogErrors(filepath.Join(workDir, MainLog)),
			Cause:   lastErr,
		}
	}
	if lastErr != nil {
		// nonstop mode exits non-zero on recoverable errors while still writing a PDF
		log.Warnw("LaTeX reported errors but produced a PDF", "error", lastErr)
	}

	return &Result{PDFPath: pdfPath, Passes: passes, Output: output}, nil
}

func (p *PDFLatex) settings() (string, time.Duration, int) {
	binary, timeout, passes := p.Binary, p.Timeout, p.Passes
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if passes <= 0 {
		passes = DefaultPasses
	}
	return binary, timeout, passes
}

func runPass(ctx context.Context, binPath, workDir string, timeout time.Duration) (string, error) {
	passCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(passCtx, binPath, "-interaction=nonstopmode", MainTeX)
	cmd.Dir = workDir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if passCtx.Err() != nil {
		return out.String(), passCtx.Err()
	}
	return out.String(), err
}

// ScanLogErrors returns the lines of a LaTeX log that start with "!".
// A missing or unreadable log yields nil.
func ScanLogErrors(logPath string) []string {
	f, err := os.Open(logPath)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "!") {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	return lines
}
