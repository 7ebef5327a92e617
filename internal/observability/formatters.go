// Package observability renders pipeline progress and results for the terminal.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewChars is how much tailored text is echoed back
	previewChars = 100
	// descriptionPreviewChars bounds the job description shown in the job box
	descriptionPreviewChars = 240
)

// Printer writes human-readable progress. Styling is dropped automatically
// when the writer is not a terminal.
type Printer struct {
	out io.Writer

	titleStyle   lipgloss.Style
	successStyle lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:          out,
		titleStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		successStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warnStyle:    r.NewStyle().Foreground(lipgloss.Color("214")),
		errorStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		dimStyle:     r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Banner prints the run header
//
//nolint:errcheck // terminal output; nothing to do on failure
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.out, p.titleStyle.Render("--- "+title+" ---"))
}

// Step prints the header for step n of total
//
//nolint:errcheck
func (p *Printer) Step(n, total int, title string) {
	fmt.Fprintf(p.out, "\n%s\n", p.titleStyle.Render(fmt.Sprintf("[%d/%d] %s", n, total, title)))
}

// Info prints a plain progress line
//
//nolint:errcheck
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a framed success message
//
//nolint:errcheck
func (p *Printer) Success(msg string) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(p.out, "\n%s\n%s\n%s\n", rule, p.successStyle.Render("SUCCESS: "+msg), rule)
}

// Warn prints a warning line
//
//nolint:errcheck
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.warnStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Error prints the single-line failure report
//
//nolint:errcheck
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(p.out, p.errorStyle.Render(fmt.Sprintf("[ERROR]: %v", err)))
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		for _, chunk := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, chunk)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRecord shows the parsed job input
func (p *Printer) PrintJobRecord(job *types.JobRecord) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Position: %s\n", job.Position))
	sb.WriteString(fmt.Sprintf("Description: %d characters\n", len(job.Description)))
	sb.WriteString("\n")
	sb.WriteString(truncate(collapse(job.Description), descriptionPreviewChars))

	p.printBox("JOB RECORD", sb.String())
}

// PrintAssets shows the matched template and the files found in it
func (p *Printer) PrintAssets(assets *types.AssetMap) {
	if assets == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template:   %s\n", assets.TemplateName()))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", baseOrNotFound(assets.ExperienceFile)))
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", baseOrNotFound(assets.SkillsFile)))

	p.printBox("TEMPLATE ASSETS", sb.String())
}

// PrintExtracted shows how much text was read for each section, or why nothing was
func (p *Printer) PrintExtracted(content types.ExtractedContent) {
	var sb strings.Builder
	for _, section := range types.Sections() {
		c := content.Get(section)
		if c.Available {
			sb.WriteString(fmt.Sprintf("%-10s loaded: %d chars\n", section, len(c.Raw)))
		} else {
			sb.WriteString(fmt.Sprintf("%-10s unavailable: %s\n", section, c.Reason))
		}
	}
	p.printBox("EXTRACTED CONTENT", sb.String())
}

// PrintTailored echoes the beginning of each tailored section
func (p *Printer) PrintTailored(tailored types.TailoredContent) {
	var sb strings.Builder
	for _, section := range types.Sections() {
		text, ok := tailored[section]
		if !ok || text == "" {
			sb.WriteString(fmt.Sprintf("%s: (no content returned)\n", section))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %d chars\n", section, len(text)))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(collapse(text), previewChars)))
	}
	p.printBox("TAILORED CONTENT", sb.String())
}

// PrintStagingResult shows what was written and where the PDF went
func (p *Printer) PrintStagingResult(result *types.StagingResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scratch: %s\n", filepath.Base(result.TempFolder)))
	for _, section := range types.Sections() {
		if path, ok := result.UpdatedFiles[section]; ok {
			sb.WriteString(fmt.Sprintf("  updated %s\n", filepath.Base(path)))
		}
	}
	if result.PDFPath != "" {
		sb.WriteString(fmt.Sprintf("PDF: %s\n", result.PDFPath))
		if result.PageCount > 0 {
			sb.WriteString(fmt.Sprintf("Pages: %d\n", result.PageCount))
		}
	}
	p.printBox("OUTPUT", sb.String())

	if result.Overwrote {
		p.Warn("Overwrote existing file: %s", filepath.Base(result.PDFPath))
	}
}

// PrintRuns lists recorded runs, newest first
//
//nolint:errcheck
func (p *Printer) PrintRuns(runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, p.dimStyle.Render("No runs recorded."))
		return
	}

	for _, run := range runs {
		status := string(run.Status)
		switch run.Status {
		case types.RunStatusSucceeded:
			status = p.successStyle.Render(status)
		case types.RunStatusFailed:
			status = p.errorStyle.Render(status)
		}

		fmt.Fprintf(p.out, "%s  %s  %-9s %s\n",
			run.StartedAt.Local().Format(time.DateTime), run.ID.String()[:8], status, run.Position)
		switch {
		case run.PDFPath != "":
			fmt.Fprintf(p.out, "    %s\n", p.dimStyle.Render(run.PDFPath))
		case run.Error != "":
			fmt.Fprintf(p.out, "    %s\n", p.dimStyle.Render(truncate(run.Error, boxWidth*2)))
		}
	}
}

func baseOrNotFound(path string) string {
	if path == "" {
		return "Not Found"
	}
	return filepath.Base(path)
}

// collapse folds all whitespace runs into single spaces
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// wrap splits a line into rune-safe chunks of at most width
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}
	var chunks []string
	for len(runes) > width {
		chunks = append(chunks, string(runes[:width]))
		runes = runes[width:]
	}
	return append(chunks, string(runes))
}
