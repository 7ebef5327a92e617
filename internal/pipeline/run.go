// Package pipeline runs the tailoring workflow: read the job, find the template,
// extract its sections, rewrite them, then write back and compile.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/resume-tailor/internal/history"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/pipeline/steps"
	"github.com/jonathan/resume-tailor/internal/rewriting"
	"github.com/jonathan/resume-tailor/internal/staging"
	"github.com/jonathan/resume-tailor/internal/templates"
	"github.com/jonathan/resume-tailor/internal/types"
	"go.uber.org/zap"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures one pipeline run. Rewriter and Stager are required unless DryRun is set.
type Options struct {
	JobPath      string
	TemplatesDir string

	Rewriter rewriting.Rewriter
	Stager   *staging.Stager
	// History records the run; nil disables recording
	History history.Store
	// Printer receives progress output; nil prints to stdout
	Printer *observability.Printer

	// DryRun stops once the template content is extracted
	DryRun bool
	// SkipCompile stops once the tailored sections are written
	SkipCompile bool
	Verbose     bool
	OnProgress  ProgressCallback
}

// Result holds everything a run produced, up to the step where it stopped
type Result struct {
	RunID    uuid.UUID
	Job      *types.JobRecord
	Assets   *types.AssetMap
	Content  types.ExtractedContent
	Tailored types.TailoredContent
	Staging  *types.StagingResult
}

type runner struct {
	opts      Options
	printer   *observability.Printer
	store     history.Store
	log       *zap.SugaredLogger
	plan      []steps.Definition
	completed map[string]bool
	result    *Result
}

// Run executes the pipeline. Steps run in order and the first error stops the run;
// nothing written before the failure is rolled back.
func Run(ctx context.Context, opts Options) (*Result, error) {
	stopAfter := steps.Compile
	switch {
	case opts.DryRun:
		stopAfter = steps.ExtractContent
	case opts.SkipCompile:
		stopAfter = steps.WriteBack
	}
	plan, err := steps.Plan(stopAfter)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if opts.Rewriter == nil {
			return nil, fmt.Errorf("pipeline: no rewriter configured")
		}
		if opts.Stager == nil {
			return nil, fmt.Errorf("pipeline: no stager configured")
		}
	}

	r := &runner{
		opts:      opts,
		printer:   opts.Printer,
		store:     opts.History,
		log:       zap.S().Named("pipeline"),
		plan:      plan,
		completed: make(map[string]bool),
		result:    &Result{},
	}
	if r.printer == nil {
		r.printer = observability.NewPrinter(os.Stdout)
	}
	if r.store == nil {
		r.store = history.NopStore{}
	}

	r.printer.Banner("Starting Resume Tailoring Workflow")
	err = r.execute(ctx)
	r.record(ctx, err)
	return r.result, err
}

func (r *runner) execute(ctx context.Context) error {
	for i, def := range r.plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := steps.ValidateDependencies(def.Name, r.completed); err != nil {
			return err
		}

		r.printer.Step(i+1, len(r.plan), def.Title)
		if err := r.runStep(ctx, def.Name); err != nil {
			return err
		}
		r.completed[def.Name] = true
	}

	switch {
	case r.opts.DryRun:
		r.printer.Success("Data ready for the tailoring phase.")
	case r.opts.SkipCompile:
		r.printer.Success("Tailored content written; compilation skipped.")
	default:
		r.printer.Success("Tailored resume complete!")
	}
	return nil
}

func (r *runner) runStep(ctx context.Context, name string) error {
	switch name {
	case steps.ReadJob:
		return r.readJob(ctx)
	case steps.LocateTemplate:
		return r.locateTemplate()
	case steps.ExtractContent:
		r.extractContent()
		return nil
	case steps.Rewrite:
		return r.rewrite(ctx)
	case steps.WriteBack:
		return r.writeBack()
	case steps.Compile:
		return r.compile(ctx)
	default:
		return fmt.Errorf("unknown step: %s", name)
	}
}

func (r *runner) readJob(ctx context.Context) error {
	r.printer.Info("Reading %s...", r.opts.JobPath)
	job, err := ingestion.ReadJobFile(r.opts.JobPath)
	if err != nil {
		return err
	}
	r.result.Job = job

	r.printer.Info("Target Position: %s", job.Position)
	r.printer.Info("JD Length: %d characters", len(job.Description))
	if r.opts.Verbose {
		r.printer.PrintJobRecord(job)
	}

	id, err := r.store.CreateRun(ctx, job.Position)
	if err != nil {
		r.log.Warnw("failed to record run start", "error", err)
	} else {
		r.result.RunID = id
	}

	r.emit(steps.ReadJob, fmt.Sprintf("Target position: %s", job.Position), job)
	return nil
}

func (r *runner) locateTemplate() error {
	assets, err := templates.Locate(r.result.Job.Position, r.opts.TemplatesDir)
	if err != nil {
		return err
	}
	r.result.Assets = assets

	r.printer.Info("Match found in folder: %s", assets.TemplateName())
	r.printer.Info("Exp file: %s", baseOrNotFound(assets.ExperienceFile))
	r.printer.Info("Skills file: %s", baseOrNotFound(assets.SkillsFile))
	if r.opts.Verbose {
		r.printer.PrintAssets(assets)
	}

	r.emit(steps.LocateTemplate, fmt.Sprintf("Matched template %s", assets.TemplateName()), assets)
	return nil
}

func (r *runner) extractContent() {
	content := templates.Extract(r.result.Assets)
	r.result.Content = content

	for _, section := range types.Sections() {
		c := content.Get(section)
		if c.Available {
			r.printer.Info("%s loaded: %d chars", section, len(c.Raw))
		} else {
			r.printer.Warn("%s unavailable: %s", section, c.Reason)
		}
	}
	if r.opts.Verbose {
		r.printer.PrintExtracted(content)
	}

	r.emit(steps.ExtractContent, "Extracted template content", content)
}

func (r *runner) rewrite(ctx context.Context) error {
	tailored, err := r.opts.Rewriter.Rewrite(ctx, r.result.Job, r.result.Content)
	if err != nil {
		return err
	}
	r.result.Tailored = tailored

	r.printer.Info("Tailoring complete. Received updated sections.")
	if text := tailored[types.SectionExperience]; text != "" {
		r.printer.Info("Sample of tailored experience: %s...", preview(text))
	}
	if r.opts.Verbose {
		r.printer.PrintTailored(tailored)
	}

	r.emit(steps.Rewrite, "Tailored content generated", tailored)
	return nil
}

func (r *runner) writeBack() error {
	scratch, created, err := r.opts.Stager.LocateOrCreateScratch(r.result.Assets.Root)
	if err != nil {
		return err
	}
	if created {
		r.printer.Info("Created %s", filepath.Base(scratch))
	} else {
		r.printer.Info("Reusing %s", filepath.Base(scratch))
	}

	updated := r.opts.Stager.WriteTailored(scratch, r.result.Tailored, r.result.Assets)
	for _, section := range types.Sections() {
		if path, ok := updated[section]; ok {
			r.printer.Info("Updated %s", filepath.Base(path))
		}
	}
	r.result.Staging = &types.StagingResult{TempFolder: scratch, UpdatedFiles: updated}

	r.emit(steps.WriteBack, fmt.Sprintf("Wrote %d section(s) to %s", len(updated), filepath.Base(scratch)), r.result.Staging)
	return nil
}

func (r *runner) compile(ctx context.Context) error {
	scratch := r.result.Staging.TempFolder
	r.printer.Info("Compiling %s/main.tex...", filepath.Base(scratch))

	artifact, err := r.opts.Stager.Compile(ctx, scratch)
	if err != nil {
		return err
	}
	r.result.Staging.PDFPath = artifact.PDFPath
	r.result.Staging.PageCount = artifact.PageCount
	r.result.Staging.Overwrote = artifact.Overwrote

	r.printer.PrintStagingResult(r.result.Staging)

	r.emit(steps.Compile, fmt.Sprintf("PDF successfully generated: %s", filepath.Base(artifact.PDFPath)), r.result.Staging)
	return nil
}

// record finishes the history entry; history problems never fail the run
func (r *runner) record(ctx context.Context, runErr error) {
	if r.result.RunID == uuid.Nil {
		return
	}
	// a cancelled run is still recorded
	ctx = context.WithoutCancel(ctx)

	templateRoot := ""
	if r.result.Assets != nil {
		templateRoot = r.result.Assets.Root
	}

	var err error
	if runErr != nil {
		err = r.store.FailRun(ctx, r.result.RunID, templateRoot, runErr.Error())
	} else {
		pdfPath := ""
		if r.result.Staging != nil {
			pdfPath = r.result.Staging.PDFPath
		}
		err = r.store.CompleteRun(ctx, r.result.RunID, templateRoot, pdfPath)
	}
	if err != nil {
		r.log.Warnw("failed to record run outcome", "run_id", r.result.RunID, "error", err)
	}
}

func (r *runner) emit(step, message string, content any) {
	if r.opts.OnProgress == nil {
		return
	}
	def, _ := steps.Lookup(step)
	event := ProgressEvent{Step: step, Category: def.Category, Message: message, Content: content}
	if r.result.RunID != uuid.Nil {
		event.RunID = r.result.RunID.String()
	}
	r.opts.OnProgress(event)
}

func baseOrNotFound(path string) string {
	if path == "" {
		return "Not Found"
	}
	return filepath.Base(path)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}
