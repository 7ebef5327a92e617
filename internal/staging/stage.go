// Package staging prepares a scratch copy of a template, writes the tailored
// sections into it, and publishes the compiled PDF.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/compiler"
	"github.com/jonathan/resume-tailor/internal/templates"
	"github.com/jonathan/resume-tailor/internal/types"
	"go.uber.org/zap"
)

// Stager writes tailored content into a template's scratch directory and compiles it
type Stager struct {
	Compiler compiler.Compiler
	// OutputDir receives the published PDF. Empty means output/pdf three levels above the scratch directory.
	OutputDir string
	// MaxPages triggers a warning when the compiled PDF is longer. Zero disables the check.
	MaxPages int
}

// Artifact is a published PDF
type Artifact struct {
	PDFPath   string
	PageCount int
	Overwrote bool
}

// New creates a Stager
func New(c compiler.Compiler, outputDir string, maxPages int) *Stager {
	return &Stager{Compiler: c, OutputDir: outputDir, MaxPages: maxPages}
}

// ScratchPath returns the scratch directory that belongs to a template
func ScratchPath(templateRoot string) string {
	return filepath.Clean(templateRoot) + templates.ScratchSuffix
}

// DefaultOutputDir returns output/pdf relative to the project root that contains the scratch directory
func DefaultOutputDir(scratch string) string {
	root := filepath.Dir(filepath.Dir(filepath.Dir(filepath.Clean(scratch))))
	return filepath.Join(root, "output", "pdf")
}

// LocateOrCreateScratch returns the template's scratch directory, copying the template
// when it does not exist yet. created reports whether a copy was made.
func (s *Stager) LocateOrCreateScratch(templateRoot string) (string, bool, error) {
	log := zap.S().Named("staging")
	scratch := ScratchPath(templateRoot)

	info, err := os.Stat(scratch)
	switch {
	case err == nil && info.IsDir():
		log.Infow("reusing scratch directory", "path", scratch)
		return scratch, false, nil
	case err == nil:
		return "", false, &Error{Message: "scratch path exists but is not a directory", Path: scratch}
	case !errors.Is(err, os.ErrNotExist):
		return "", false, &Error{Message: "failed to inspect scratch directory", Path: scratch, Cause: err}
	}

	log.Infow("creating scratch directory", "template", templateRoot, "path", scratch)
	if err := copyTree(templateRoot, scratch, map[string]bool{}); err != nil {
		_ = os.RemoveAll(scratch)
		return "", false, &Error{Message: "failed to copy template", Path: templateRoot, Cause: err}
	}
	return scratch, true, nil
}

// WriteTailored overwrites the scratch copy of each section file with its tailored text.
// Sections without text or without a source file are skipped, as are failed writes.
// It returns the files written, by section.
func (s *Stager) WriteTailored(scratch string, tailored types.TailoredContent, assets *types.AssetMap) map[types.Section]string {
	log := zap.S().Named("staging")
	updated := make(map[types.Section]string)

	for _, section := range types.Sections() {
		text := tailored[section]
		source := assets.File(section)
		if text == "" {
			log.Infow("skipping section without tailored content", "section", section)
			continue
		}
		if source == "" {
			log.Infow("skipping section without a source file in the template", "section", section)
			continue
		}

		target := filepath.Join(scratch, filepath.Base(source))
		if err := os.WriteFile(target, []byte(text), 0644); err != nil {
			log.Warnw("failed to write tailored section", "section", section, "path", target, "error", err)
			continue
		}
		log.Infow("wrote tailored section", "section", section, "path", target)
		updated[section] = target
	}
	return updated
}

// Compile builds the scratch directory and copies main.pdf to <output>/<scratch name>.pdf
func (s *Stager) Compile(ctx context.Context, scratch string) (*Artifact, error) {
	log := zap.S().Named("staging")
	if s.Compiler == nil {
		return nil, &Error{Message: "no compiler configured", Path: scratch}
	}

	outputDir := s.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir(scratch)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &Error{Message: "failed to create output directory", Path: outputDir, Cause: err}
	}

	finalPath := filepath.Join(outputDir, filepath.Base(scratch)+".pdf")
	artifact := &Artifact{PDFPath: finalPath}
	if _, err := os.Stat(finalPath); err == nil {
		artifact.Overwrote = true
		log.Warnw("overwriting existing PDF", "path", finalPath)
	}

	result, err := s.Compiler.Compile(ctx, scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", scratch, err)
	}

	if err := copyFile(result.PDFPath, finalPath); err != nil {
		return nil, &Error{Message: "failed to publish PDF", Path: finalPath, Cause: err}
	}

	pages, err := compiler.CountPages(finalPath)
	if err != nil {
		log.Warnw("could not count PDF pages", "path", finalPath, "error", err)
	} else {
		artifact.PageCount = pages
		if s.MaxPages > 0 && pages > s.MaxPages {
			log.Warnw("PDF is longer than the page limit", "pages", pages, "max_pages", s.MaxPages)
		}
	}
	return artifact, nil
}

// Process locates or creates the scratch directory, writes the tailored sections and compiles
func (s *Stager) Process(ctx context.Context, assets *types.AssetMap, tailored types.TailoredContent) (*types.StagingResult, error) {
	scratch, _, err := s.LocateOrCreateScratch(assets.Root)
	if err != nil {
		return nil, err
	}

	result := &types.StagingResult{
		TempFolder:   scratch,
		UpdatedFiles: s.WriteTailored(scratch, tailored, assets),
	}

	artifact, err := s.Compile(ctx, scratch)
	if err != nil {
		return result, err
	}
	result.PDFPath = artifact.PDFPath
	result.PageCount = artifact.PageCount
	result.Overwrote = artifact.Overwrote
	return result, nil
}

// copyTree copies src into dst. Symlinks are replaced by copies of what they point to;
// visited holds the resolved directories on the current path so link cycles fail instead of recursing.
func copyTree(src, dst string, visited map[string]bool) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if visited[resolved] {
		return fmt.Errorf("symlink cycle at %s", src)
	}
	visited[resolved] = true
	defer delete(visited, resolved)

	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("broken symlink %s: %w", path, err)
			}
			if info.IsDir() {
				return copyTree(path, target, visited)
			}
			return copyFile(path, target)
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case d.Type().IsRegular():
			return copyFile(path, target)
		default:
			zap.S().Named("staging").Warnw("skipping special file in template", "path", path)
			return nil
		}
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
