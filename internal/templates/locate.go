// Package templates locates resume template directories and reads the LaTeX sections inside them.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
	"go.uber.org/zap"
)

// DefaultBaseDir is the default directory holding one subdirectory per resume variant
const DefaultBaseDir = "latex/resume"

// ScratchSuffix marks working copies of templates; such directories are never matched.
const ScratchSuffix = "_Temp"

// ExperienceFileName is the experience section source file
const ExperienceFileName = "experience.tex"

// SkillsFileNames lists the accepted skills section files, highest priority first
var SkillsFileNames = []string{"additional_skills.tex", "technologies.tex", "skills.tex"}

// List returns the template directory names under baseDir in lexicographic order,
// excluding scratch copies.
func List(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates in %s: %w", baseDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isDir(baseDir, entry) || strings.HasSuffix(entry.Name(), ScratchSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Locate finds the first template directory (lexicographic order) whose name contains
// position case-insensitively, and identifies its experience and skills files.
// Directories ending in ScratchSuffix are working copies made by staging and are never
// candidates, so "Backend Engineer_Temp" cannot shadow "Backend Engineer".
func Locate(position, baseDir string) (*types.AssetMap, error) {
	names, err := List(baseDir)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(position)
	match := ""
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			match = name
			break
		}
	}
	if match == "" {
		return nil, &NotFoundError{Position: position, BaseDir: baseDir}
	}

	root, err := filepath.Abs(filepath.Join(baseDir, match))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template path: %w", err)
	}

	assets := &types.AssetMap{Root: root}
	if path := filepath.Join(root, ExperienceFileName); fileExists(path) {
		assets.ExperienceFile = path
	}
	for _, name := range SkillsFileNames {
		if path := filepath.Join(root, name); fileExists(path) {
			assets.SkillsFile = path
			break
		}
	}

	zap.S().Named("templates").Debugw("located template",
		"position", position,
		"root", root,
		"experience", assets.ExperienceFile,
		"skills", assets.SkillsFile,
	)
	return assets, nil
}

// isDir resolves symlinked entries so linked template folders are still found
func isDir(baseDir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(baseDir, entry.Name()))
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
