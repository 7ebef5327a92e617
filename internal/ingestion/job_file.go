// Package ingestion reads job postings into JobRecords, either from the flat job file or from a posting URL.
package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultJobFile is where the job description is read from when no path is given
const DefaultJobFile = "docs/job_description.txt"

// ReadJobFile reads a job input file: line 1 is the position, lines 2..end the description.
func ReadJobFile(path string) (*types.JobRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Cause: err}
		}
		return nil, fmt.Errorf("failed to read job input file %s: %w", path, err)
	}

	record, err := ParseJobText(string(content))
	if err != nil {
		var malformed *MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	return record, nil
}

// ParseJobText splits job input text into a JobRecord.
// It fails with *MalformedInputError when fewer than two lines are present.
func ParseJobText(content string) (*types.JobRecord, error) {
	lines := splitLines(normalizeLineEndings(content))
	if len(lines) < 2 {
		return nil, &MalformedInputError{
			Message: "the position must be on line 1 and the job description on line 2+",
		}
	}

	return &types.JobRecord{
		Position:    strings.TrimSpace(lines[0]),
		Description: strings.TrimSpace(strings.Join(lines[1:], "")),
	}, nil
}

// WriteJobFile writes a JobRecord in the job input format so ReadJobFile can consume it.
func WriteJobFile(path string, record *types.JobRecord) error {
	position := strings.Join(strings.Fields(record.Position), " ")
	if position == "" {
		return &MalformedInputError{Path: path, Message: "position is empty"}
	}
	description := strings.TrimSpace(record.Description)
	if description == "" {
		return &MalformedInputError{Path: path, Message: "description is empty"}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	content := position + "\n" + description + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write job input file %s: %w", path, err)
	}
	return nil
}

// splitLines splits text the way a line reader does: every line keeps its
// terminating newline and a trailing empty chunk is not a line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func normalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}
