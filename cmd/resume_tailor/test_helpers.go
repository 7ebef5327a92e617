package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_tailor binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_tailor"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath, err := filepath.Abs(filepath.Join("..", "..", "bin", binaryName))
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_tailor ./cmd/resume_tailor'", binaryPath)
	}

	return binaryPath
}

// writeProject lays out a job file and one template under dir
func writeProject(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"docs/job_description.txt":                     "Backend Engineer\nBuild Go services.\n",
		"latex/resume/Backend Engineer/main.tex":       "\\documentclass{article}\n\\begin{document}\n\\input{experience}\n\\end{document}\n",
		"latex/resume/Backend Engineer/experience.tex": "\\begin{itemize}\n\\item Wrote Python\n\\end{itemize}\n",
		"latex/resume/Backend Engineer/skills.tex":     "Python, SQL\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// cleanEnv returns the process environment without settings that would leak into CLI runs
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if hasAnyPrefix(kv, "RESUME_TAILOR_", "GEMINI_API_KEY=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
