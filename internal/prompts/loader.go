// Package prompts holds the LLM prompt templates embedded in the binary.
// Each JSON file maps prompt keys to template text with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// library is every embedded file, parsed once: file name -> key -> template
var library = sync.OnceValues(func() (map[string]map[string]string, error) {
	names, err := fs.Glob(promptFiles, "*.json")
	if err != nil {
		return nil, err
	}

	lib := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := promptFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		lib[name] = entries
	}
	return lib, nil
})

func file(filename string) (map[string]string, error) {
	lib, err := library()
	if err != nil {
		return nil, err
	}
	entries, ok := lib[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %s is not embedded", filename)
	}
	return entries, nil
}

// Get returns the prompt stored under key in filename (e.g. "rewriting.json").
func Get(filename, key string) (string, error) {
	entries, err := file(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	entries, err := file(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// Format substitutes {{.Key}} placeholders with values from data in a single pass,
// so placeholder-like text inside a value is never expanded. Unknown placeholders are kept.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
