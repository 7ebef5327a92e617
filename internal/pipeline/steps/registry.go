// Package steps defines the pipeline steps, their order, and their dependencies.
package steps

import (
	"fmt"
	"strings"
)

// Step names
const (
	ReadJob        = "read_job"
	LocateTemplate = "locate_template"
	ExtractContent = "extract_content"
	Rewrite        = "rewrite"
	WriteBack      = "write_back"
	Compile        = "compile"
)

// Step categories
const (
	CategoryInput     = "input"
	CategoryTemplate  = "template"
	CategoryRewriting = "rewriting"
	CategoryOutput    = "output"
)

// Definition describes one pipeline step
type Definition struct {
	Name         string
	Category     string
	Title        string
	Dependencies []string
}

// Registry lists every step in execution order
var Registry = []Definition{
	{Name: ReadJob, Category: CategoryInput, Title: "Reading job description"},
	{Name: LocateTemplate, Category: CategoryTemplate, Title: "Locating LaTeX template", Dependencies: []string{ReadJob}},
	{Name: ExtractContent, Category: CategoryTemplate, Title: "Extracting LaTeX content", Dependencies: []string{LocateTemplate}},
	{Name: Rewrite, Category: CategoryRewriting, Title: "Tailoring content", Dependencies: []string{ReadJob, ExtractContent}},
	{Name: WriteBack, Category: CategoryOutput, Title: "Writing tailored content", Dependencies: []string{LocateTemplate, Rewrite}},
	{Name: Compile, Category: CategoryOutput, Title: "Compiling PDF", Dependencies: []string{WriteBack}},
}

// Lookup returns the definition of a step
func Lookup(name string) (Definition, bool) {
	for _, def := range Registry {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// Plan returns the steps from the first up to and including stopAfter
func Plan(stopAfter string) ([]Definition, error) {
	for i, def := range Registry {
		if def.Name == stopAfter {
			return Registry[:i+1], nil
		}
	}
	return nil, fmt.Errorf("unknown step: %s", stopAfter)
}

// DependencyError means a step was started before the steps it needs
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s is missing dependencies: %s", e.Step, strings.Join(e.MissingDependencies, ", "))
}

// ValidateDependencies checks that every dependency of stepName is in completed
func ValidateDependencies(stepName string, completed map[string]bool) error {
	def, ok := Lookup(stepName)
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}
