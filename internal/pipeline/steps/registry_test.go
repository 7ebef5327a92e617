package steps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DependenciesPrecedeSteps(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Registry {
		for _, dep := range def.Dependencies {
			assert.True(t, seen[dep], "%s depends on %s which runs later", def.Name, dep)
		}
		seen[def.Name] = true
	}
}

func TestPlan(t *testing.T) {
	plan, err := Plan(ExtractContent)
	require.NoError(t, err)
	names := make([]string, len(plan))
	for i, def := range plan {
		names[i] = def.Name
	}
	assert.Equal(t, []string{ReadJob, LocateTemplate, ExtractContent}, names)

	full, err := Plan(Compile)
	require.NoError(t, err)
	assert.Len(t, full, len(Registry))

	_, err = Plan("render")
	assert.Error(t, err)
}

func TestValidateDependencies(t *testing.T) {
	assert.NoError(t, ValidateDependencies(ReadJob, nil))
	assert.NoError(t, ValidateDependencies(Rewrite, map[string]bool{ReadJob: true, ExtractContent: true}))

	err := ValidateDependencies(WriteBack, map[string]bool{LocateTemplate: true})
	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, []string{Rewrite}, depErr.MissingDependencies)
	assert.Contains(t, err.Error(), "write_back")

	assert.Error(t, ValidateDependencies("unknown", nil))
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(Compile)
	require.True(t, ok)
	assert.Equal(t, CategoryOutput, def.Category)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
