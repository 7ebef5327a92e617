package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailoredContentSchema_IsValidJSON(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(TailoredContentSchema()), &schema))
	assert.Equal(t, "object", schema["type"])
}

func TestValidateTailoredContent(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"both strings", `{"experience": "\\section{Experience}", "skills": "\\section{Skills}"}`, false},
		{"null skills", `{"experience": "x", "skills": null}`, false},
		{"extra key allowed", `{"experience": "x", "skills": "y", "notes": "z"}`, false},
		{"missing skills", `{"experience": "x"}`, true},
		{"missing both", `{}`, true},
		{"wrong type", `{"experience": 3, "skills": "y"}`, true},
		{"array root", `["x"]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTailoredContent(tt.doc)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateTailoredContent_NotJSON(t *testing.T) {
	err := ValidateTailoredContent(`this is not json`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "skills is required"}}}
	assert.Contains(t, err.Error(), "1. (root): skills is required")
}

func TestValidateJSONFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"experience": "a", "skills": "b"}`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"experience": "a"}`), 0644))

	assert.NoError(t, ValidateJSONFile(TailoredContentSchema(), good))
	assert.Error(t, ValidateJSONFile(TailoredContentSchema(), bad))
	assert.Error(t, ValidateJSONFile(TailoredContentSchema(), filepath.Join(dir, "missing.json")))
}

func TestValidateJSONString_CustomSchema(t *testing.T) {
	schema := `{"type": "object", "required": ["id"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"id": 1}`))
	assert.Error(t, ValidateJSONString(schema, `{}`))
}
