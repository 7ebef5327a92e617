package rewriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStructure(t *testing.T) {
	original := "\\begin{itemize}\n  \\item Built \\textbf{APIs}\n\\end{itemize}\n"

	tests := []struct {
		name       string
		tailored   string
		wantIssues int
		contains   string
	}{
		{
			name:     "unchanged structure",
			tailored: "\\begin{itemize}\n  \\item Built \\textbf{Go APIs} 50\\% faster\n\\end{itemize}\n",
		},
		{
			name:       "dropped environment",
			tailored:   "\\item Built APIs\n",
			wantIssues: 1,
			contains:   `"itemize"`,
		},
		{
			name:       "unclosed environment",
			tailored:   "\\begin{itemize}\n  \\item Built APIs\n",
			wantIssues: 1,
			contains:   "1 \\begin and 0 \\end",
		},
		{
			name:       "unbalanced braces",
			tailored:   "\\begin{itemize}\n  \\item \\textbf{Built APIs\n\\end{itemize}\n",
			wantIssues: 1,
			contains:   "unbalanced braces",
		},
		{
			name:     "escaped braces and comments ignored",
			tailored: "\\begin{itemize}\n  \\item set \\{a\\} % {\n\\end{itemize}\n",
		},
		{
			name:       "empty rewrite",
			tailored:   "  ",
			wantIssues: 1,
			contains:   "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckStructure(original, tt.tailored)
			assert.Len(t, issues, tt.wantIssues)
			if tt.contains != "" && len(issues) > 0 {
				assert.Contains(t, issues[0], tt.contains)
			}
		})
	}
}

func TestCheckStructure_EmptyOriginal(t *testing.T) {
	assert.Empty(t, CheckStructure("", ""))
}
