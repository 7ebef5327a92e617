package rewriting

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var environmentPattern = regexp.MustCompile(`\\(begin|end)\{([^}]+)\}`)

type environmentCounts struct {
	begins int
	ends   int
}

// CheckStructure compares a tailored section with its original and reports LaTeX
// structure the rewrite lost or broke. An empty result means nothing suspicious was found.
func CheckStructure(original, tailored string) []string {
	if strings.TrimSpace(tailored) == "" {
		if strings.TrimSpace(original) != "" {
			return []string{"tailored section is empty"}
		}
		return nil
	}

	var issues []string

	before := countEnvironments(original)
	after := countEnvironments(tailored)
	for _, name := range environmentNames(before, after) {
		b, a := before[name], after[name]
		if b.begins != a.begins {
			issues = append(issues, fmt.Sprintf("environment %q opened %d times in the original but %d times after rewriting", name, b.begins, a.begins))
		}
		if a.begins != a.ends {
			issues = append(issues, fmt.Sprintf("environment %q has %d \\begin and %d \\end", name, a.begins, a.ends))
		}
	}

	if depth := braceDepth(tailored); depth != 0 {
		issues = append(issues, fmt.Sprintf("unbalanced braces (depth %d at end of section)", depth))
	}
	return issues
}

func countEnvironments(text string) map[string]environmentCounts {
	counts := make(map[string]environmentCounts)
	for _, match := range environmentPattern.FindAllStringSubmatch(stripComments(text), -1) {
		c := counts[match[2]]
		if match[1] == "begin" {
			c.begins++
		} else {
			c.ends++
		}
		counts[match[2]] = c
	}
	return counts
}

func environmentNames(maps ...map[string]environmentCounts) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range maps {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// braceDepth returns the net count of unescaped { minus } outside comments
func braceDepth(text string) int {
	depth := 0
	text = stripComments(text)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth
}

// stripComments drops everything after an unescaped % on each line
func stripComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for j := 0; j < len(line); j++ {
			if line[j] == '\\' {
				j++
				continue
			}
			if line[j] == '%' {
				lines[i] = line[:j]
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
