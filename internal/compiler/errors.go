package compiler

import (
	"fmt"
	"strings"
	"time"
)

// FailedError means no PDF was produced. Errors holds the "!" lines from main.log when present.
type FailedError struct {
	Message string
	Errors  []string
	Cause   error
}

func (e *FailedError) Error() string {
	var sb strings.Builder
	sb.WriteString("LaTeX compilation failed: ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	for _, line := range e.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(line)
	}
	return sb.String()
}

func (e *FailedError) Unwrap() error {
	return e.Cause
}

// TimeoutError means a compiler pass ran longer than its limit
type TimeoutError struct {
	Pass    int
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("LaTeX compilation timed out: pass %d exceeded %s", e.Pass, e.Timeout)
}
