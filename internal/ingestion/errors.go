package ingestion

import "fmt"

// MissingInputError is returned when the job input file does not exist
type MissingInputError struct {
	Path  string
	Cause error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("could not find input file at %s", e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return e.Cause
}

// MalformedInputError is returned when the job input does not have a position line
// followed by at least one description line
type MalformedInputError struct {
	Path    string
	Message string
}

func (e *MalformedInputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed job input %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed job input: %s", e.Message)
}
