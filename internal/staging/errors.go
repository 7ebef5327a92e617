package staging

import "fmt"

// Error means the scratch directory or the published PDF could not be prepared
type Error struct {
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("staging error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("staging error: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
