package templates

import "fmt"

// NotFoundError is returned when no template directory matches a position
type NotFoundError struct {
	Position string
	BaseDir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no template folder found matching position: %s (searched %s)", e.Position, e.BaseDir)
}
