package rewriting

import "fmt"

// ServiceError means the rewrite service could not be reached or refused the request,
// including a missing credential.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rewrite service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rewrite service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// InvalidResponseError means the service replied with something that is not a tailored content object
type InvalidResponseError struct {
	Message  string
	Response string
	Cause    error
}

func (e *InvalidResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid rewrite response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid rewrite response: %s", e.Message)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Cause
}
