package pipeline

import (
	"context"
	"errors"

	"github.com/jonathan/resume-tailor/internal/compiler"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/rewriting"
	"github.com/jonathan/resume-tailor/internal/staging"
	"github.com/jonathan/resume-tailor/internal/templates"
)

// Classify names the failure kind of a pipeline error for reporting
func Classify(err error) string {
	var (
		missing   *ingestion.MissingInputError
		malformed *ingestion.MalformedInputError
		notFound  *templates.NotFoundError
		service   *rewriting.ServiceError
		invalid   *rewriting.InvalidResponseError
		stage     *staging.Error
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &missing):
		return "missing_input"
	case errors.As(err, &malformed):
		return "malformed_input"
	case errors.As(err, &notFound):
		return "template_not_found"
	case errors.As(err, &service):
		return "rewrite_service"
	case errors.As(err, &invalid):
		return "invalid_response"
	case errors.As(err, &stage):
		return "staging"
	default:
		return classifyCompile(err)
	}
}

func classifyCompile(err error) string {
	var (
		timeout *compiler.TimeoutError
		failed  *compiler.FailedError
	)
	switch {
	case errors.As(err, &timeout):
		return "compile_timeout"
	case errors.As(err, &failed):
		return "compile_failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "unknown"
	}
}
