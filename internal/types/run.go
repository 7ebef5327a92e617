package types

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of a recorded pipeline run
type RunStatus string

// Run status values
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord is one pipeline invocation as stored in the run history
type RunRecord struct {
	ID           uuid.UUID  `json:"id"`
	Position     string     `json:"position"`
	TemplateRoot string     `json:"template_root,omitempty"`
	Status       RunStatus  `json:"status"`
	PDFPath      string     `json:"pdf_path,omitempty"`
	Error        string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}
