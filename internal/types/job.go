// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRecord is a job posting split into its target position and free-form description.
// It is created once by the job input reader and never mutated afterwards.
type JobRecord struct {
	Position    string `json:"position"`
	Description string `json:"description"`
}
