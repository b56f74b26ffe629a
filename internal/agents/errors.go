// Package agents implements the staged resume generation pipeline:
// profile analysis, job analysis, matchmaking, content writing and
// review, coordinated by an Orchestrator with a legacy single-prompt
// fallback.
package agents

import (
	"fmt"
	"strings"
)

// APICallError represents a failed call to the hosted model provider.
// These are transient and retried once with backoff.
type APICallError struct {
	Stage string
	Cause error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("%s: provider call failed: %v", e.Stage, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaError represents model output that does not fit the stage's
// expected structure. Never retried on the same stage; the orchestrator
// falls back to the legacy path instead.
type SchemaError struct {
	Stage string
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: output failed schema validation: %v", e.Stage, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// IntegrityError represents generated content that contradicts the
// source profile. Feeds the reviewer revision loop.
type IntegrityError struct {
	Stage      string
	Violations []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: content contradicts source profile: %s",
		e.Stage, strings.Join(e.Violations, "; "))
}
