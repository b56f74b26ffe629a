package agents

import (
	"context"
	"errors"
)

// Outcome classifies a stage result so the orchestrator's retry and
// fallback policy is a pure function of outcome values.
type Outcome int

const (
	// OutcomeSuccess means the stage produced a usable value.
	OutcomeSuccess Outcome = iota
	// OutcomeRecoverable means the stage may succeed if retried.
	OutcomeRecoverable
	// OutcomeFatal means retrying the stage is pointless.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRecoverable:
		return "recoverable"
	default:
		return "fatal"
	}
}

// Classify maps a stage error to an outcome. Provider failures are
// recoverable, schema mismatches and cancellation are fatal, and
// integrity violations are recoverable through the revision loop.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeFatal
	}

	var apiErr *APICallError
	if errors.As(err, &apiErr) {
		return OutcomeRecoverable
	}

	var integrityErr *IntegrityError
	if errors.As(err, &integrityErr) {
		return OutcomeRecoverable
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return OutcomeFatal
	}

	return OutcomeFatal
}
