package entity

import (
	"time"

	"emergency_response/internal/domain/value"
)

// Case is one inbound accident report. Immutable, scoped to one request.
type Case struct {
	ID          string
	Description string
	Coordinates value.Coordinates
	CreatedAt   time.Time
}

// Assessment is the classification produced once per Case.
type Assessment struct {
	Severity value.Severity
	FirstAid string
	Location string
	Summary  string

	// Fallback is set when the rule-based path produced the assessment
	// instead of the model.
	Fallback bool
}
