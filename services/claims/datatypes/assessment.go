// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides request and response structures for the
// claims service.
//
// This file contains the assessment endpoint types. Stored record types
// live in the storage package; the risk package owns the domain model.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tripfix/tripfix/services/risk"
)

// =============================================================================
// Request Size Limits
// =============================================================================

const (
	// MaxPassengerNotesBytes is the maximum size of the free-text
	// passenger notes field. Byte length, not rune count.
	MaxPassengerNotesBytes = 16 * 1024 // 16KB

	// MaxHistoryTurns is the maximum number of conversation turns
	// accepted per assessment request.
	MaxHistoryTurns = 200

	// MaxTurnContentBytes is the maximum size of a single turn's content.
	MaxTurnContentBytes = 8 * 1024 // 8KB
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// claimValidate is the validator instance for claims datatypes.
// Initialized in init() with custom validators.
var claimValidate *validator.Validate

func init() {
	claimValidate = validator.New()
	_ = claimValidate.RegisterValidation("notesbytes", validateNotesBytes)
}

// validateNotesBytes enforces the MaxPassengerNotesBytes limit on string
// fields. Checks byte length to bound memory, not rune count.
func validateNotesBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPassengerNotesBytes
}

// =============================================================================
// Assessment Request Types
// =============================================================================

// AssessRequest is the body for POST /v1/assess.
//
// The claim and the upstream jurisdiction verdict are required; the
// eligibility result and conversation history are optional and default
// to empty.
type AssessRequest struct {
	// Claim is the flight delay claim under assessment. Sparse claims
	// are accepted; missing fields lower the data completeness factor.
	Claim risk.Claim `json:"claim"`

	// Jurisdiction is the upstream verdict: APPR, EU261, or NEITHER.
	Jurisdiction risk.Jurisdiction `json:"jurisdiction"`

	// JurisdictionReasoning is the free-text rationale that accompanied
	// the jurisdiction verdict.
	JurisdictionReasoning string `json:"jurisdiction_reasoning"`

	// Eligibility is the upstream eligibility determination, if any.
	Eligibility risk.EligibilityResult `json:"eligibility"`

	// History is the claimant conversation, oldest turn first.
	History []risk.Turn `json:"conversation_history"`

	// Persist stores the assessment and returns its ID when true.
	Persist bool `json:"persist"`
}

// Validate checks the request against size limits and enum membership.
func (r *AssessRequest) Validate() error {
	if err := claimValidate.Var(r.Claim.PassengerNotes, "notesbytes"); err != nil {
		return ErrNotesTooLarge
	}
	if len(r.History) > MaxHistoryTurns {
		return ErrHistoryTooLong
	}
	for _, turn := range r.History {
		if len(turn.Content) > MaxTurnContentBytes {
			return ErrTurnTooLarge
		}
	}
	switch r.Jurisdiction {
	case risk.JurisdictionAPPR, risk.JurisdictionEU261, risk.JurisdictionNeither:
	default:
		return ErrUnknownJurisdiction
	}
	return nil
}

// AssessResponse is the body returned by POST /v1/assess.
type AssessResponse struct {
	// AssessmentID is set only when the request asked for persistence.
	AssessmentID string `json:"assessment_id,omitempty"`

	// Assessment is the full risk assessment.
	Assessment risk.Assessment `json:"assessment"`
}

// =============================================================================
// Legacy Score Request Types
// =============================================================================

// ScoreRequest is the body for POST /v1/score, served by the
// earlier-generation two-factor scorer.
type ScoreRequest struct {
	Claim                 risk.Claim        `json:"claim"`
	Jurisdiction          risk.Jurisdiction `json:"jurisdiction"`
	JurisdictionReasoning string            `json:"jurisdiction_reasoning"`
	LegalCitations        []string          `json:"legal_citations"`
}

// Validate checks the request against size limits and enum membership.
func (r *ScoreRequest) Validate() error {
	if err := claimValidate.Var(r.Claim.PassengerNotes, "notesbytes"); err != nil {
		return ErrNotesTooLarge
	}
	switch r.Jurisdiction {
	case risk.JurisdictionAPPR, risk.JurisdictionEU261, risk.JurisdictionNeither:
	default:
		return ErrUnknownJurisdiction
	}
	return nil
}

// ScoreResponse is the body returned by POST /v1/score.
type ScoreResponse struct {
	JurisdictionConfidence  float64 `json:"jurisdiction_confidence"`
	JurisdictionExplanation string  `json:"jurisdiction_explanation"`
	EligibilityConfidence   float64 `json:"eligibility_confidence"`
	EligibilityExplanation  string  `json:"eligibility_explanation"`
	ShouldHandoff           bool    `json:"should_handoff"`
	HandoffReason           string  `json:"handoff_reason"`
}

// =============================================================================
// Assessment Listing Types
// =============================================================================

// AssessmentSummary is one element of the GET /v1/assessments listing.
type AssessmentSummary struct {
	ID                string    `json:"id"`
	FlightNumber      string    `json:"flight_number"`
	RiskLevel         string    `json:"risk_level"`
	OverallConfidence float64   `json:"overall_confidence"`
	HandoffRequired   bool      `json:"handoff_required"`
	CreatedAt         time.Time `json:"created_at"`
}

// ListAssessmentsResponse is the body returned by GET /v1/assessments.
type ListAssessmentsResponse struct {
	Assessments []AssessmentSummary `json:"assessments"`
	Count       int                 `json:"count"`
}
