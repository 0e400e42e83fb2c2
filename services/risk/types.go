// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package risk implements the multi-factor risk assessment engine that
// decides whether an automated flight-delay compensation determination can
// be auto-processed or must be escalated to a human reviewer.
//
// The engine consumes the outputs of the upstream jurisdiction and
// eligibility classifiers as plain data and performs no classification of
// its own. It compresses textual ambiguity, structural data gaps, numeric
// boundary proximity, and conversational cues into a calibrated confidence
// score, a discrete risk level, and an actionable handoff decision.
//
// # Purity
//
// AssessRisk is a pure function: identical inputs always yield identical
// output. It performs no I/O, holds no state across calls, and is safe to
// invoke concurrently from any number of goroutines.
package risk

// Jurisdiction is the enumerated outcome of the upstream jurisdiction
// classifier.
type Jurisdiction string

const (
	// JurisdictionAPPR indicates Canadian Air Passenger Protection
	// Regulations apply.
	JurisdictionAPPR Jurisdiction = "APPR"

	// JurisdictionEU261 indicates EU Regulation 261/2004 applies.
	JurisdictionEU261 Jurisdiction = "EU261"

	// JurisdictionNeither indicates no covered regulation applies.
	JurisdictionNeither Jurisdiction = "NEITHER"
)

// Claim holds the flight facts collected by the intake flow.
//
// No field is required. Zero values are the "absent" signal: empty strings
// and a zero DelayLength degrade the relevant risk factors rather than
// causing an error. The engine never mutates a Claim.
type Claim struct {
	// Origin is the departure city or airport as entered by the passenger.
	Origin string `json:"origin" yaml:"origin"`

	// Destination is the arrival city or airport.
	Destination string `json:"destination" yaml:"destination"`

	// Airline is free text and may embed operator/marketer substrings
	// such as "operated by" for code-share flights.
	Airline string `json:"airline" yaml:"airline"`

	// FlightNumber is the airline-assigned flight designator.
	FlightNumber string `json:"flight_number" yaml:"flight_number"`

	// FlightDate is the flight date as a string, typically YYYY-MM-DD.
	FlightDate string `json:"flight_date" yaml:"flight_date"`

	// DelayLength is the delay in hours. Callers coerce to float before
	// calling; absent values stay 0.
	DelayLength float64 `json:"delay_length" yaml:"delay_length"`

	// DelayReason is the airline-provided delay reason, free text.
	DelayReason string `json:"delay_reason" yaml:"delay_reason"`

	// PassengerCount is the number of passengers on the claim.
	PassengerCount int `json:"passenger_count" yaml:"passenger_count"`

	// PassengerNotes is optional free text from the passenger, mined for
	// uncertainty hedges.
	PassengerNotes string `json:"passenger_notes" yaml:"passenger_notes"`
}

// EligibilityResult is the structured output of the upstream eligibility
// classifier.
type EligibilityResult struct {
	// Eligible is the classifier's eligibility verdict.
	Eligible bool `json:"eligible" yaml:"eligible"`

	// CompensationAmount is the assessed compensation, possibly zero.
	CompensationAmount float64 `json:"compensation_amount" yaml:"compensation_amount"`

	// Reasoning is the classifier's free-text rationale.
	Reasoning string `json:"reasoning" yaml:"reasoning"`

	// LegalCitations lists the legal provisions cited, possibly empty.
	LegalCitations []string `json:"legal_citations" yaml:"legal_citations"`
}

// Turn is a single message in the intake conversation transcript.
type Turn struct {
	// Role identifies the speaker, RoleUser or RoleAssistant.
	Role string `json:"role" yaml:"role"`

	// Content is the message text.
	Content string `json:"content" yaml:"content"`
}

// Speaker roles for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Factor is one of the seven independent risk factors computed per
// assessment.
//
// Score is in [0,1] with 1.0 meaning no risk. Multiplier defaults to 1.0
// and records the single most recently applied dominant adjustment; it is
// applied multiplicatively alongside the score during aggregation.
type Factor struct {
	// Name is one of the seven fixed factor labels.
	Name string `json:"name"`

	// Weight is the fixed aggregation weight for this factor. The seven
	// weights sum to exactly 1.0.
	Weight float64 `json:"weight"`

	// Score is the factor's confidence contribution in [0,1].
	Score float64 `json:"score"`

	// Reasoning lists the heuristics that fired, joined with "; ".
	Reasoning string `json:"reasoning"`

	// Multiplier is the last dominant adjustment applied, 1.0 if none.
	Multiplier float64 `json:"multiplier"`
}

// Level is the discrete risk tier derived from the overall confidence.
type Level string

const (
	// LevelLow auto-processes with high confidence (>= 0.75).
	LevelLow Level = "low"

	// LevelMedium requires review within 24 hours (0.60..0.75).
	LevelMedium Level = "medium"

	// LevelHigh requires priority review within 1 hour (0.40..0.60).
	LevelHigh Level = "high"

	// LevelCritical requires immediate human intervention (< 0.40).
	LevelCritical Level = "critical"
)

// Handoff priority labels, a pure function of the risk level.
const (
	PriorityAutoProcess    = "Auto-process with high confidence"
	PriorityReview24Hours  = "Review within 24 hours"
	PriorityReview1Hour    = "Priority review within 1 hour"
	PriorityImmediateHuman = "Immediate human intervention"
)

// Assessment is the engine's output, immutable once returned.
type Assessment struct {
	// OverallConfidence is the weighted confidence score in [0,1].
	OverallConfidence float64 `json:"overall_confidence"`

	// Level is the risk tier for OverallConfidence.
	Level Level `json:"risk_level"`

	// Factors holds the seven risk factors in fixed computation order.
	Factors []Factor `json:"risk_factors"`

	// HandoffRequired is false exactly when Level is LevelLow.
	HandoffRequired bool `json:"handoff_required"`

	// HandoffPriority is the priority label for Level.
	HandoffPriority string `json:"handoff_priority"`

	// Reasoning is the composed human-readable rationale.
	Reasoning string `json:"reasoning"`

	// PatternsDetected lists pattern tags in detection order.
	PatternsDetected []string `json:"patterns_detected"`

	// ContextualFactors lists conversation-derived tags in
	// first-occurrence order, empty when no transcript was supplied.
	ContextualFactors []string `json:"contextual_factors"`
}
