// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"fmt"
	"strings"
)

// Scorer is the earlier-generation two-factor confidence scorer.
//
// It predates Engine and is retained because calling code still invokes
// it and persists its output alongside the full assessment; the handoff
// decision itself is gated by Engine. Scorer shares no state with Engine
// and keeps its own, shorter keyword lists.
//
// Thread Safety: Safe for concurrent use; the thresholds are immutable
// after construction.
type Scorer struct {
	jurisdictionThreshold float64
	eligibilityThreshold  float64
}

// Legacy scorer keyword lists. Distinct from the engine's tables: the
// ambiguous-reason list is the original six phrases, and the EU list
// carries six country names the engine's table does not.
var (
	scorerAmbiguousReasons = []string{
		"operational reasons", "technical issues", "crew scheduling",
		"operational requirements", "network optimization",
		"unforeseen circumstances",
	}

	scorerCanadianAirports = []string{"yyz", "yvr", "yul", "yyc", "yow"}

	scorerEUCountries = []string{
		"germany", "france", "spain", "italy", "netherlands", "belgium",
	}

	scorerEUAirports = []string{"fra", "cdg", "mad", "bcn", "fco", "ams", "bru"}
)

// NewScorer creates the legacy scorer with its fixed handoff thresholds
// (0.7 for jurisdiction, 0.75 for eligibility).
func NewScorer() *Scorer {
	return &Scorer{
		jurisdictionThreshold: 0.7,
		eligibilityThreshold:  0.75,
	}
}

// ScoreJurisdictionConfidence scores confidence in the jurisdiction
// determination.
//
// Returns the confidence in [0,1] and a formatted explanation naming the
// heuristics that fired.
func (s *Scorer) ScoreJurisdictionConfidence(claim Claim, jurisdiction Jurisdiction, reasoning string) (float64, string) {
	confidence := 1.0
	var reasons []string

	origin := strings.TrimSpace(claim.Origin)
	destination := strings.TrimSpace(claim.Destination)

	if origin == "" || destination == "" {
		confidence *= 0.3
		reasons = append(reasons, "Missing flight route information")
	}

	switch jurisdiction {
	case JurisdictionAPPR:
		if !containsAnyEither(origin, destination, scorerCanadianAirports) &&
			!containsAnyEither(origin, destination, []string{"canada"}) {
			confidence *= 0.6
			reasons = append(reasons, "Route doesn't clearly indicate Canadian jurisdiction")
		}
	case JurisdictionEU261:
		euOrigin := containsAny(origin, scorerEUCountries) || containsAny(origin, scorerEUAirports)
		euDest := containsAny(destination, scorerEUCountries) || containsAny(destination, scorerEUAirports)
		if !euOrigin && !euDest {
			confidence *= 0.5
			reasons = append(reasons, "Route doesn't clearly indicate EU jurisdiction")
		}
	}

	if len(reasoning) < 50 {
		confidence *= 0.8
		reasons = append(reasons, "Insufficient reasoning provided")
	}

	lower := strings.ToLower(reasoning)
	if strings.Contains(lower, "unclear") || strings.Contains(lower, "ambiguous") {
		confidence *= 0.6
		reasons = append(reasons, "Ambiguous route or airline information")
	}

	if len(reasons) == 0 {
		return confidence, "High confidence in jurisdiction determination"
	}
	return confidence, fmt.Sprintf("Jurisdiction confidence: %.2f. %s", confidence, strings.Join(reasons, "; "))
}

// ScoreEligibilityConfidence scores confidence in the eligibility
// determination based on the claim facts and the citations the upstream
// classifier produced.
func (s *Scorer) ScoreEligibilityConfidence(claim Claim, legalCitations []string) (float64, string) {
	confidence := 1.0
	var reasons []string

	delayReason := strings.ToLower(claim.DelayReason)

	if containsAny(delayReason, scorerAmbiguousReasons) {
		confidence *= 0.4
		reasons = append(reasons, "Airline provided ambiguous delay reason requiring legal interpretation")
	}

	if strings.Contains(delayReason, "weather") &&
		!strings.Contains(delayReason, "storm") && !strings.Contains(delayReason, "severe") {
		confidence *= 0.7
		reasons = append(reasons, "Weather-related delay may need specific assessment")
	}

	if claim.DelayLength == 0 {
		confidence *= 0.5
		reasons = append(reasons, "Missing or unclear delay duration")
	}

	if len(legalCitations) == 0 {
		confidence *= 0.6
		reasons = append(reasons, "No specific legal citations found")
	}

	// 3-4 hour edge case sits in the borderline compensation band.
	if claim.DelayLength > 0 && claim.DelayLength < 4 {
		confidence *= 0.8
		reasons = append(reasons, "Delay duration in borderline compensation range")
	}

	if len(reasons) == 0 {
		return confidence, "High confidence in eligibility determination"
	}
	return confidence, fmt.Sprintf("Eligibility confidence: %.2f. %s", confidence, strings.Join(reasons, "; "))
}

// ShouldHandoffToHuman decides whether the legacy scores alone warrant
// escalation. Jurisdiction is checked first; the reason names whichever
// confidence fell below its threshold.
func (s *Scorer) ShouldHandoffToHuman(jurisdictionConfidence, eligibilityConfidence float64) (bool, string) {
	if jurisdictionConfidence < s.jurisdictionThreshold {
		return true, fmt.Sprintf("Jurisdiction determination confidence too low (%.2f < %.2f)",
			jurisdictionConfidence, s.jurisdictionThreshold)
	}

	if eligibilityConfidence < s.eligibilityThreshold {
		return true, fmt.Sprintf("Eligibility determination confidence too low (%.2f < %.2f)",
			eligibilityConfidence, s.eligibilityThreshold)
	}

	return false, "Confidence levels acceptable for automated processing"
}
