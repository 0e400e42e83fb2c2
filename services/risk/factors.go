// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"math"
	"strings"
)

// The seven factor assessments below are independent of each other. Each
// starts from a score of 1.0 (no risk) and applies multiplicative
// penalties for every heuristic that fires; penalties within a factor are
// not mutually exclusive and stack. Reasoning clauses are joined with "; ".

// assessJurisdictionClarity scores how unambiguously the route supports
// the jurisdiction verdict.
//
// The Multiplier field records only the most recently applied dominant
// adjustment (code-share overwrites multi-jurisdiction); the score itself
// compounds every penalty. This asymmetry is preserved for parity with the
// calibrated production behavior.
func (e *Engine) assessJurisdictionClarity(claim Claim, jurisdiction Jurisdiction, reasoning string) Factor {
	score := 1.0
	multiplier := 1.0
	var parts []string

	origin := strings.ToLower(claim.Origin)
	destination := strings.ToLower(claim.Destination)
	airline := strings.ToLower(claim.Airline)

	if containsAnyEither(origin, destination, MultiJurisdictionIndicators) {
		score *= 0.85
		multiplier = 0.85
		parts = append(parts, "Multi-jurisdiction route detected")
	}

	if containsAny(airline, CodeShareIndicators) {
		score *= 0.90
		multiplier = 0.90
		parts = append(parts, "Code-share flight detected")
	}

	if origin == "" || destination == "" {
		score *= 0.3
		parts = append(parts, "Missing flight route information")
	}

	switch jurisdiction {
	case JurisdictionAPPR:
		if !containsAnyEither(origin, destination, CanadianIndicators) {
			score *= 0.6
			parts = append(parts, "Route doesn't clearly indicate Canadian jurisdiction")
		}
	case JurisdictionEU261:
		if !containsAnyEither(origin, destination, EUIndicators) {
			score *= 0.5
			parts = append(parts, "Route doesn't clearly indicate EU jurisdiction")
		}
	}

	if len(reasoning) < 20 {
		score *= 0.8
		parts = append(parts, "Insufficient jurisdiction reasoning")
	}

	return Factor{
		Name:       FactorJurisdictionClarity,
		Weight:     e.weights[FactorJurisdictionClarity],
		Score:      score,
		Reasoning:  factorReasoning(parts, "High jurisdiction clarity"),
		Multiplier: multiplier,
	}
}

// assessLegalComplexity scores proximity to legal threshold boundaries and
// the interpretive burden of the stated delay cause.
func (e *Engine) assessLegalComplexity(claim Claim, jurisdiction Jurisdiction) Factor {
	score := 1.0
	var parts []string

	delayReason := strings.ToLower(claim.DelayReason)

	// Both boundary windows are closed intervals and independent.
	if claim.DelayLength >= 2.5 && claim.DelayLength <= 3.5 {
		score *= 0.7
		parts = append(parts, "Delay duration near compensation threshold")
	}

	if claim.DelayLength >= 8.5 && claim.DelayLength <= 9.5 {
		score *= 0.7
		parts = append(parts, "Delay duration near higher compensation threshold")
	}

	if containsAny(delayReason, ExtraordinaryCircumstances) &&
		!strings.Contains(delayReason, "severe") && !strings.Contains(delayReason, "extreme") {
		score *= 0.6
		parts = append(parts, "Extraordinary circumstances require legal interpretation")
	}

	if strings.Contains(delayReason, "and") || strings.Contains(delayReason, "also") {
		score *= 0.6
		parts = append(parts, "Multiple delay reasons increase legal complexity")
	}

	if jurisdiction == JurisdictionNeither {
		score *= 0.5
		parts = append(parts, "No clear jurisdiction increases legal complexity")
	}

	return Factor{
		Name:       FactorLegalComplexity,
		Weight:     e.weights[FactorLegalComplexity],
		Score:      score,
		Reasoning:  factorReasoning(parts, "Low legal complexity"),
		Multiplier: 1.0,
	}
}

// assessDelayReasonAmbiguity scores how actionable the airline's stated
// delay reason is.
func (e *Engine) assessDelayReasonAmbiguity(claim Claim) Factor {
	score := 1.0
	var parts []string

	delayReason := strings.ToLower(claim.DelayReason)

	if containsAny(delayReason, AmbiguousDelayReasons) {
		score *= 0.4
		parts = append(parts, "Airline provided ambiguous delay reason")
	}

	if strings.Contains(delayReason, "weather") &&
		!containsAny(delayReason, WeatherIntensityQualifiers) {
		score *= 0.7
		parts = append(parts, "Weather-related delay lacks specificity")
	}

	if strings.TrimSpace(delayReason) == "" {
		score *= 0.3
		parts = append(parts, "No delay reason provided")
	}

	if containsAny(delayReason, VagueTimeReferences) {
		score *= 0.6
		parts = append(parts, "Vague delay reason provided")
	}

	return Factor{
		Name:       FactorDelayReasonAmbiguity,
		Weight:     e.weights[FactorDelayReasonAmbiguity],
		Score:      score,
		Reasoning:  factorReasoning(parts, "Clear delay reason provided"),
		Multiplier: 1.0,
	}
}

// assessDataCompleteness scores the structural completeness of the claim.
// Missing required fields compound as 0.8^n; a zero delay length counts
// as missing.
func (e *Engine) assessDataCompleteness(claim Claim, eligibility EligibilityResult) Factor {
	score := 1.0
	var parts []string

	missing := missingClaimFields(claim)
	if len(missing) > 0 {
		score *= math.Pow(0.8, float64(len(missing)))
		parts = append(parts, "Missing data: "+strings.Join(missing, ", "))
	}

	if claim.PassengerNotes != "" &&
		containsAny(claim.PassengerNotes, UncertaintyIndicators) {
		score *= 0.8
		parts = append(parts, "Passenger expressed uncertainty about details")
	}

	if len(eligibility.LegalCitations) == 0 {
		score *= 0.6
		parts = append(parts, "No specific legal citations available")
	}

	return Factor{
		Name:       FactorDataCompleteness,
		Weight:     e.weights[FactorDataCompleteness],
		Score:      score,
		Reasoning:  factorReasoning(parts, "Complete data available"),
		Multiplier: 1.0,
	}
}

// assessRegulatoryEdgeCases scores special-handling scenarios: holiday
// periods, multi-airline operations, very long delays.
func (e *Engine) assessRegulatoryEdgeCases(claim Claim) Factor {
	score := 1.0
	var parts []string

	if containsAny(claim.FlightDate, HolidayMonthTokens) {
		score *= 0.9
		parts = append(parts, "Flight during holiday period")
	}

	airline := strings.ToLower(claim.Airline)
	if strings.Contains(airline, "operated by") || strings.Contains(airline, "marketed by") {
		score *= 0.8
		parts = append(parts, "Multi-airline flight scenario")
	}

	if claim.DelayLength > 12 {
		score *= 0.7
		parts = append(parts, "Very long delay may involve extraordinary circumstances")
	}

	return Factor{
		Name:       FactorRegulatoryEdgeCases,
		Weight:     e.weights[FactorRegulatoryEdgeCases],
		Score:      score,
		Reasoning:  factorReasoning(parts, "Standard regulatory scenario"),
		Multiplier: 1.0,
	}
}

// assessFinancialImpact scores the monetary exposure of the claim.
func (e *Engine) assessFinancialImpact(claim Claim, eligibility EligibilityResult) Factor {
	score := 1.0
	var parts []string

	if eligibility.CompensationAmount > 1000 {
		score *= 0.8
		parts = append(parts, "High-value claim requires additional scrutiny")
	}

	if claim.PassengerCount > 4 {
		score *= 0.9
		parts = append(parts, "Multiple passengers increase financial impact")
	}

	if claim.DelayLength > 6 && eligibility.CompensationAmount > 500 {
		score *= 0.85
		parts = append(parts, "Long delay with significant compensation")
	}

	return Factor{
		Name:       FactorFinancialImpact,
		Weight:     e.weights[FactorFinancialImpact],
		Score:      score,
		Reasoning:  factorReasoning(parts, "Standard financial impact"),
		Multiplier: 1.0,
	}
}

// assessPrecedentSimilarity is a heuristic stand-in for case-law
// similarity search; no precedent database is consulted.
func (e *Engine) assessPrecedentSimilarity(claim Claim, jurisdiction Jurisdiction) Factor {
	score := 1.0
	var parts []string

	if containsAny(claim.DelayReason, NovelDelayReasons) {
		score *= 0.6
		parts = append(parts, "Novel delay reason with limited precedents")
	}

	if jurisdiction == JurisdictionNeither {
		score *= 0.7
		parts = append(parts, "No clear jurisdiction - limited precedents")
	}

	return Factor{
		Name:       FactorPrecedentSimilarity,
		Weight:     e.weights[FactorPrecedentSimilarity],
		Score:      score,
		Reasoning:  factorReasoning(parts, "Similar to existing precedents"),
		Multiplier: 1.0,
	}
}

// missingClaimFields returns the labels of absent required fields, in
// RequiredClaimFields order.
func missingClaimFields(claim Claim) []string {
	present := map[string]bool{
		"flight_number": claim.FlightNumber != "",
		"flight_date":   claim.FlightDate != "",
		"airline":       claim.Airline != "",
		"origin":        claim.Origin != "",
		"destination":   claim.Destination != "",
		"delay_length":  claim.DelayLength != 0,
	}

	var missing []string
	for _, field := range RequiredClaimFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// factorReasoning joins fired-heuristic clauses, or returns the fixed
// all-clear message when none fired.
func factorReasoning(parts []string, clear string) string {
	if len(parts) == 0 {
		return clear
	}
	return strings.Join(parts, "; ")
}
