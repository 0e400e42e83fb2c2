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

// Factor name labels. Aggregation order is fixed and matches the order the
// factors appear in Assessment.Factors.
const (
	FactorJurisdictionClarity  = "Jurisdiction Clarity"
	FactorLegalComplexity      = "Legal Complexity"
	FactorDelayReasonAmbiguity = "Delay Reason Ambiguity"
	FactorDataCompleteness     = "Data Completeness"
	FactorRegulatoryEdgeCases  = "Regulatory Edge Cases"
	FactorFinancialImpact      = "Financial Impact"
	FactorPrecedentSimilarity  = "Precedent Similarity"
)

// Engine performs multi-factor risk assessment over classifier outputs.
//
// The factor weights sum to exactly 1.0 and the level thresholds partition
// [0,1] into contiguous, non-overlapping ranges. Both are fixed at
// construction; the engine holds no other state.
//
// Thread Safety: Safe for concurrent use. AssessRisk only reads its
// arguments and the immutable weight/threshold tables.
type Engine struct {
	weights    map[string]float64
	thresholds map[Level]float64
}

// NewEngine creates a risk assessment engine with the calibrated factor
// weights and level thresholds.
//
// The thresholds are deliberately looser than a naive 0.85/0.70/0.50
// scheme so that more routine claims auto-process instead of queueing for
// human review.
func NewEngine() *Engine {
	return &Engine{
		weights: map[string]float64{
			FactorJurisdictionClarity:  0.25,
			FactorLegalComplexity:      0.20,
			FactorDelayReasonAmbiguity: 0.20,
			FactorDataCompleteness:     0.15,
			FactorRegulatoryEdgeCases:  0.10,
			FactorFinancialImpact:      0.05,
			FactorPrecedentSimilarity:  0.05,
		},
		thresholds: map[Level]float64{
			LevelLow:      0.75,
			LevelMedium:   0.60,
			LevelHigh:     0.40,
			LevelCritical: 0.0,
		},
	}
}

// AssessRisk performs a comprehensive multi-factor risk assessment.
//
// Inputs:
//
//	claim - Flight facts from intake. Absent fields are zero values and
//	        degrade the relevant factor scores; nothing is required.
//	jurisdiction - The upstream jurisdiction verdict.
//	jurisdictionReasoning - The upstream classifier's free-text rationale.
//	eligibility - The upstream eligibility verdict.
//	history - Optional conversation transcript. Nil or empty yields no
//	          contextual factors.
//
// Outputs:
//
//	Assessment - Fully populated assessment. Never errs: sparse inputs
//	             produce a conservative rating, worst case LevelCritical.
func (e *Engine) AssessRisk(
	claim Claim,
	jurisdiction Jurisdiction,
	jurisdictionReasoning string,
	eligibility EligibilityResult,
	history []Turn,
) Assessment {
	factors := []Factor{
		e.assessJurisdictionClarity(claim, jurisdiction, jurisdictionReasoning),
		e.assessLegalComplexity(claim, jurisdiction),
		e.assessDelayReasonAmbiguity(claim),
		e.assessDataCompleteness(claim, eligibility),
		e.assessRegulatoryEdgeCases(claim),
		e.assessFinancialImpact(claim, eligibility),
		e.assessPrecedentSimilarity(claim, jurisdiction),
	}

	patterns := detectPatterns(claim)

	var contextual []string
	if len(history) > 0 {
		contextual = analyzeConversationContext(history)
	}

	confidence := e.weightedConfidence(factors)
	level := e.determineLevel(confidence)
	handoff, priority := handoffRequirements(level)

	a := Assessment{
		OverallConfidence: confidence,
		Level:             level,
		Factors:           factors,
		HandoffRequired:   handoff,
		HandoffPriority:   priority,
		Reasoning:         composeReasoning(confidence, factors, patterns, contextual),
		PatternsDetected:  patterns,
		ContextualFactors: contextual,
	}

	recordAssessment(a)
	return a
}

// weightedConfidence aggregates the factors into one confidence score:
// sum(score * multiplier * weight) / sum(weight). The weights sum to 1.0
// by construction, but the division is kept defensive.
func (e *Engine) weightedConfidence(factors []Factor) float64 {
	weightedSum := 0.0
	totalWeight := 0.0

	for _, f := range factors {
		weightedSum += f.Score * f.Multiplier * f.Weight
		totalWeight += f.Weight
	}

	if totalWeight <= 0 {
		return 0.0
	}
	return weightedSum / totalWeight
}

// determineLevel maps a confidence score onto the risk tier whose lower
// bound it meets, checked in descending order.
func (e *Engine) determineLevel(confidence float64) Level {
	switch {
	case confidence >= e.thresholds[LevelLow]:
		return LevelLow
	case confidence >= e.thresholds[LevelMedium]:
		return LevelMedium
	case confidence >= e.thresholds[LevelHigh]:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// handoffRequirements maps a risk level to the handoff flag and priority
// label. The mapping is total over the four levels; only LevelLow
// auto-processes.
func handoffRequirements(level Level) (bool, string) {
	switch level {
	case LevelLow:
		return false, PriorityAutoProcess
	case LevelMedium:
		return true, PriorityReview24Hours
	case LevelHigh:
		return true, PriorityReview1Hour
	default:
		return true, PriorityImmediateHuman
	}
}

// composeReasoning builds the assessment rationale: the confidence to two
// decimals, the names of factors whose raw score fell below 0.7, and the
// detected pattern and contextual tags. Each clause is its own sentence.
func composeReasoning(confidence float64, factors []Factor, patterns, contextual []string) string {
	parts := []string{fmt.Sprintf("Overall confidence: %.2f", confidence)}

	var keyFactors []string
	for _, f := range factors {
		if f.Score < 0.7 {
			keyFactors = append(keyFactors, f.Name)
		}
	}
	if len(keyFactors) > 0 {
		parts = append(parts, "Key risk factors: "+strings.Join(keyFactors, ", "))
	}

	if len(patterns) > 0 {
		parts = append(parts, "Patterns detected: "+strings.Join(patterns, ", "))
	}

	if len(contextual) > 0 {
		parts = append(parts, "Contextual factors: "+strings.Join(contextual, ", "))
	}

	return strings.Join(parts, ". ") + "."
}

// containsAny reports whether s contains any of the keywords. Both sides
// are compared case-insensitively.
func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// containsAnyEither reports whether either string contains any keyword.
func containsAnyEither(a, b string, keywords []string) bool {
	return containsAny(a, keywords) || containsAny(b, keywords)
}
