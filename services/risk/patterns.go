// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import "strings"

// Pattern tags appended by detectPatterns, in detection order.
const (
	PatternMultiJurisdictionRoute = "Multi-jurisdiction route"
	PatternCodeShareFlight        = "Code-share flight"
	PatternBorderline3HourDelay   = "Borderline 3-hour delay"
	PatternBorderline9HourDelay   = "Borderline 9-hour delay"
	PatternExtraordinaryGrayArea  = "Extraordinary circumstances gray area"
	PatternMultipleDelayReasons   = "Multiple delay reasons"
)

// Contextual factor tags produced by analyzeConversationContext.
const (
	ContextPassengerUncertainty  = "Passenger expressed uncertainty"
	ContextMultipleDelayMentions = "Multiple delay reasons mentioned in conversation"
	ContextTimeSensitive         = "Time-sensitive request"
)

// detectPatterns runs the fixed pattern checks against the claim. Each
// pattern is checked at most once, so the result has no duplicates, and
// the order is the fixed detection order.
//
// Pattern detection is orthogonal to scoring: it feeds the rationale text
// and the exposed PatternsDetected list, never the confidence number. The
// borderline delay windows here are deliberately tighter than the legal
// complexity factor's scoring windows.
func detectPatterns(claim Claim) []string {
	var patterns []string

	origin := strings.ToLower(claim.Origin)
	destination := strings.ToLower(claim.Destination)
	airline := strings.ToLower(claim.Airline)
	delayReason := strings.ToLower(claim.DelayReason)

	if containsAnyEither(origin, destination, MultiJurisdictionIndicators) {
		patterns = append(patterns, PatternMultiJurisdictionRoute)
	}

	if containsAny(airline, CodeShareIndicators) {
		patterns = append(patterns, PatternCodeShareFlight)
	}

	// The two borderline windows are mutually exclusive.
	if claim.DelayLength >= 2.8 && claim.DelayLength <= 3.2 {
		patterns = append(patterns, PatternBorderline3HourDelay)
	} else if claim.DelayLength >= 8.8 && claim.DelayLength <= 9.2 {
		patterns = append(patterns, PatternBorderline9HourDelay)
	}

	if containsAny(delayReason, ExtraordinaryCircumstances) &&
		!strings.Contains(delayReason, "severe") && !strings.Contains(delayReason, "extreme") {
		patterns = append(patterns, PatternExtraordinaryGrayArea)
	}

	if strings.Contains(delayReason, "and") || strings.Contains(delayReason, "also") {
		patterns = append(patterns, PatternMultipleDelayReasons)
	}

	return patterns
}

// analyzeConversationContext mines user turns for contextual factors.
//
// Each tag is appended at most once, in first-occurrence order: the
// uncertainty and urgency scans stop at the first matching turn, and the
// delay-reason tag requires more than one turn mentioning both "delay"
// and "reason".
func analyzeConversationContext(history []Turn) []string {
	var factors []string

	for _, turn := range history {
		if turn.Role != RoleUser {
			continue
		}
		if containsAny(turn.Content, UncertaintyIndicators) {
			factors = append(factors, ContextPassengerUncertainty)
			break
		}
	}

	delayReasonMentions := 0
	for _, turn := range history {
		if turn.Role != RoleUser {
			continue
		}
		content := strings.ToLower(turn.Content)
		if strings.Contains(content, "delay") && strings.Contains(content, "reason") {
			delayReasonMentions++
		}
	}
	if delayReasonMentions > 1 {
		factors = append(factors, ContextMultipleDelayMentions)
	}

	for _, turn := range history {
		if turn.Role != RoleUser {
			continue
		}
		if containsAny(turn.Content, UrgencyIndicators) {
			factors = append(factors, ContextTimeSensitive)
			break
		}
	}

	return factors
}
