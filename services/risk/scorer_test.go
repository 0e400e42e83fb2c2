// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scorerAPPRReasoning = "Both origin and destination are Canadian airports, so APPR governs this itinerary."

func TestScoreJurisdictionConfidence_HighConfidence(t *testing.T) {
	s := NewScorer()
	claim := Claim{Origin: "YYZ Toronto", Destination: "YVR Vancouver", Airline: "Air Canada"}

	confidence, explanation := s.ScoreJurisdictionConfidence(claim, JurisdictionAPPR, scorerAPPRReasoning)

	assert.Equal(t, 1.0, confidence)
	assert.Equal(t, "High confidence in jurisdiction determination", explanation)
}

func TestScoreJurisdictionConfidence_Penalties(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name           string
		claim          Claim
		jurisdiction   Jurisdiction
		reasoning      string
		wantConfidence float64
		wantClause     string
	}{
		{
			name:           "missing route",
			claim:          Claim{Origin: "YYZ"},
			jurisdiction:   JurisdictionAPPR,
			reasoning:      scorerAPPRReasoning,
			wantConfidence: 0.3,
			wantClause:     "Missing flight route information",
		},
		{
			name:           "appr without canadian route",
			claim:          Claim{Origin: "Denver", Destination: "Chicago"},
			jurisdiction:   JurisdictionAPPR,
			reasoning:      scorerAPPRReasoning,
			wantConfidence: 0.6,
			wantClause:     "Route doesn't clearly indicate Canadian jurisdiction",
		},
		{
			name:           "eu261 without eu route",
			claim:          Claim{Origin: "Denver", Destination: "Chicago"},
			jurisdiction:   JurisdictionEU261,
			reasoning:      "The operating carrier is a community carrier under Regulation 261/2004.",
			wantConfidence: 0.5,
			wantClause:     "Route doesn't clearly indicate EU jurisdiction",
		},
		{
			name:           "short reasoning",
			claim:          Claim{Origin: "YUL Montreal", Destination: "YYC Calgary"},
			jurisdiction:   JurisdictionAPPR,
			reasoning:      "APPR applies here.",
			wantConfidence: 0.8,
			wantClause:     "Insufficient reasoning provided",
		},
		{
			name:           "hedged reasoning",
			claim:          Claim{Origin: "YUL Montreal", Destination: "YYC Calgary"},
			jurisdiction:   JurisdictionAPPR,
			reasoning:      "The route is ambiguous between regimes but APPR is the better fit on balance here.",
			wantConfidence: 0.6,
			wantClause:     "Ambiguous route or airline information",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, explanation := s.ScoreJurisdictionConfidence(tt.claim, tt.jurisdiction, tt.reasoning)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-9)
			assert.Contains(t, explanation, tt.wantClause)
			assert.True(t, strings.HasPrefix(explanation, "Jurisdiction confidence: "),
				"explanation %q should carry the confidence prefix", explanation)
		})
	}
}

func TestScoreJurisdictionConfidence_NeitherSkipsRouteCheck(t *testing.T) {
	s := NewScorer()
	claim := Claim{Origin: "Denver", Destination: "Chicago"}

	confidence, _ := s.ScoreJurisdictionConfidence(claim, JurisdictionNeither,
		"Neither APPR nor EU261 covers a purely domestic United States itinerary.")

	// Route indicator penalties only apply to a positive verdict.
	assert.Equal(t, 1.0, confidence)
}

func TestScoreEligibilityConfidence_HighConfidence(t *testing.T) {
	s := NewScorer()
	claim := Claim{DelayLength: 5.0, DelayReason: "engine replacement"}

	confidence, explanation := s.ScoreEligibilityConfidence(claim, []string{"APPR s.19(1)"})

	assert.Equal(t, 1.0, confidence)
	assert.Equal(t, "High confidence in eligibility determination", explanation)
}

func TestScoreEligibilityConfidence_Penalties(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name           string
		claim          Claim
		citations      []string
		wantConfidence float64
	}{
		{"ambiguous reason", Claim{DelayLength: 5, DelayReason: "operational reasons"}, []string{"APPR s.19(1)"}, 0.4},
		{"vague weather", Claim{DelayLength: 5, DelayReason: "weather conditions"}, []string{"APPR s.19(1)"}, 0.7},
		{"storm weather is specific", Claim{DelayLength: 5, DelayReason: "storm weather"}, []string{"APPR s.19(1)"}, 1.0},
		{"zero delay", Claim{DelayLength: 0, DelayReason: "engine replacement"}, []string{"APPR s.19(1)"}, 0.5},
		{"no citations", Claim{DelayLength: 5, DelayReason: "engine replacement"}, nil, 0.6},
		{"borderline duration", Claim{DelayLength: 3.5, DelayReason: "engine replacement"}, []string{"APPR s.19(1)"}, 0.8},
		{"stacked", Claim{DelayLength: 3.5, DelayReason: "weather conditions"}, nil, 0.7 * 0.6 * 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, explanation := s.ScoreEligibilityConfidence(tt.claim, tt.citations)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-9)
			if tt.wantConfidence < 1.0 {
				assert.True(t, strings.HasPrefix(explanation, "Eligibility confidence: "),
					"explanation %q should carry the confidence prefix", explanation)
			}
		})
	}
}

func TestScoreEligibilityConfidence_ZeroDelaySkipsBorderline(t *testing.T) {
	s := NewScorer()
	claim := Claim{DelayLength: 0, DelayReason: "engine replacement"}

	confidence, explanation := s.ScoreEligibilityConfidence(claim, []string{"APPR s.19(1)"})

	// Zero duration takes the missing-duration penalty only; the
	// borderline band is open at zero.
	assert.InDelta(t, 0.5, confidence, 1e-9)
	assert.NotContains(t, explanation, "borderline")
}

func TestShouldHandoffToHuman(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name         string
		jurisdiction float64
		eligibility  float64
		wantHandoff  bool
		wantClause   string
	}{
		{"both high", 0.9, 0.9, false, "Confidence levels acceptable for automated processing"},
		{"jurisdiction low", 0.5, 0.9, true, "Jurisdiction determination confidence too low (0.50 < 0.70)"},
		{"eligibility low", 0.9, 0.5, true, "Eligibility determination confidence too low (0.50 < 0.75)"},
		{"jurisdiction checked first", 0.5, 0.5, true, "Jurisdiction determination confidence too low (0.50 < 0.70)"},
		{"at jurisdiction threshold", 0.7, 0.9, false, "Confidence levels acceptable for automated processing"},
		{"at eligibility threshold", 0.9, 0.75, false, "Confidence levels acceptable for automated processing"},
		{"eligibility between thresholds", 0.9, 0.72, true, "Eligibility determination confidence too low (0.72 < 0.75)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handoff, reason := s.ShouldHandoffToHuman(tt.jurisdiction, tt.eligibility)
			require.Equal(t, tt.wantHandoff, handoff)
			assert.Equal(t, tt.wantClause, reason)
		})
	}
}
