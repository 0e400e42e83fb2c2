// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfix/tripfix/services/claims/datatypes"
	"github.com/tripfix/tripfix/services/risk"
)

func scoreRouter() *gin.Engine {
	router := gin.New()
	router.POST("/v1/score", HandleScore(risk.NewScorer()))
	return router
}

func TestHandleScore_HighConfidence(t *testing.T) {
	router := scoreRouter()

	req := datatypes.ScoreRequest{
		Claim: risk.Claim{
			Origin:      "YYZ Toronto",
			Destination: "YVR Vancouver",
			DelayLength: 5.0,
			DelayReason: "engine replacement",
		},
		Jurisdiction: risk.JurisdictionAPPR,
		JurisdictionReasoning: "Both origin and destination are Canadian airports, " +
			"so APPR governs this itinerary.",
		LegalCitations: []string{"APPR s.19(1)"},
	}

	w := postJSON(t, router, "/v1/score", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1.0, resp.JurisdictionConfidence)
	assert.Equal(t, 1.0, resp.EligibilityConfidence)
	assert.False(t, resp.ShouldHandoff)
	assert.Equal(t, "Confidence levels acceptable for automated processing", resp.HandoffReason)
}

func TestHandleScore_LowConfidenceHandsOff(t *testing.T) {
	router := scoreRouter()

	req := datatypes.ScoreRequest{
		Claim: risk.Claim{
			Origin:      "Denver",
			Destination: "Chicago",
			DelayLength: 3.5,
			DelayReason: "operational reasons",
		},
		Jurisdiction:          risk.JurisdictionAPPR,
		JurisdictionReasoning: "short",
	}

	w := postJSON(t, router, "/v1/score", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.ShouldHandoff)
	assert.Less(t, resp.JurisdictionConfidence, 0.7)
	assert.Contains(t, resp.JurisdictionExplanation, "Jurisdiction confidence:")
	assert.Contains(t, resp.EligibilityExplanation, "Eligibility confidence:")
}

func TestHandleScore_UnknownJurisdiction(t *testing.T) {
	router := scoreRouter()

	req := datatypes.ScoreRequest{
		Claim:        risk.Claim{Origin: "YYZ", Destination: "YVR"},
		Jurisdiction: "WARSAW_CONVENTION",
	}

	w := postJSON(t, router, "/v1/score", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
