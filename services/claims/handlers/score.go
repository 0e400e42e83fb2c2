// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfix/tripfix/services/claims/datatypes"
	"github.com/tripfix/tripfix/services/claims/observability"
	"github.com/tripfix/tripfix/services/risk"
)

// HandleScore serves the earlier-generation two-factor confidence scorer.
// Kept for callers that only need the jurisdiction and eligibility
// confidences without the full assessment.
func HandleScore(scorer *risk.Scorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			recordError(observability.EndpointScore, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		if err := req.Validate(); err != nil {
			recordError(observability.EndpointScore, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		jc, jcExplanation := scorer.ScoreJurisdictionConfidence(
			req.Claim, req.Jurisdiction, req.JurisdictionReasoning)
		ec, ecExplanation := scorer.ScoreEligibilityConfidence(req.Claim, req.LegalCitations)
		handoff, reason := scorer.ShouldHandoffToHuman(jc, ec)

		slog.Info("legacy score completed",
			"flight_number", req.Claim.FlightNumber,
			"jurisdiction_confidence", jc,
			"eligibility_confidence", ec,
			"handoff", handoff)

		if m := observability.DefaultMetrics; m != nil {
			m.RecordRequest(observability.EndpointScore, true)
		}
		c.JSON(http.StatusOK, datatypes.ScoreResponse{
			JurisdictionConfidence:  jc,
			JurisdictionExplanation: jcExplanation,
			EligibilityConfidence:   ec,
			EligibilityExplanation:  ecExplanation,
			ShouldHandoff:           handoff,
			HandoffReason:           reason,
		})
	}
}
