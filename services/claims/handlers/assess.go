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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripfix/tripfix/services/claims/datatypes"
	"github.com/tripfix/tripfix/services/claims/observability"
	"github.com/tripfix/tripfix/services/claims/storage"
	"github.com/tripfix/tripfix/services/risk"
)

// HandleAssess runs the full multi-factor risk assessment for a claim.
//
// The store may be nil; persistence requests are then rejected with 503
// but stateless assessment still works.
func HandleAssess(engine *risk.Engine, store *storage.AssessmentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.AssessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			recordError(observability.EndpointAssess, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		if err := req.Validate(); err != nil {
			recordError(observability.EndpointAssess, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		_, span := otel.Tracer("tripfix.claims").Start(c.Request.Context(), "risk.assess",
			trace.WithAttributes(attribute.String("jurisdiction", string(req.Jurisdiction))))
		assessment := engine.AssessRisk(req.Claim, req.Jurisdiction,
			req.JurisdictionReasoning, req.Eligibility, req.History)
		span.SetAttributes(
			attribute.String("risk_level", string(assessment.Level)),
			attribute.Float64("confidence", assessment.OverallConfidence))
		span.End()

		slog.Info("assessment completed",
			"flight_number", req.Claim.FlightNumber,
			"risk_level", assessment.Level,
			"confidence", assessment.OverallConfidence,
			"handoff", assessment.HandoffRequired)

		resp := datatypes.AssessResponse{Assessment: assessment}

		if req.Persist {
			if store == nil {
				recordError(observability.EndpointAssess, observability.ErrorCodeStorage)
				c.JSON(http.StatusServiceUnavailable,
					gin.H{"error": "assessment storage is not configured"})
				return
			}
			id, err := store.Save(c.Request.Context(), storage.Record{
				Claim:        req.Claim,
				Jurisdiction: string(req.Jurisdiction),
				Assessment:   assessment,
			})
			if err != nil {
				slog.Error("failed to persist assessment", "error", err)
				recordError(observability.EndpointAssess, observability.ErrorCodeStorage)
				c.JSON(http.StatusInternalServerError,
					gin.H{"error": "failed to persist assessment"})
				return
			}
			resp.AssessmentID = id
		}

		if m := observability.DefaultMetrics; m != nil {
			m.RecordRequest(observability.EndpointAssess, true)
			m.RecordAssessment(string(assessment.Level), assessment.OverallConfidence,
				assessment.HandoffRequired, assessment.HandoffPriority)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// recordError increments request and error counters when metrics are
// initialized. Handlers stay usable in tests without InitMetrics.
func recordError(endpoint observability.Endpoint, code observability.ErrorCode) {
	if m := observability.DefaultMetrics; m != nil {
		m.RecordRequest(endpoint, false)
		m.RecordError(endpoint, code)
	}
}
