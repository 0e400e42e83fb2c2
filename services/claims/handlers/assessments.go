// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripfix/tripfix/services/claims/datatypes"
	"github.com/tripfix/tripfix/services/claims/observability"
	"github.com/tripfix/tripfix/services/claims/storage"
)

// defaultListLimit bounds unfiltered assessment listings.
const defaultListLimit = 100

// ListAssessments returns stored assessment summaries. Accepts an
// optional ?limit= query parameter.
func ListAssessments(store *storage.AssessmentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				recordError(observability.EndpointList, observability.ErrorCodeValidation)
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			limit = parsed
		}

		records, err := store.List(c.Request.Context(), limit)
		if err != nil {
			slog.Error("failed to list assessments", "error", err)
			recordError(observability.EndpointList, observability.ErrorCodeStorage)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assessments"})
			return
		}

		summaries := make([]datatypes.AssessmentSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, datatypes.AssessmentSummary{
				ID:                rec.ID,
				FlightNumber:      rec.Claim.FlightNumber,
				RiskLevel:         string(rec.Assessment.Level),
				OverallConfidence: rec.Assessment.OverallConfidence,
				HandoffRequired:   rec.Assessment.HandoffRequired,
				CreatedAt:         rec.CreatedAt,
			})
		}

		if m := observability.DefaultMetrics; m != nil {
			m.RecordRequest(observability.EndpointList, true)
		}
		c.JSON(http.StatusOK, datatypes.ListAssessmentsResponse{
			Assessments: summaries,
			Count:       len(summaries),
		})
	}
}

// GetAssessment returns one stored assessment record by ID.
func GetAssessment(store *storage.AssessmentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("assessmentId")

		rec, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			recordError(observability.EndpointGet, observability.ErrorCodeNotFound)
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		if err != nil {
			slog.Error("failed to get assessment", "assessmentId", id, "error", err)
			recordError(observability.EndpointGet, observability.ErrorCodeStorage)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get assessment"})
			return
		}

		if m := observability.DefaultMetrics; m != nil {
			m.RecordRequest(observability.EndpointGet, true)
		}
		c.JSON(http.StatusOK, rec)
	}
}
