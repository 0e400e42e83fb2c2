// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfix/tripfix/services/claims/datatypes"
	"github.com/tripfix/tripfix/services/claims/storage"
	"github.com/tripfix/tripfix/services/claims/storage/badger"
	"github.com/tripfix/tripfix/services/risk"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) *storage.AssessmentStore {
	t.Helper()

	db, err := badger.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := storage.NewAssessmentStore(db)
	require.NoError(t, err)
	return store
}

func assessRouter(store *storage.AssessmentStore) *gin.Engine {
	router := gin.New()
	router.POST("/v1/assess", HandleAssess(risk.NewEngine(), store))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func cleanAssessRequest() datatypes.AssessRequest {
	return datatypes.AssessRequest{
		Claim: risk.Claim{
			Origin:         "Toronto",
			Destination:    "Vancouver",
			Airline:        "Air Canada",
			FlightNumber:   "AC123",
			FlightDate:     "2024-05-15",
			DelayLength:    4.0,
			DelayReason:    "mechanical issues",
			PassengerCount: 1,
		},
		Jurisdiction: risk.JurisdictionAPPR,
		JurisdictionReasoning: "Both origin and destination are Canadian airports, " +
			"so APPR governs this itinerary.",
		Eligibility: risk.EligibilityResult{
			Eligible:           true,
			CompensationAmount: 650,
			LegalCitations:     []string{"APPR s.19(1)"},
		},
	}
}

func TestHandleAssess_CleanClaim(t *testing.T) {
	router := assessRouter(nil)

	w := postJSON(t, router, "/v1/assess", cleanAssessRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.AssessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, risk.LevelLow, resp.Assessment.Level)
	assert.False(t, resp.Assessment.HandoffRequired)
	assert.Empty(t, resp.AssessmentID)
	assert.Len(t, resp.Assessment.Factors, 7)
}

func TestHandleAssess_PersistReturnsID(t *testing.T) {
	store := newTestStore(t)
	router := assessRouter(store)

	req := cleanAssessRequest()
	req.Persist = true

	w := postJSON(t, router, "/v1/assess", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.AssessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AssessmentID)

	rec, err := store.Get(context.Background(), resp.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, "AC123", rec.Claim.FlightNumber)
	assert.Equal(t, string(risk.JurisdictionAPPR), rec.Jurisdiction)
}

func TestHandleAssess_PersistWithoutStore(t *testing.T) {
	router := assessRouter(nil)

	req := cleanAssessRequest()
	req.Persist = true

	w := postJSON(t, router, "/v1/assess", req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleAssess_InvalidBody(t *testing.T) {
	router := assessRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/assess", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAssess_UnknownJurisdiction(t *testing.T) {
	router := assessRouter(nil)

	req := cleanAssessRequest()
	req.Jurisdiction = "MONTREAL_CONVENTION"

	w := postJSON(t, router, "/v1/assess", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "jurisdiction must be")
}

func TestHandleAssess_HistoryTooLong(t *testing.T) {
	router := assessRouter(nil)

	req := cleanAssessRequest()
	for i := 0; i <= datatypes.MaxHistoryTurns; i++ {
		req.History = append(req.History, risk.Turn{Role: risk.RoleUser, Content: "hello"})
	}

	w := postJSON(t, router, "/v1/assess", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAssess_SparseClaimStillAssessed(t *testing.T) {
	router := assessRouter(nil)

	req := datatypes.AssessRequest{
		Claim:        risk.Claim{Origin: "YYZ"},
		Jurisdiction: risk.JurisdictionAPPR,
	}

	w := postJSON(t, router, "/v1/assess", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.AssessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Assessment.HandoffRequired)
}
