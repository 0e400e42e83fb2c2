// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfix/tripfix/services/risk"
)

func writeCaseFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCaseFile_Complete(t *testing.T) {
	path := writeCaseFile(t, `
claim:
  origin: "Toronto"
  destination: "Vancouver"
  airline: "Air Canada"
  flight_number: "AC123"
  flight_date: "2024-05-15"
  delay_length: 4.0
  delay_reason: "mechanical issues"
  passenger_count: 1
jurisdiction: "APPR"
jurisdiction_reasoning: "Both airports are in Canada, APPR applies."
eligibility:
  eligible: true
  compensation_amount: 650
  legal_citations:
    - "APPR s.19(1)"
conversation_history:
  - role: "user"
    content: "I think my flight was delayed around 4 hours"
`)

	cf, err := LoadCaseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "AC123", cf.Claim.FlightNumber)
	assert.Equal(t, 4.0, cf.Claim.DelayLength)
	assert.Equal(t, risk.JurisdictionAPPR, cf.Jurisdiction)
	assert.True(t, cf.Eligibility.Eligible)
	assert.Equal(t, []string{"APPR s.19(1)"}, cf.Eligibility.LegalCitations)
	require.Len(t, cf.History, 1)
	assert.Equal(t, risk.RoleUser, cf.History[0].Role)
}

func TestLoadCaseFile_JurisdictionNormalized(t *testing.T) {
	path := writeCaseFile(t, `
claim:
  origin: "Frankfurt"
jurisdiction: " eu261 "
`)

	cf, err := LoadCaseFile(path)
	require.NoError(t, err)
	assert.Equal(t, risk.JurisdictionEU261, cf.Jurisdiction)
}

func TestLoadCaseFile_MissingJurisdictionDefaultsToNeither(t *testing.T) {
	path := writeCaseFile(t, `
claim:
  origin: "Denver"
  destination: "Chicago"
`)

	cf, err := LoadCaseFile(path)
	require.NoError(t, err)
	assert.Equal(t, risk.JurisdictionNeither, cf.Jurisdiction)
}

func TestLoadCaseFile_UnknownJurisdiction(t *testing.T) {
	path := writeCaseFile(t, `
claim:
  origin: "Denver"
jurisdiction: "MONTREAL"
`)

	_, err := LoadCaseFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown jurisdiction")
}

func TestLoadCaseFile_MissingFile(t *testing.T) {
	_, err := LoadCaseFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadCaseFile_InvalidYAML(t *testing.T) {
	path := writeCaseFile(t, "claim: [unclosed")

	_, err := LoadCaseFile(path)
	require.Error(t, err)
}

func TestAssessCommand_EndToEnd(t *testing.T) {
	path := writeCaseFile(t, `
claim:
  origin: "Toronto"
  destination: "Vancouver"
  airline: "Air Canada"
  flight_number: "AC123"
  flight_date: "2024-05-15"
  delay_length: 4.0
  delay_reason: "mechanical issues"
  passenger_count: 1
jurisdiction: "APPR"
jurisdiction_reasoning: "Both origin and destination airports are in Canada, APPR applies."
eligibility:
  eligible: true
  compensation_amount: 650
  legal_citations:
    - "APPR s.19(1)"
`)

	cf, err := LoadCaseFile(path)
	require.NoError(t, err)

	engine := risk.NewEngine()
	a := engine.AssessRisk(cf.Claim, cf.Jurisdiction, cf.JurisdictionReasoning,
		cf.Eligibility, cf.History)

	assert.Equal(t, risk.LevelLow, a.Level)
	assert.False(t, a.HandoffRequired)
}
