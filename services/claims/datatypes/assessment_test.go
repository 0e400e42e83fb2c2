// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripfix/tripfix/services/risk"
)

func TestAssessRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AssessRequest)
		wantErr error
	}{
		{
			name:   "valid request",
			mutate: func(r *AssessRequest) {},
		},
		{
			name: "sparse claim is valid",
			mutate: func(r *AssessRequest) {
				r.Claim = risk.Claim{}
			},
		},
		{
			name: "notes too large",
			mutate: func(r *AssessRequest) {
				r.Claim.PassengerNotes = strings.Repeat("a", MaxPassengerNotesBytes+1)
			},
			wantErr: ErrNotesTooLarge,
		},
		{
			name: "history too long",
			mutate: func(r *AssessRequest) {
				r.History = make([]risk.Turn, MaxHistoryTurns+1)
			},
			wantErr: ErrHistoryTooLong,
		},
		{
			name: "turn too large",
			mutate: func(r *AssessRequest) {
				r.History = []risk.Turn{{
					Role:    risk.RoleUser,
					Content: strings.Repeat("a", MaxTurnContentBytes+1),
				}}
			},
			wantErr: ErrTurnTooLarge,
		},
		{
			name: "unknown jurisdiction",
			mutate: func(r *AssessRequest) {
				r.Jurisdiction = "ICAO"
			},
			wantErr: ErrUnknownJurisdiction,
		},
		{
			name: "empty jurisdiction",
			mutate: func(r *AssessRequest) {
				r.Jurisdiction = ""
			},
			wantErr: ErrUnknownJurisdiction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := AssessRequest{
				Claim:        risk.Claim{Origin: "YYZ", Destination: "YVR"},
				Jurisdiction: risk.JurisdictionAPPR,
			}
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestScoreRequestValidate(t *testing.T) {
	req := ScoreRequest{
		Claim:        risk.Claim{Origin: "YYZ", Destination: "YVR"},
		Jurisdiction: risk.JurisdictionNeither,
	}
	assert.NoError(t, req.Validate())

	req.Jurisdiction = "MONTREAL"
	assert.ErrorIs(t, req.Validate(), ErrUnknownJurisdiction)

	req.Jurisdiction = risk.JurisdictionEU261
	req.Claim.PassengerNotes = strings.Repeat("x", MaxPassengerNotesBytes+1)
	assert.ErrorIs(t, req.Validate(), ErrNotesTooLarge)
}
