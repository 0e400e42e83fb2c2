// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tripfix/tripfix/services/risk"
)

// CaseFile is the YAML document describing one claim case for offline
// assessment.
//
// Example:
//
//	claim:
//	  origin: "Toronto"
//	  destination: "Vancouver"
//	  airline: "Air Canada"
//	  flight_number: "AC123"
//	  flight_date: "2024-05-15"
//	  delay_length: 4.0
//	  delay_reason: "mechanical issues"
//	  passenger_count: 1
//	jurisdiction: "APPR"
//	jurisdiction_reasoning: "Both airports are in Canada, APPR applies."
//	eligibility:
//	  eligible: true
//	  compensation_amount: 650
//	  legal_citations:
//	    - "APPR s.19(1)"
//	conversation_history:
//	  - role: "user"
//	    content: "I think my flight was delayed around 4 hours"
type CaseFile struct {
	Claim                 risk.Claim             `yaml:"claim"`
	Jurisdiction          risk.Jurisdiction      `yaml:"jurisdiction"`
	JurisdictionReasoning string                 `yaml:"jurisdiction_reasoning"`
	Eligibility           risk.EligibilityResult `yaml:"eligibility"`
	History               []risk.Turn            `yaml:"conversation_history"`
}

// LoadCaseFile reads and parses a claim case file. The jurisdiction
// field is normalized to upper case and defaults to NEITHER when
// absent.
func LoadCaseFile(path string) (CaseFile, error) {
	var cf CaseFile

	raw, err := os.ReadFile(path)
	if err != nil {
		return cf, fmt.Errorf("read case file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return cf, fmt.Errorf("parse case file %s: %w", path, err)
	}

	cf.Jurisdiction = risk.Jurisdiction(strings.ToUpper(strings.TrimSpace(string(cf.Jurisdiction))))
	if cf.Jurisdiction == "" {
		cf.Jurisdiction = risk.JurisdictionNeither
	}

	switch cf.Jurisdiction {
	case risk.JurisdictionAPPR, risk.JurisdictionEU261, risk.JurisdictionNeither:
	default:
		return cf, fmt.Errorf("case file %s: unknown jurisdiction %q", path, cf.Jurisdiction)
	}
	return cf, nil
}
