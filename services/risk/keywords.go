// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

// Package-level keyword tables used by the risk factors and pattern
// detection. All matching is case-insensitive substring containment over
// these fixed constants; no tokenization or stemming is performed.
//
// The tables are process-wide static configuration: they are never mutated
// after initialization. They are exported so tests can assert membership
// directly and so threshold tuning does not require touching factor logic.
var (
	// MultiJurisdictionIndicators are major city names whose presence in
	// the origin or destination suggests a route crossing regulatory
	// regimes.
	MultiJurisdictionIndicators = []string{
		"paris", "london", "new york", "frankfurt",
		"amsterdam", "brussels", "dublin", "zurich",
	}

	// CodeShareIndicators mark airline text that embeds an operating or
	// marketing carrier distinct from the selling carrier.
	CodeShareIndicators = []string{
		"operated by", "marketed by", "code share", "codeshare",
	}

	// AmbiguousDelayReasons are known airline phrasings that carry no
	// legally actionable cause.
	AmbiguousDelayReasons = []string{
		"operational reasons", "technical issues", "crew scheduling",
		"operational requirements", "network optimization",
		"unforeseen circumstances", "air traffic control",
		"airport congestion", "ground handling",
	}

	// ExtraordinaryCircumstances are delay causes that may exempt the
	// airline from compensation and therefore require legal interpretation.
	ExtraordinaryCircumstances = []string{
		"weather", "strike", "security", "terrorism", "political unrest",
		"natural disaster", "medical emergency", "bird strike",
	}

	// UncertaintyIndicators are hedges passengers use when unsure of the
	// facts they are reporting.
	UncertaintyIndicators = []string{
		"i think", "around", "approximately", "maybe", "possibly",
		"not sure", "unclear", "don't remember", "might have been",
	}

	// CanadianIndicators are airport codes and country names that tie a
	// route to Canadian jurisdiction.
	CanadianIndicators = []string{
		"yyz", "yvr", "yul", "yyc", "yow", "canada",
	}

	// EUIndicators are airport codes and country names that tie a route
	// to EU jurisdiction.
	EUIndicators = []string{
		"fra", "cdg", "mad", "bcn", "fco", "ams", "bru",
		"germany", "france", "spain",
	}

	// WeatherIntensityQualifiers are the specific terms that turn a vague
	// weather mention into a concrete one.
	WeatherIntensityQualifiers = []string{
		"storm", "severe", "extreme", "hurricane", "blizzard",
	}

	// VagueTimeReferences are temporal hedges in delay reasons.
	VagueTimeReferences = []string{
		"some time", "a while", "delayed", "late",
	}

	// NovelDelayReasons are rare causes with little precedent coverage.
	NovelDelayReasons = []string{
		"cyber attack", "pilot shortage", "fuel contamination", "cargo issue",
	}

	// UrgencyIndicators mark time-sensitive requests in conversation.
	UrgencyIndicators = []string{
		"urgent", "asap", "quickly", "soon",
	}

	// HolidayMonthTokens are two-digit month substrings matched against
	// the flight date string for the holiday-season heuristic.
	HolidayMonthTokens = []string{
		"12", "01", "07", "08",
	}

	// RequiredClaimFields are the claim fields whose absence triggers the
	// exponential data-completeness penalty. Names double as the labels
	// used in factor reasoning text.
	RequiredClaimFields = []string{
		"flight_number", "flight_date", "airline",
		"origin", "destination", "delay_length",
	}
)
