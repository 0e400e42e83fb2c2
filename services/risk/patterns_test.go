// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPatterns_None(t *testing.T) {
	claim := Claim{
		Origin:      "Toronto",
		Destination: "Vancouver",
		Airline:     "Air Canada",
		DelayLength: 5.0,
		DelayReason: "mechanical fault",
	}
	assert.Empty(t, detectPatterns(claim))
}

func TestDetectPatterns_AllInDetectionOrder(t *testing.T) {
	claim := Claim{
		Origin:      "Paris",
		Destination: "Toronto",
		Airline:     "Air France operated by KLM",
		DelayLength: 3.0,
		DelayReason: "weather and crew illness",
	}

	got := detectPatterns(claim)
	want := []string{
		PatternMultiJurisdictionRoute,
		PatternCodeShareFlight,
		PatternBorderline3HourDelay,
		PatternExtraordinaryGrayArea,
		PatternMultipleDelayReasons,
	}
	assert.Equal(t, want, got)
}

func TestDetectPatterns_BorderlineWindows(t *testing.T) {
	tests := []struct {
		delay float64
		want  string
	}{
		{2.8, PatternBorderline3HourDelay},
		{2.9, PatternBorderline3HourDelay},
		{3.2, PatternBorderline3HourDelay},
		{8.8, PatternBorderline9HourDelay},
		{9.2, PatternBorderline9HourDelay},
		{2.7, ""},
		{3.3, ""},
		{8.7, ""},
		{9.3, ""},
	}

	for _, tt := range tests {
		got := detectPatterns(Claim{DelayLength: tt.delay, DelayReason: "mechanical fault"})
		if tt.want == "" {
			assert.Empty(t, got, "delay %v should match no window", tt.delay)
		} else {
			assert.Equal(t, []string{tt.want}, got, "delay %v", tt.delay)
		}
	}
}

func TestDetectPatterns_WindowsAreExclusive(t *testing.T) {
	// A single claim can never carry both borderline tags.
	for _, delay := range []float64{2.8, 3.0, 3.2, 8.8, 9.0, 9.2} {
		got := detectPatterns(Claim{DelayLength: delay, DelayReason: "mechanical fault"})
		assert.Len(t, got, 1, "delay %v", delay)
	}
}

func TestDetectPatterns_SevereWeatherIsNotGrayArea(t *testing.T) {
	got := detectPatterns(Claim{DelayLength: 5.0, DelayReason: "severe weather"})
	assert.NotContains(t, got, PatternExtraordinaryGrayArea)
}

func TestAnalyzeConversationContext_UncertaintyOncePerConversation(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "I think the flight left around 9pm"},
		{Role: RoleAssistant, Content: "Thanks, checking the schedule."},
		{Role: RoleUser, Content: "Actually maybe it was 10pm, not sure"},
	}

	got := analyzeConversationContext(history)
	assert.Equal(t, []string{ContextPassengerUncertainty}, got)
}

func TestAnalyzeConversationContext_AssistantTurnsIgnored(t *testing.T) {
	history := []Turn{
		{Role: RoleAssistant, Content: "I think the delay reason may be unclear. This is urgent."},
	}
	assert.Empty(t, analyzeConversationContext(history))
}

func TestAnalyzeConversationContext_MultipleDelayMentions(t *testing.T) {
	// The tag requires more than one user turn mentioning both terms.
	single := []Turn{
		{Role: RoleUser, Content: "The delay reason was weather."},
	}
	assert.Empty(t, analyzeConversationContext(single))

	double := append(single, Turn{Role: RoleUser, Content: "Then they changed the delay reason to crew."})
	assert.Equal(t, []string{ContextMultipleDelayMentions}, analyzeConversationContext(double))
}

func TestAnalyzeConversationContext_FixedTagOrder(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "This is urgent, I need this asap"},
		{Role: RoleUser, Content: "The delay reason was weather, I think"},
		{Role: RoleUser, Content: "They gave a second delay reason later"},
	}

	got := analyzeConversationContext(history)
	want := []string{
		ContextPassengerUncertainty,
		ContextMultipleDelayMentions,
		ContextTimeSensitive,
	}
	assert.Equal(t, want, got)
}
