// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripfix/tripfix/pkg/logging"
	"github.com/tripfix/tripfix/services/risk"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tripfix",
		Short: "A CLI for assessing flight delay compensation claims",
		Long: `TripFix assesses the risk and confidence of flight delay compensation
claims, either locally or against a running claims service.`,
	}

	assessCmd = &cobra.Command{
		Use:   "assess [case-file.yaml]",
		Short: "Run the full multi-factor risk assessment for a claim case file",
		Long: `Loads a claim case file (claim facts, jurisdiction verdict, eligibility
result, and optional conversation history) and runs the seven-factor risk
assessment. With --server, the case is sent to a running claims service
instead of being assessed in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: runAssessCommand,
	}

	scoreCmd = &cobra.Command{
		Use:   "score [case-file.yaml]",
		Short: "Run the legacy two-factor confidence scorer for a claim case file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScoreCommand,
	}

	jsonOutput bool
	serverURL  string

	logger = logging.New(logging.Config{Level: logging.LevelWarn, Service: "cli"})
)

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full assessment as JSON")
	assessCmd.Flags().StringVar(&serverURL, "server", "",
		"Base URL of a running claims service (e.g. http://localhost:12310); assesses in-process when empty")

	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the scores as JSON")
}

func runAssessCommand(cmd *cobra.Command, args []string) error {
	cf, err := LoadCaseFile(args[0])
	if err != nil {
		return err
	}

	var assessment risk.Assessment
	if serverURL != "" {
		assessment, err = assessRemote(cf)
		if err != nil {
			return err
		}
	} else {
		engine := risk.NewEngine()
		assessment = engine.AssessRisk(cf.Claim, cf.Jurisdiction,
			cf.JurisdictionReasoning, cf.Eligibility, cf.History)
	}

	if jsonOutput {
		return printJSON(assessment)
	}
	printAssessment(cmd.OutOrStdout(), assessment)
	return nil
}

func runScoreCommand(cmd *cobra.Command, args []string) error {
	cf, err := LoadCaseFile(args[0])
	if err != nil {
		return err
	}

	scorer := risk.NewScorer()
	jc, jcExplanation := scorer.ScoreJurisdictionConfidence(
		cf.Claim, cf.Jurisdiction, cf.JurisdictionReasoning)
	ec, ecExplanation := scorer.ScoreEligibilityConfidence(cf.Claim, cf.Eligibility.LegalCitations)
	handoff, reason := scorer.ShouldHandoffToHuman(jc, ec)

	if jsonOutput {
		return printJSON(map[string]any{
			"jurisdiction_confidence":  jc,
			"jurisdiction_explanation": jcExplanation,
			"eligibility_confidence":   ec,
			"eligibility_explanation":  ecExplanation,
			"should_handoff":           handoff,
			"handoff_reason":           reason,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Jurisdiction confidence: %.2f\n", jc)
	fmt.Fprintf(out, "  %s\n", jcExplanation)
	fmt.Fprintf(out, "Eligibility confidence:  %.2f\n", ec)
	fmt.Fprintf(out, "  %s\n", ecExplanation)
	fmt.Fprintf(out, "Handoff: %v (%s)\n", handoff, reason)
	return nil
}

// assessRemote sends the case to a running claims service.
func assessRemote(cf CaseFile) (risk.Assessment, error) {
	body, err := json.Marshal(map[string]any{
		"claim":                  cf.Claim,
		"jurisdiction":           cf.Jurisdiction,
		"jurisdiction_reasoning": cf.JurisdictionReasoning,
		"eligibility":            cf.Eligibility,
		"conversation_history":   cf.History,
	})
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("encode assess request: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	url := strings.TrimSuffix(serverURL, "/") + "/v1/assess"
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("post to claims service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("read claims service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("claims service rejected the case",
			"status", resp.StatusCode, "body", string(raw))
		return risk.Assessment{}, fmt.Errorf("claims service returned %d", resp.StatusCode)
	}

	var parsed struct {
		Assessment risk.Assessment `json:"assessment"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return risk.Assessment{}, fmt.Errorf("decode claims service response: %w", err)
	}
	return parsed.Assessment, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printAssessment renders a human-readable assessment summary.
func printAssessment(out io.Writer, a risk.Assessment) {
	fmt.Fprintf(out, "Risk level:  %s\n", a.Level)
	fmt.Fprintf(out, "Confidence:  %.2f\n", a.OverallConfidence)
	fmt.Fprintf(out, "Handoff:     %v (%s)\n", a.HandoffRequired, a.HandoffPriority)
	fmt.Fprintf(out, "\nFactors:\n")
	for _, f := range a.Factors {
		fmt.Fprintf(out, "  %-24s %.2f (weight %.2f)  %s\n", f.Name, f.Score, f.Weight, f.Reasoning)
	}
	if len(a.PatternsDetected) > 0 {
		fmt.Fprintf(out, "\nPatterns:\n")
		for _, p := range a.PatternsDetected {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}
	if len(a.ContextualFactors) > 0 {
		fmt.Fprintf(out, "\nContextual factors:\n")
		for _, cfactor := range a.ContextualFactors {
			fmt.Fprintf(out, "  - %s\n", cfactor)
		}
	}
	fmt.Fprintf(out, "\n%s\n", a.Reasoning)
}
