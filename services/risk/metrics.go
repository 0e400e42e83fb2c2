// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for risk assessment operations.
var meter = otel.Meter("tripfix.risk")

// Metrics for assessment operations. Recording is operational visibility
// only and is not part of the AssessRisk contract: assessments are never
// altered or blocked by metric state, and failures to register
// instruments are silently ignored.
var (
	assessmentsTotal    metric.Int64Counter
	handoffsTotal       metric.Int64Counter
	confidenceHistogram metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		assessmentsTotal, err = meter.Int64Counter(
			"risk_assessments_total",
			metric.WithDescription("Total risk assessments by risk level"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		handoffsTotal, err = meter.Int64Counter(
			"risk_handoffs_total",
			metric.WithDescription("Total assessments requiring human handoff, by priority"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		confidenceHistogram, err = meter.Float64Histogram(
			"risk_overall_confidence",
			metric.WithDescription("Distribution of overall confidence scores"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordAssessment records the outcome of one assessment.
func recordAssessment(a Assessment) {
	if initMetrics() != nil {
		return
	}

	ctx := context.Background()
	levelAttr := attribute.String("risk_level", string(a.Level))

	assessmentsTotal.Add(ctx, 1, metric.WithAttributes(levelAttr))
	confidenceHistogram.Record(ctx, a.OverallConfidence, metric.WithAttributes(levelAttr))

	if a.HandoffRequired {
		handoffsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("priority", a.HandoffPriority),
		))
	}
}
