// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the claims service.
//
// Metrics cover the HTTP surface of the service: request counts, error
// counts, and assessment outcome distributions. The risk engine records
// its own OpenTelemetry metrics independently of this package.
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "tripfix"

const claimsSubsystem = "claims"

// ClaimsMetrics holds all Prometheus metrics for the claims service.
// Initialize once at startup via InitMetrics().
type ClaimsMetrics struct {
	// RequestsTotal counts API requests by endpoint and status.
	// Labels: endpoint (assess, score, list, get), status (success, error)
	RequestsTotal *prometheus.CounterVec

	// AssessmentsTotal counts completed assessments by risk level.
	// Labels: risk_level (LOW, MEDIUM, HIGH, CRITICAL)
	AssessmentsTotal *prometheus.CounterVec

	// HandoffsTotal counts assessments that required human review.
	// Labels: priority
	HandoffsTotal *prometheus.CounterVec

	// ConfidenceScore observes the overall confidence distribution.
	ConfidenceScore prometheus.Histogram

	// ErrorsTotal counts errors by endpoint and error code.
	// Labels: endpoint, error_code (validation, storage, internal)
	ErrorsTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of ClaimsMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *ClaimsMetrics

// InitMetrics creates and registers all Prometheus metrics. Call once at
// application startup; calling twice panics on duplicate registration.
func InitMetrics() *ClaimsMetrics {
	DefaultMetrics = &ClaimsMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: claimsSubsystem,
				Name:      "requests_total",
				Help:      "Total API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		AssessmentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: claimsSubsystem,
				Name:      "assessments_total",
				Help:      "Completed risk assessments by risk level",
			},
			[]string{"risk_level"},
		),

		HandoffsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: claimsSubsystem,
				Name:      "handoffs_total",
				Help:      "Assessments flagged for human review by priority",
			},
			[]string{"priority"},
		),

		ConfidenceScore: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: claimsSubsystem,
				Name:      "confidence_score",
				Help:      "Distribution of overall confidence scores",
				Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.75, 0.8, 0.9, 1.0},
			},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: claimsSubsystem,
				Name:      "errors_total",
				Help:      "Total errors by endpoint and error code",
			},
			[]string{"endpoint", "error_code"},
		),
	}

	return DefaultMetrics
}

// ErrorCode represents a categorized error type for metrics.
type ErrorCode string

const (
	// ErrorCodeValidation indicates request validation failure.
	ErrorCodeValidation ErrorCode = "validation"

	// ErrorCodeStorage indicates a persistence failure.
	ErrorCodeStorage ErrorCode = "storage"

	// ErrorCodeNotFound indicates a lookup for a missing record.
	ErrorCodeNotFound ErrorCode = "not_found"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal ErrorCode = "internal"
)

// Endpoint represents an API endpoint for metrics labeling.
type Endpoint string

const (
	EndpointAssess Endpoint = "assess"
	EndpointScore  Endpoint = "score"
	EndpointList   Endpoint = "list"
	EndpointGet    Endpoint = "get"
)

// RecordRequest records a completed API request.
func (m *ClaimsMetrics) RecordRequest(endpoint Endpoint, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(string(endpoint), status).Inc()
}

// RecordError records an API error.
func (m *ClaimsMetrics) RecordError(endpoint Endpoint, code ErrorCode) {
	m.ErrorsTotal.WithLabelValues(string(endpoint), string(code)).Inc()
}

// RecordAssessment records an assessment outcome.
func (m *ClaimsMetrics) RecordAssessment(riskLevel string, confidence float64, handoff bool, priority string) {
	m.AssessmentsTotal.WithLabelValues(riskLevel).Inc()
	m.ConfidenceScore.Observe(confidence)
	if handoff {
		m.HandoffsTotal.WithLabelValues(priority).Inc()
	}
}
