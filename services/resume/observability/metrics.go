// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the resume
// workflow: submissions by section and outcome, deletions (including
// idempotent hits on already-gone records), session switches, and section
// resets. Metrics are exposed on /metrics.
//
// All operations are thread-safe via Prometheus's internal locking, and all
// record methods are nil-safe so library code can run without metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "roboresume"

const workflowSubsystem = "workflow"

// Metrics holds all Prometheus metrics for resume workflow operations.
type Metrics struct {
	// SubmitsTotal counts section submissions.
	// Labels: section (ed, workexp, skill, person),
	// outcome (persisted, cap_blocked, invalid)
	SubmitsTotal *prometheus.CounterVec

	// DeletesTotal counts delete requests.
	// Labels: section, outcome (deleted, already_gone)
	DeletesTotal *prometheus.CounterVec

	// SessionSwitchesTotal counts active-subject switches
	// (select-for-edit of personal details, summary navigation).
	SessionSwitchesTotal prometheus.Counter

	// SectionResetsTotal counts startover operations.
	SectionResetsTotal prometheus.Counter
}

// New creates and registers the workflow metrics with a registerer.
//
// Inputs:
//
//	reg - Target registerer. Pass prometheus.DefaultRegisterer in main;
//	tests pass a fresh prometheus.NewRegistry() to avoid duplicate
//	registration panics.
//
// Outputs:
//
//	*Metrics - The registered metrics instance.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: workflowSubsystem,
				Name:      "submits_total",
				Help:      "Section submissions by section and outcome",
			},
			[]string{"section", "outcome"},
		),
		DeletesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: workflowSubsystem,
				Name:      "deletes_total",
				Help:      "Delete requests by section and outcome",
			},
			[]string{"section", "outcome"},
		),
		SessionSwitchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: workflowSubsystem,
				Name:      "session_switches_total",
				Help:      "Active-subject switches across all sessions",
			},
		),
		SectionResetsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: workflowSubsystem,
				Name:      "section_resets_total",
				Help:      "Startover operations clearing all child sections",
			},
		),
	}
}

// RecordSubmit records one submission outcome for a section.
func (m *Metrics) RecordSubmit(section, outcome string) {
	if m == nil {
		return
	}
	m.SubmitsTotal.WithLabelValues(section, outcome).Inc()
}

// RecordDelete records one delete outcome for a section.
func (m *Metrics) RecordDelete(section, outcome string) {
	if m == nil {
		return
	}
	m.DeletesTotal.WithLabelValues(section, outcome).Inc()
}

// RecordSessionSwitch records an active-subject switch.
func (m *Metrics) RecordSessionSwitch() {
	if m == nil {
		return
	}
	m.SessionSwitchesTotal.Inc()
}

// RecordSectionReset records a startover operation.
func (m *Metrics) RecordSectionReset() {
	if m == nil {
		return
	}
	m.SectionResetsTotal.Inc()
}
