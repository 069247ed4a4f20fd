/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package models holds the telemetry and report types shared by the agent.
//
// The sealed plaintext of a report is its violation strings in detection
// order, joined by PlaintextSeparator (a single "\n") for startup and runtime
// reports alike. Violation strings can contain ", " (window titles often do),
// so receivers must split on the newline only.
package models

import (
	"strings"
	"time"
)

// ReportKind distinguishes the startup assessment from runtime interruptions.
type ReportKind string

const (
	ReportKindStartup ReportKind = "startup"
	ReportKindRuntime ReportKind = "runtime"
)

// ViolationReport is the ordered list of findings from one evaluation.
// Order is detection order, not severity.
type ViolationReport struct {
	ID         string     `json:"id"`
	Kind       ReportKind `json:"kind"`
	AgentID    string     `json:"agent_id"`
	Violations []string   `json:"violations"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PlaintextSeparator joins violations in the sealed report body.
const PlaintextSeparator = "\n"

// Plaintext renders the report body that gets sealed.
func (r *ViolationReport) Plaintext() string {
	return strings.Join(r.Violations, PlaintextSeparator)
}

// Envelope carries a sealed report. Payload is the only part produced by the
// encryption pipeline; everything else is routing metadata.
type Envelope struct {
	ID             string     `json:"id"`
	ReportID       string     `json:"report_id"`
	Kind           ReportKind `json:"kind"`
	AgentID        string     `json:"agent_id"`
	ViolationCount int        `json:"violation_count"`
	CreatedAt      time.Time  `json:"created_at"`
	Payload        string     `json:"payload"`
}
