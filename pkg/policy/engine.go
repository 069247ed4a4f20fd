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

// Package policy maps telemetry snapshots to human-readable violations.
//
// Every rule is a keyword set matched case-insensitively as a substring of one
// field. Each matching keyword appends its own violation, so a record that hits
// two keywords yields two findings. Evaluation is pure: it performs no I/O,
// keeps no state between calls and never mutates its input.
package policy

import (
	"fmt"
	"strings"

	"github.com/carverauto/sentinel/pkg/models"
)

// VirtualMachineViolation is reported when the host runs under a hypervisor.
const VirtualMachineViolation = "Virtual Machine Detected"

// Engine evaluates snapshots against an immutable rule set. It is safe for
// concurrent use.
type Engine struct {
	rules Rules
}

// NewEngine returns an engine for rules. A zero MaxDisplays means one display.
func NewEngine(rules Rules) *Engine {
	r := rules.normalized()
	if r.MaxDisplays <= 0 {
		r.MaxDisplays = 1
	}

	return &Engine{rules: r}
}

// Rules returns a copy of the normalized rule set in force.
func (e *Engine) Rules() Rules {
	r := e.rules
	r.Processes = append([]string(nil), r.Processes...)
	r.NetworkAdapters = append([]string(nil), r.NetworkAdapters...)
	r.HostsDomains = append([]string(nil), r.HostsDomains...)
	r.ActiveWindows = append([]string(nil), r.ActiveWindows...)
	r.Browsers = append([]string(nil), r.Browsers...)
	r.Extensions = append([]string(nil), r.Extensions...)

	return r
}

// matches returns every keyword contained in any of fields, in keyword order.
// A keyword found in more than one field is reported once.
func matches(keywords []string, fields ...string) []string {
	var hits []string

	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}

	for _, kw := range keywords {
		for _, f := range lowered {
			if strings.Contains(f, kw) {
				hits = append(hits, kw)
				break
			}
		}
	}

	return hits
}

// Evaluate runs every rule over the snapshot and returns all findings in
// detection order. A nil or empty snapshot yields no violations.
func (e *Engine) Evaluate(snap *models.Snapshot) []string {
	violations := []string{}

	if snap == nil {
		return violations
	}

	if snap.IsVirtualMachine {
		violations = append(violations, VirtualMachineViolation)
	}

	violations = append(violations, e.CheckProcesses(snap.Processes)...)

	for _, adapter := range snap.NetworkAdapters {
		for _, kw := range matches(e.rules.NetworkAdapters, adapter.Name, adapter.Description) {
			violations = append(violations, fmt.Sprintf("Suspicious Network Adapter detected: %s (%s) [matched %q]",
				adapter.Name, adapter.Description, kw))
		}
	}

	for _, entry := range snap.HostsEntries {
		for _, kw := range matches(e.rules.HostsDomains, entry.Domain) {
			violations = append(violations, fmt.Sprintf("Suspicious Hosts Entry: %s -> %s [matched %q]",
				entry.IP, entry.Domain, kw))
		}
	}

	for _, kw := range matches(e.rules.ActiveWindows, snap.ActiveWindow) {
		violations = append(violations, activeWindowViolation(snap.ActiveWindow, kw))
	}

	for _, browser := range snap.Browsers {
		for _, kw := range matches(e.rules.Browsers, browser.Name) {
			violations = append(violations, fmt.Sprintf("Suspicious Browser detected: %s [matched %q]", browser.Name, kw))
		}
	}

	for _, ext := range snap.Extensions {
		for _, kw := range matches(e.rules.Extensions, ext.Name) {
			violations = append(violations, fmt.Sprintf("Suspicious Extension detected: %s (%s) [matched %q]",
				ext.Name, ext.ID, kw))
		}
	}

	if n := len(snap.Displays); n > e.rules.MaxDisplays {
		violations = append(violations, fmt.Sprintf("Multiple Displays detected: %d monitors found", n))
	}

	return violations
}

// CheckActiveWindow reports the first forbidden keyword in title.
func (e *Engine) CheckActiveWindow(title string) (string, bool) {
	hits := matches(e.rules.ActiveWindows, title)
	if len(hits) == 0 {
		return "", false
	}

	return activeWindowViolation(title, hits[0]), true
}

// CheckProcesses returns one violation per forbidden keyword per process.
func (e *Engine) CheckProcesses(procs []models.Process) []string {
	violations := []string{}

	for _, p := range procs {
		for _, kw := range matches(e.rules.Processes, p.Name) {
			violations = append(violations, fmt.Sprintf("Forbidden Process detected: %s (PID: %d) [matched %q]",
				p.Name, p.PID, kw))
		}
	}

	return violations
}

func activeWindowViolation(title, keyword string) string {
	return fmt.Sprintf("Forbidden Active Window detected: %s [matched %q]", title, keyword)
}
