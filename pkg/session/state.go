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

package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionBlocked is returned in lockdown mode when the startup
	// assessment finds violations.
	ErrSessionBlocked = errors.New("session blocked by startup assessment")
	// ErrReportSealing marks a violation report that could not be encrypted.
	// The violation is not dropped silently; the session stops with this error.
	ErrReportSealing = errors.New("violation report could not be sealed")
	// ErrSurfaceUnavailable wraps failures constructing the foreground surface.
	ErrSurfaceUnavailable = errors.New("foreground surface unavailable")
	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown session mode")

	errMissingDependency = errors.New("missing coordinator dependency")
)

// Mode decides what a startup violation does to the session.
type Mode string

const (
	// ModeAssessment records startup violations and lets the session proceed.
	ModeAssessment Mode = "assessment"
	// ModeLockdown refuses to start the session when violations are found.
	ModeLockdown Mode = "lockdown"
)

// ParseMode maps a configuration value to a Mode. Empty selects ModeAssessment.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAssessment:
		return ModeAssessment, nil
	case ModeLockdown:
		return ModeLockdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// State is a step of the session lifecycle.
type State int32

const (
	StateIdle State = iota
	StateCollecting
	StateEvaluating
	StateClear
	StateReporting
	StateBlocked
	StateRunning
	StateInterrupted
	StateClosedByUser
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateEvaluating:
		return "evaluating"
	case StateClear:
		return "clear"
	case StateReporting:
		return "reporting"
	case StateBlocked:
		return "blocked"
	case StateRunning:
		return "running"
	case StateInterrupted:
		return "interrupted"
	case StateClosedByUser:
		return "closed_by_user"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
