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

// Package report turns violation lists into sealed envelopes and hands them to
// the configured transports.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

var (
	// ErrEmptyReport is returned when sealing a report with no violations.
	ErrEmptyReport = errors.New("report: no violations to seal")
	// ErrEmitFailed wraps transport failures. The envelope itself was produced.
	ErrEmitFailed = errors.New("report: emit failed")
)

//go:generate mockgen -destination=mock_report.go -package=report github.com/carverauto/sentinel/pkg/report Sealer,Emitter

// Sealer encrypts a report body into a text-safe payload.
type Sealer interface {
	Seal(plaintext []byte) (string, error)
}

// Emitter delivers a sealed envelope to one destination.
type Emitter interface {
	Emit(ctx context.Context, env *models.Envelope) error
}

// NewReport builds a report with a fresh id. The violations slice is copied.
func NewReport(kind models.ReportKind, agentID string, violations []string, now time.Time) *models.ViolationReport {
	return &models.ViolationReport{
		ID:         uuid.New().String(),
		Kind:       kind,
		AgentID:    agentID,
		Violations: append([]string(nil), violations...),
		CreatedAt:  now.UTC(),
	}
}

// Reporter seals reports and fans envelopes out to its emitters.
type Reporter struct {
	sealer   Sealer
	emitters []Emitter
	agentID  string
	log      logger.Logger
	now      func() time.Time
}

// NewReporter constructs a Reporter. Emitters are called in order.
func NewReporter(sealer Sealer, agentID string, log logger.Logger, emitters ...Emitter) *Reporter {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Reporter{
		sealer:   sealer,
		emitters: emitters,
		agentID:  agentID,
		log:      log,
		now:      time.Now,
	}
}

// AgentID reports the identity stamped on every report.
func (r *Reporter) AgentID() string {
	return r.agentID
}

// Build creates a report of kind for violations.
func (r *Reporter) Build(kind models.ReportKind, violations []string) *models.ViolationReport {
	return NewReport(kind, r.agentID, violations, r.now())
}

// Seal encrypts rep. On failure no envelope is returned and the sealer's error
// is preserved in the chain.
func (r *Reporter) Seal(rep *models.ViolationReport) (*models.Envelope, error) {
	if rep == nil || len(rep.Violations) == 0 {
		return nil, ErrEmptyReport
	}

	payload, err := r.sealer.Seal([]byte(rep.Plaintext()))
	if err != nil {
		r.log.Error().Err(err).Str("report_id", rep.ID).Msg("Failed to seal violation report")
		return nil, fmt.Errorf("seal report %s: %w", rep.ID, err)
	}

	return &models.Envelope{
		ID:             uuid.New().String(),
		ReportID:       rep.ID,
		Kind:           rep.Kind,
		AgentID:        rep.AgentID,
		ViolationCount: len(rep.Violations),
		CreatedAt:      r.now().UTC(),
		Payload:        payload,
	}, nil
}

// Emit hands env to every emitter. A failing emitter does not stop the others;
// all failures are joined under ErrEmitFailed.
func (r *Reporter) Emit(ctx context.Context, env *models.Envelope) error {
	var errs []error

	for _, e := range r.emitters {
		if err := e.Emit(ctx, env); err != nil {
			r.log.Warn().Err(err).Str("envelope_id", env.ID).Msg("Failed to emit envelope")
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrEmitFailed, errors.Join(errs...))
	}

	return nil
}

// Report builds, seals and emits in one step. A sealing failure returns no
// envelope; an emit failure returns the envelope together with the error.
func (r *Reporter) Report(ctx context.Context, kind models.ReportKind, violations []string) (*models.Envelope, error) {
	env, err := r.Seal(r.Build(kind, violations))
	if err != nil {
		return nil, err
	}

	return env, r.Emit(ctx, env)
}
