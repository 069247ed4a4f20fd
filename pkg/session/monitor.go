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
	"context"
	"fmt"
	"time"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/policy"
	"github.com/carverauto/sentinel/pkg/report"
)

// Sampler is the part of platform.Collector the monitor polls.
type Sampler interface {
	ActiveWindowTitle(ctx context.Context) (string, error)
	ScanProcesses(ctx context.Context) ([]models.Process, error)
}

// Event is the single message the monitor sends to the event loop.
type Event struct {
	Violations []string
	Envelope   *models.Envelope
	// Err is set when the runtime report could not be sealed.
	Err error
}

// Monitor re-checks the foreground window and process list on every tick
// until the first violation, which it reports once before returning.
type Monitor struct {
	sampler  Sampler
	engine   *policy.Engine
	reporter *report.Reporter
	clock    Clock
	interval time.Duration
	log      logger.Logger
}

// NewMonitor creates a Monitor polling every interval.
func NewMonitor(sampler Sampler, engine *policy.Engine, reporter *report.Reporter, clock Clock, interval time.Duration, log logger.Logger) *Monitor {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if clock == nil {
		clock = NewClock()
	}

	return &Monitor{
		sampler:  sampler,
		engine:   engine,
		reporter: reporter,
		clock:    clock,
		interval: interval,
		log:      log,
	}
}

// Run polls until ctx is done or a violation is found. At most one event is
// sent; if the receiver is not ready it is dropped, since the session is
// already gone.
func (m *Monitor) Run(ctx context.Context, events chan<- Event) {
	ticker := m.clock.Ticker(m.interval)
	defer ticker.Stop()

	m.log.Info().Dur("interval", m.interval).Msg("Starting background monitor")

	for {
		select {
		case <-ctx.Done():
			m.log.Debug().Msg("Background monitor stopped")
			return
		case <-ticker.Chan():
			violations := m.check(ctx)
			if len(violations) == 0 {
				continue
			}

			ev := m.escalate(ctx, violations)

			select {
			case events <- ev:
			default:
				m.log.Warn().Msg("Event loop not receiving; dropping violation event")
			}

			return
		}
	}
}

// check runs the window check first; a window hit skips the process scan.
func (m *Monitor) check(ctx context.Context) []string {
	title, err := m.sampler.ActiveWindowTitle(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("Active window unavailable")
	}

	if violation, ok := m.engine.CheckActiveWindow(title); ok {
		return []string{violation}
	}

	procs, err := m.sampler.ScanProcesses(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("Process scan failed")
		return nil
	}

	return m.engine.CheckProcesses(procs)
}

func (m *Monitor) escalate(ctx context.Context, violations []string) Event {
	for _, v := range violations {
		m.log.Warn().Str("violation", v).Msg("Runtime violation detected")
	}

	env, err := m.reporter.Report(ctx, models.ReportKindRuntime, violations)
	if env == nil && err != nil {
		return Event{Violations: violations, Err: fmt.Errorf("%w: %w", ErrReportSealing, err)}
	}

	return Event{Violations: violations, Envelope: env}
}
