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

// Package session runs the startup assessment, brings up the foreground
// surface and watches it with a background monitor until the user closes it
// or a violation interrupts it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/platform"
	"github.com/carverauto/sentinel/pkg/policy"
	"github.com/carverauto/sentinel/pkg/report"
)

// DefaultPollInterval is the monitor interval when none is configured.
const DefaultPollInterval = 5 * time.Second

// Config holds the coordinator's policy choices.
type Config struct {
	Mode         Mode
	PollInterval time.Duration
	// ClearClipboard empties the clipboard before a lockdown session starts.
	ClearClipboard bool
}

// Dependencies are the collaborators a Coordinator drives.
type Dependencies struct {
	Collector platform.Collector
	Engine    *policy.Engine
	Reporter  *report.Reporter
	Surfaces  SurfaceFactory
	Clock     Clock
	Clipboard func() error
	Logger    logger.Logger
}

// Assessment is the result of the startup pass.
type Assessment struct {
	Snapshot   *models.Snapshot
	Violations []string
	Envelope   *models.Envelope
}

// Outcome describes how a session ended.
type Outcome struct {
	State      State
	Assessment *Assessment
	// Event is set when the monitor interrupted the session.
	Event *Event
}

// Coordinator owns the session state machine.
type Coordinator struct {
	cfg   Config
	deps  Dependencies
	log   logger.Logger
	state atomic.Int32
}

// NewCoordinator validates deps and returns an idle coordinator.
func NewCoordinator(cfg Config, deps Dependencies) (*Coordinator, error) {
	var missing []string

	if deps.Collector == nil {
		missing = append(missing, "collector")
	}

	if deps.Engine == nil {
		missing = append(missing, "engine")
	}

	if deps.Reporter == nil {
		missing = append(missing, "reporter")
	}

	if deps.Surfaces == nil {
		missing = append(missing, "surfaces")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", errMissingDependency, strings.Join(missing, ", "))
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeAssessment
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if deps.Clock == nil {
		deps.Clock = NewClock()
	}

	if deps.Logger == nil {
		deps.Logger = logger.NewTestLogger()
	}

	return &Coordinator{cfg: cfg, deps: deps, log: deps.Logger}, nil
}

// State reports the current lifecycle state. Safe to call from any goroutine.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

func (c *Coordinator) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	c.log.Debug().Str("from", prev.String()).Str("to", s.String()).Msg("Session state changed")
}

// Assess runs the one-shot startup pass: collect, evaluate and, when
// violations are found, seal and emit a startup report. In lockdown mode a
// violation returns ErrSessionBlocked.
func (c *Coordinator) Assess(ctx context.Context) (*Assessment, error) {
	c.setState(StateCollecting)

	snap := c.collect(ctx)

	c.setState(StateEvaluating)

	a := &Assessment{Snapshot: snap, Violations: c.deps.Engine.Evaluate(snap)}

	if len(a.Violations) == 0 {
		c.setState(StateClear)
		c.log.Info().Msg("Startup assessment clear")

		return a, nil
	}

	c.setState(StateReporting)

	for _, v := range a.Violations {
		c.log.Warn().Str("violation", v).Msg("Startup violation detected")
	}

	env, err := c.deps.Reporter.Report(ctx, models.ReportKindStartup, a.Violations)
	if env == nil && err != nil {
		c.log.Error().Err(err).Int("violation_count", len(a.Violations)).Msg("Startup report could not be sealed")
		return a, fmt.Errorf("%w: %w", ErrReportSealing, err)
	}

	a.Envelope = env

	if c.cfg.Mode == ModeLockdown {
		c.setState(StateBlocked)
		return a, fmt.Errorf("%w: %d violation(s)", ErrSessionBlocked, len(a.Violations))
	}

	c.log.Warn().
		Int("violation_count", len(a.Violations)).
		Str("envelope_id", env.ID).
		Msg("Proceeding despite startup violations (assessment mode)")

	return a, nil
}

// Run performs the startup assessment, then creates the surface and blocks
// until the user closes it, the monitor interrupts it or ctx ends.
func (c *Coordinator) Run(ctx context.Context) (*Outcome, error) {
	a, err := c.Assess(ctx)
	if err != nil {
		return &Outcome{State: c.State(), Assessment: a}, err
	}

	if c.cfg.Mode == ModeLockdown && c.cfg.ClearClipboard && c.deps.Clipboard != nil {
		if err := c.deps.Clipboard(); err != nil {
			c.log.Warn().Err(err).Msg("Failed to clear clipboard")
		}
	}

	surface, err := c.deps.Surfaces(ctx)
	if err != nil {
		return &Outcome{State: c.State(), Assessment: a}, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	c.setState(StateRunning)

	monitorCtx, cancel := context.WithCancel(ctx)
	events := make(chan Event, 1)
	monitorDone := make(chan struct{})

	monitor := NewMonitor(c.deps.Collector, c.deps.Engine, c.deps.Reporter, c.deps.Clock, c.cfg.PollInterval, c.log)

	go func() {
		defer close(monitorDone)
		monitor.Run(monitorCtx, events)
	}()

	defer func() {
		cancel()
		<-monitorDone
	}()

	select {
	case ev := <-events:
		c.setState(StateInterrupted)
		surface.Terminate(strings.Join(ev.Violations, "; "), ev.Envelope)

		return &Outcome{State: StateInterrupted, Assessment: a, Event: &ev}, ev.Err
	case <-surface.Closed():
		c.setState(StateClosedByUser)
		c.log.Info().Msg("Session closed by user")

		return &Outcome{State: StateClosedByUser, Assessment: a}, nil
	case <-ctx.Done():
		c.setState(StateClosedByUser)
		surface.Terminate("session cancelled", nil)

		return &Outcome{State: StateClosedByUser, Assessment: a}, ctx.Err()
	}
}

// collect queries every facet concurrently. A failed facet is recorded in the
// snapshot and left empty; it never aborts the pass.
func (c *Coordinator) collect(ctx context.Context) *models.Snapshot {
	snap := &models.Snapshot{CollectedAt: c.deps.Clock.Now().UTC()}
	col := c.deps.Collector

	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	record := func(facet string, err error) {
		var ce *platform.CollectionError
		if errors.As(err, &ce) {
			facet = ce.Facet
		}

		c.log.Warn().Err(err).Str("facet", facet).Msg("Collection failed; continuing with empty result")

		mu.Lock()
		snap.Failures = append(snap.Failures, models.CollectionFailure{Facet: facet, Error: err.Error()})
		mu.Unlock()
	}

	g.Go(func() error {
		av, err := col.ListAntivirus(ctx)
		if err != nil {
			record(platform.FacetAntivirus, err)
		}

		snap.Antivirus = orEmpty(av, err)

		return nil
	})

	g.Go(func() error {
		browsers, err := col.ListBrowsers(ctx)
		if err != nil {
			record(platform.FacetBrowsers, err)
		}

		snap.Browsers = orEmpty(browsers, err)

		exts := []models.Extension{}

		for _, b := range snap.Browsers {
			found, err := col.ListExtensions(ctx, b)
			if err != nil {
				record(platform.FacetExtensions, fmt.Errorf("%s: %w", b.Name, err))
				continue
			}

			exts = append(exts, found...)
		}

		snap.Extensions = exts

		return nil
	})

	g.Go(func() error {
		displays, err := col.ListDisplays(ctx)
		if err != nil {
			record(platform.FacetDisplays, err)
		}

		snap.Displays = orEmpty(displays, err)

		return nil
	})

	g.Go(func() error {
		procs, err := col.ScanProcesses(ctx)
		if err != nil {
			record(platform.FacetProcesses, err)
		}

		snap.Processes = orEmpty(procs, err)

		return nil
	})

	g.Go(func() error {
		adapters, err := col.ListNetworkAdapters(ctx)
		if err != nil {
			record(platform.FacetNetworkAdapters, err)
		}

		snap.NetworkAdapters = orEmpty(adapters, err)

		return nil
	})

	g.Go(func() error {
		hosts, err := col.ParseHostsOverrides(ctx)
		if err != nil {
			record(platform.FacetHosts, err)
		}

		snap.HostsEntries = orEmpty(hosts, err)

		return nil
	})

	g.Go(func() error {
		title, err := col.ActiveWindowTitle(ctx)
		if err != nil {
			record(platform.FacetActiveWindow, err)
			title = ""
		}

		snap.ActiveWindow = title

		return nil
	})

	g.Go(func() error {
		vm, err := col.IsVirtualMachine(ctx)
		if err != nil {
			record(platform.FacetVirtualization, err)
			vm = false
		}

		snap.IsVirtualMachine = vm

		return nil
	})

	_ = g.Wait()

	sort.SliceStable(snap.Failures, func(i, j int) bool {
		return snap.Failures[i].Facet < snap.Failures[j].Facet
	})

	return snap
}

func orEmpty[T any](items []T, err error) []T {
	if err != nil || items == nil {
		return []T{}
	}

	return items
}
