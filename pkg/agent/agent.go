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

// Package agent wires the host collector, policy engine, encryption pipeline
// and emitters into a session coordinator.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/nats-io/nats.go"

	"github.com/carverauto/sentinel/pkg/crypto/envelope"
	"github.com/carverauto/sentinel/pkg/lifecycle"
	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/natsutil"
	"github.com/carverauto/sentinel/pkg/platform"
	"github.com/carverauto/sentinel/pkg/policy"
	"github.com/carverauto/sentinel/pkg/report"
	"github.com/carverauto/sentinel/pkg/session"
)

var errNilConfig = errors.New("agent config is required")

// connectNATS is swapped in tests.
var connectNATS = natsutil.Connect

// Option overrides one of the agent's collaborators.
type Option func(*options)

type options struct {
	collector platform.Collector
	surfaces  session.SurfaceFactory
	clock     session.Clock
	clipboard func() error
	emitters  []report.Emitter
}

// WithCollector replaces the operating system collector.
func WithCollector(c platform.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// WithSurfaces replaces the console surface.
func WithSurfaces(f session.SurfaceFactory) Option {
	return func(o *options) {
		o.surfaces = f
	}
}

// WithClock replaces the monitor clock.
func WithClock(c session.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithClipboard replaces the clipboard clearing function.
func WithClipboard(fn func() error) Option {
	return func(o *options) {
		o.clipboard = fn
	}
}

// WithEmitters adds emitters after the log emitter.
func WithEmitters(emitters ...report.Emitter) Option {
	return func(o *options) {
		o.emitters = append(o.emitters, emitters...)
	}
}

// Agent is one configured sentinel session.
type Agent struct {
	cfg         *Config
	log         logger.Logger
	coordinator *session.Coordinator
	receiver    *envelope.Opener
	conn        *nats.Conn
}

// New builds an agent from a normalized, validated config. When the config
// pins no receiver key a keypair is generated locally and Receiver returns
// the matching opener.
func New(ctx context.Context, cfg *Config, log logger.Logger, opts ...Option) (*Agent, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &Agent{cfg: cfg, log: log}

	collector := o.collector
	if collector == nil {
		c, err := platform.New(lifecycle.Sub(log, "platform"))
		if err != nil {
			return nil, fmt.Errorf("failed to create collector: %w", err)
		}

		collector = c
	}

	sealer, err := a.newSealer()
	if err != nil {
		return nil, err
	}

	emitters := []report.Emitter{report.NewLogEmitter(lifecycle.Sub(log, "report"))}

	if cfg.NATS != nil {
		pub, conn, err := connectNATS(ctx, *cfg.NATS, "sentinel/"+cfg.AgentID, lifecycle.Sub(log, "nats"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}

		a.conn = conn
		emitters = append(emitters, pub)
	}

	emitters = append(emitters, o.emitters...)

	clearClipboard := o.clipboard
	if clearClipboard == nil {
		clearClipboard = func() error { return clipboard.WriteAll("") }
	}

	surfaces := o.surfaces
	if surfaces == nil {
		surfaces = ConsoleSurfaces(lifecycle.Sub(log, "surface"))
	}

	coordinator, err := session.NewCoordinator(cfg.SessionConfig(), session.Dependencies{
		Collector: collector,
		Engine:    policy.NewEngine(policy.DefaultRules().Merge(cfg.Rules)),
		Reporter:  report.NewReporter(sealer, cfg.AgentID, lifecycle.Sub(log, "report"), emitters...),
		Surfaces:  surfaces,
		Clock:     o.clock,
		Clipboard: clearClipboard,
		Logger:    lifecycle.Sub(log, "session"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.coordinator = coordinator

	log.Info().
		Str("agent_id", cfg.AgentID).
		Str("mode", cfg.Mode).
		Str("collector", collector.Name()).
		Str("key_derivation", cfg.KeyDerivation).
		Bool("nats", cfg.NATS != nil).
		Msg("Agent initialized")

	return a, nil
}

func (a *Agent) newSealer() (*envelope.Sealer, error) {
	kd, err := envelope.ParseKeyDerivation(a.cfg.KeyDerivation)
	if err != nil {
		return nil, err
	}

	var ek envelope.Encapsulator

	if a.cfg.ReceiverPublicKey != "" {
		pinned, err := envelope.ParseEncapsulationKey(a.cfg.ReceiverPublicKey)
		if err != nil {
			return nil, fmt.Errorf("receiver_public_key: %w", err)
		}

		ek = pinned
	} else {
		dk, err := envelope.GenerateKeyPair()
		if err != nil {
			return nil, err
		}

		a.receiver, err = envelope.NewOpener(dk, envelope.WithKeyDerivation(kd))
		if err != nil {
			return nil, err
		}

		ek = dk.EncapsulationKey()

		a.log.Warn().
			Str("receiver_public_key", envelope.EncodeEncapsulationKey(dk.EncapsulationKey())).
			Msg("No receiver key configured; using a locally generated keypair")
	}

	return envelope.NewSealer(ek, envelope.WithKeyDerivation(kd))
}

// Coordinator exposes the session state machine.
func (a *Agent) Coordinator() *session.Coordinator {
	return a.coordinator
}

// Receiver returns the opener for the locally generated keypair, or nil when
// the receiver key is pinned by configuration.
func (a *Agent) Receiver() *envelope.Opener {
	return a.receiver
}

// Run executes one session.
func (a *Agent) Run(ctx context.Context) (*session.Outcome, error) {
	return a.coordinator.Run(ctx)
}

// Close drains the transport connection, if any.
func (a *Agent) Close() {
	if a.conn == nil {
		return
	}

	if err := a.conn.Drain(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to drain NATS connection")
	}

	a.conn = nil
}
