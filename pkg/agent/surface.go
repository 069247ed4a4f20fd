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

package agent

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/session"
)

// ConsoleSurface is a headless foreground: an interrupt or terminate signal
// is the user closing the session.
type ConsoleSurface struct {
	log     logger.Logger
	signals chan os.Signal
	closed  chan struct{}
	done    chan struct{}

	closeOnce sync.Once
	stopOnce  sync.Once
}

// ConsoleSurfaces returns a factory producing one ConsoleSurface per session.
func ConsoleSurfaces(log logger.Logger) session.SurfaceFactory {
	return func(ctx context.Context) (session.Surface, error) {
		return NewConsoleSurface(ctx, log), nil
	}
}

// NewConsoleSurface starts listening for SIGINT and SIGTERM.
func NewConsoleSurface(ctx context.Context, log logger.Logger) *ConsoleSurface {
	s := newConsoleSurface(log)
	signal.Notify(s.signals, os.Interrupt, syscall.SIGTERM)

	go s.watch(ctx)

	s.log.Info().Msg("Session running; press Ctrl+C to end it")

	return s
}

func newConsoleSurface(log logger.Logger) *ConsoleSurface {
	return &ConsoleSurface{
		log:     log,
		signals: make(chan os.Signal, 1),
		closed:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *ConsoleSurface) watch(ctx context.Context) {
	select {
	case sig := <-s.signals:
		s.log.Info().Str("signal", sig.String()).Msg("Session closed by user")
		s.closeOnce.Do(func() { close(s.closed) })
		s.stop()
	case <-ctx.Done():
		s.stop()
	case <-s.done:
	}
}

// Closed implements session.Surface.
func (s *ConsoleSurface) Closed() <-chan struct{} {
	return s.closed
}

// Terminate implements session.Surface.
func (s *ConsoleSurface) Terminate(reason string, env *models.Envelope) {
	ev := s.log.Warn().Str("reason", reason)
	if env != nil {
		ev = ev.Str("envelope_id", env.ID).Int("violation_count", env.ViolationCount)
	}

	ev.Msg("Session terminated")
	s.stop()
}

func (s *ConsoleSurface) stop() {
	s.stopOnce.Do(func() {
		signal.Stop(s.signals)
		close(s.done)
	})
}
