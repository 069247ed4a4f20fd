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
	"errors"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/sentinel/pkg/crypto/envelope"
	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/natsutil"
	"github.com/carverauto/sentinel/pkg/platform"
	"github.com/carverauto/sentinel/pkg/policy"
	"github.com/carverauto/sentinel/pkg/session"
)

var errTestDial = errors.New("dial tcp: connection refused")

type recordingEmitter struct {
	mu   sync.Mutex
	envs []*models.Envelope
}

func (r *recordingEmitter) Emit(_ context.Context, env *models.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.envs = append(r.envs, env)

	return nil
}

func (r *recordingEmitter) envelopes() []*models.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*models.Envelope(nil), r.envs...)
}

type closedSurface struct {
	closed chan struct{}
}

func newClosedSurface() *closedSurface {
	s := &closedSurface{closed: make(chan struct{})}
	close(s.closed)

	return s
}

func (s *closedSurface) Closed() <-chan struct{}          { return s.closed }
func (*closedSurface) Terminate(string, *models.Envelope) {}

func closedSurfaces(created *int) session.SurfaceFactory {
	return func(context.Context) (session.Surface, error) {
		*created++
		return newClosedSurface(), nil
	}
}

// hostCollector answers every facet with a clean host plus the given
// processes and VM flag.
func hostCollector(t *testing.T, vm bool, procs ...models.Process) *platform.MockCollector {
	t.Helper()

	c := platform.NewMockCollector(gomock.NewController(t))
	e := c.EXPECT()

	e.Name().Return("mock").AnyTimes()
	e.ListAntivirus(gomock.Any()).Return(nil, nil).AnyTimes()
	e.ListBrowsers(gomock.Any()).Return(nil, nil).AnyTimes()
	e.ListExtensions(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	e.ListDisplays(gomock.Any()).Return([]models.Display{{DeviceID: "DP-1", Primary: true}}, nil).AnyTimes()
	e.ListNetworkAdapters(gomock.Any()).Return(nil, nil).AnyTimes()
	e.ParseHostsOverrides(gomock.Any()).Return(nil, nil).AnyTimes()
	e.ActiveWindowTitle(gomock.Any()).Return("Terminal", nil).AnyTimes()
	e.IsVirtualMachine(gomock.Any()).Return(vm, nil).AnyTimes()
	e.ScanProcesses(gomock.Any()).Return(procs, nil).AnyTimes()

	return c
}

func normalizedConfig(t *testing.T, cfg *Config) *Config {
	t.Helper()

	if cfg.AgentID == "" {
		cfg.AgentID = "agent-test"
	}

	require.NoError(t, cfg.Normalize())
	require.NoError(t, cfg.Validate())

	return cfg
}

func TestNewRequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil, logger.NewTestLogger())
	require.ErrorIs(t, err, errNilConfig)
}

func TestAgentSelfSimulatedReceiverOpensStartupReport(t *testing.T) {
	t.Parallel()

	rec := &recordingEmitter{}
	created := 0

	a, err := New(context.Background(), normalizedConfig(t, &Config{}), logger.NewTestLogger(),
		WithCollector(hostCollector(t, true)),
		WithSurfaces(closedSurfaces(&created)),
		WithEmitters(rec),
	)
	require.NoError(t, err)
	require.NotNil(t, a.Receiver())

	out, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.StateClosedByUser, out.State)
	assert.Equal(t, 1, created)

	envs := rec.envelopes()
	require.Len(t, envs, 1)
	assert.Equal(t, models.ReportKindStartup, envs[0].Kind)
	assert.Equal(t, "agent-test", envs[0].AgentID)

	plaintext, err := a.Receiver().Open(envs[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, policy.VirtualMachineViolation, string(plaintext))
}

func TestAgentPinnedKeyLockdownBlocks(t *testing.T) {
	t.Parallel()

	dk, err := envelope.GenerateKeyPair()
	require.NoError(t, err)

	cfg := normalizedConfig(t, &Config{
		Mode:              "lockdown",
		ReceiverPublicKey: envelope.EncodeEncapsulationKey(dk.EncapsulationKey()),
		KeyDerivation:     string(envelope.KeyDerivationHKDFSHA256),
		ClearClipboard:    true,
		Rules:             &policy.Rules{Processes: []string{"notepad"}},
	})

	rec := &recordingEmitter{}
	created := 0
	cleared := 0

	a, err := New(context.Background(), cfg, logger.NewTestLogger(),
		WithCollector(hostCollector(t, false,
			models.Process{PID: 42, Name: "notepad.exe"},
			models.Process{PID: 43, Name: "discord.exe"},
		)),
		WithSurfaces(closedSurfaces(&created)),
		WithClipboard(func() error { cleared++; return nil }),
		WithEmitters(rec),
	)
	require.NoError(t, err)
	assert.Nil(t, a.Receiver())

	out, err := a.Run(context.Background())
	require.ErrorIs(t, err, session.ErrSessionBlocked)
	assert.Equal(t, session.StateBlocked, out.State)
	assert.Zero(t, created)
	assert.Zero(t, cleared)

	envs := rec.envelopes()
	require.Len(t, envs, 1)

	opener, err := envelope.NewOpener(dk, envelope.WithKeyDerivation(envelope.KeyDerivationHKDFSHA256))
	require.NoError(t, err)

	plaintext, err := opener.Open(envs[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, `Forbidden Process detected: notepad.exe (PID: 42) [matched "notepad"]`, string(plaintext))
}

func TestAgentLockdownClearsClipboard(t *testing.T) {
	t.Parallel()

	cleared := 0
	created := 0

	a, err := New(context.Background(), normalizedConfig(t, &Config{Mode: "lockdown", ClearClipboard: true}),
		logger.NewTestLogger(),
		WithCollector(hostCollector(t, false)),
		WithSurfaces(closedSurfaces(&created)),
		WithClipboard(func() error { cleared++; return nil }),
	)
	require.NoError(t, err)

	out, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.StateClosedByUser, out.State)
	assert.Empty(t, out.Assessment.Violations)
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 1, created)
}

type fakeJetStream struct {
	mu       sync.Mutex
	subjects []string
}

func (f *fakeJetStream) Publish(_ context.Context, subject string, _ []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subjects = append(f.subjects, subject)

	return &jetstream.PubAck{Stream: natsutil.DefaultStream, Sequence: uint64(len(f.subjects))}, nil
}

// The NATS tests swap connectNATS and must not run in parallel.

func TestAgentPublishesToNATS(t *testing.T) {
	js := &fakeJetStream{}

	var gotSource string

	orig := connectNATS
	connectNATS = func(_ context.Context, cfg natsutil.Config, source string, log logger.Logger, _ ...nats.Option) (*natsutil.EnvelopePublisher, *nats.Conn, error) {
		gotSource = source
		return natsutil.NewEnvelopePublisher(js, cfg.Stream, cfg.Subject, source, log), nil, nil
	}

	t.Cleanup(func() { connectNATS = orig })

	cfg := normalizedConfig(t, &Config{NATS: &natsutil.Config{URL: "nats://127.0.0.1:4222"}})
	created := 0

	a, err := New(context.Background(), cfg, logger.NewTestLogger(),
		WithCollector(hostCollector(t, true)),
		WithSurfaces(closedSurfaces(&created)),
	)
	require.NoError(t, err)

	defer a.Close()

	_, err = a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sentinel/agent-test", gotSource)
	assert.Equal(t, []string{natsutil.DefaultSubject}, js.subjects)
}

func TestAgentNATSConnectFailure(t *testing.T) {
	orig := connectNATS
	connectNATS = func(context.Context, natsutil.Config, string, logger.Logger, ...nats.Option) (*natsutil.EnvelopePublisher, *nats.Conn, error) {
		return nil, nil, errTestDial
	}

	t.Cleanup(func() { connectNATS = orig })

	cfg := normalizedConfig(t, &Config{NATS: &natsutil.Config{URL: "nats://127.0.0.1:4222"}})

	_, err := New(context.Background(), cfg, logger.NewTestLogger(), WithCollector(hostCollector(t, false)))
	require.ErrorIs(t, err, errTestDial)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}
