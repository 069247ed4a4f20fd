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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/sentinel/pkg/config"
	"github.com/carverauto/sentinel/pkg/crypto/envelope"
	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/natsutil"
	"github.com/carverauto/sentinel/pkg/policy"
	"github.com/carverauto/sentinel/pkg/session"
)

func TestConfigNormalizeDefaults(t *testing.T) {
	orig := hostname
	hostname = func() (string, error) { return "exam-pc-07", nil }

	t.Cleanup(func() { hostname = orig })

	cfg := &Config{NATS: &natsutil.Config{URL: "nats://localhost:4222"}}
	require.NoError(t, cfg.Normalize())

	assert.Equal(t, "exam-pc-07", cfg.AgentID)
	assert.Equal(t, string(session.ModeAssessment), cfg.Mode)
	assert.Equal(t, string(envelope.KeyDerivationDirect), cfg.KeyDerivation)
	assert.Equal(t, models.Duration(5*time.Second), cfg.PollInterval)
	assert.Equal(t, natsutil.DefaultStream, cfg.NATS.Stream)
	assert.Equal(t, natsutil.DefaultSubject, cfg.NATS.Subject)
	require.NotNil(t, cfg.Logging)
}

func TestConfigNormalizeHostnameFailure(t *testing.T) {
	orig := hostname
	hostname = func() (string, error) { return "", os.ErrNotExist }

	t.Cleanup(func() { hostname = orig })

	cfg := &Config{}
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, defaultAgentID, cfg.AgentID)
}

func TestConfigNormalizeClampsPollInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "unset", in: 0, want: 5 * time.Second},
		{name: "too fast", in: 10 * time.Millisecond, want: time.Second},
		{name: "negative", in: -time.Second, want: time.Second},
		{name: "in range", in: 30 * time.Second, want: 30 * time.Second},
		{name: "too slow", in: time.Hour, want: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{AgentID: "a", PollInterval: models.Duration(tt.in)}
			require.NoError(t, cfg.Normalize())
			assert.Equal(t, models.Duration(tt.want), cfg.PollInterval)
		})
	}
}

func TestConfigNormalizeCanonicalizesMode(t *testing.T) {
	t.Parallel()

	cfg := &Config{AgentID: "a", Mode: " LockDown "}
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "lockdown", cfg.Mode)
	assert.Equal(t, session.ModeLockdown, cfg.SessionConfig().Mode)
}

func TestConfigNormalizeRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	err := (&Config{AgentID: "a", Mode: "proctored"}).Normalize()
	require.ErrorIs(t, err, session.ErrUnknownMode)

	err = (&Config{AgentID: "a", KeyDerivation: "pbkdf2"}).Normalize()
	require.ErrorIs(t, err, envelope.ErrUnknownKeyDerivation)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	dk, err := envelope.GenerateKeyPair()
	require.NoError(t, err)

	pinned := envelope.EncodeEncapsulationKey(dk.EncapsulationKey())

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "minimal", cfg: Config{}},
		{name: "pinned key", cfg: Config{ReceiverPublicKey: pinned}},
		{name: "malformed key", cfg: Config{ReceiverPublicKey: "bm90IGEga2V5"}, wantErr: true},
		{name: "negative max displays", cfg: Config{Rules: &policy.Rules{MaxDisplays: -1}}, wantErr: true},
		{name: "nats without url", cfg: Config{NATS: &natsutil.Config{}}, wantErr: true},
		{name: "unknown mode", cfg: Config{Mode: "strict"}, wantErr: true},
		{name: "unknown derivation", cfg: Config{KeyDerivation: "scrypt"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestConfigValidateWrapsKeyError(t *testing.T) {
	t.Parallel()

	err := (&Config{ReceiverPublicKey: "bm90IGEga2V5"}).Validate()
	require.ErrorIs(t, err, envelope.ErrInvalidKey)
	assert.Contains(t, err.Error(), "receiver_public_key")
}

func TestConfigLoadsFromJSONFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sentinel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"agent_id": "lab-3",
		"mode": "lockdown",
		"poll_interval": "2s",
		"key_derivation": "hkdf-sha256",
		"clear_clipboard": true,
		"rules": {"processes": ["obs"], "max_displays": 2},
		"nats": {"url": "nats://nats:4222"}
	}`), 0o600))

	var cfg Config
	require.NoError(t, config.NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "lab-3", cfg.AgentID)
	assert.Equal(t, models.Duration(2*time.Second), cfg.PollInterval)
	assert.Equal(t, "hkdf-sha256", cfg.KeyDerivation)
	assert.Equal(t, natsutil.DefaultSubject, cfg.NATS.Subject)

	sc := cfg.SessionConfig()
	assert.Equal(t, session.ModeLockdown, sc.Mode)
	assert.Equal(t, 2*time.Second, sc.PollInterval)
	assert.True(t, sc.ClearClipboard)

	rules := policy.DefaultRules().Merge(cfg.Rules)
	assert.Equal(t, []string{"obs"}, rules.Processes)
	assert.Equal(t, 2, rules.MaxDisplays)
}
