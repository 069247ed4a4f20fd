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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/session"
	"github.com/carverauto/sentinel/pkg/version"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome *session.Outcome
		err     error
		want    int
	}{
		{name: "clear and closed", outcome: &session.Outcome{State: session.StateClosedByUser}, want: exitOK},
		{name: "blocked", outcome: &session.Outcome{State: session.StateBlocked}, err: session.ErrSessionBlocked, want: exitBlocked},
		{name: "interrupted", outcome: &session.Outcome{State: session.StateInterrupted}, want: exitInterrupted},
		{
			name:    "interrupted without sealed report",
			outcome: &session.Outcome{State: session.StateInterrupted},
			err:     fmt.Errorf("monitor: %w", session.ErrReportSealing),
			want:    exitError,
		},
		{name: "cancelled", outcome: &session.Outcome{State: session.StateClosedByUser}, err: context.Canceled, want: exitOK},
		{name: "surface failure", err: errors.Join(session.ErrSurfaceUnavailable, os.ErrNotExist), want: exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, exitCode(tt.outcome, tt.err))
		})
	}
}

func TestRunPrintsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	code, err := run([]string{"-version"}, &out)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version.GetFullVersion()+"\n", out.String())
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	code, err := run([]string{"-bogus"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, exitError, code)
}

func TestRunRejectsBadMode(t *testing.T) {
	t.Parallel()

	code, err := run([]string{"-mode", "strict"}, &bytes.Buffer{})
	require.ErrorIs(t, err, session.ErrUnknownMode)
	assert.Equal(t, exitError, code)
}

func TestLoadConfigModeOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sentinel.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"agent_id":"lab-1","mode":"assessment","poll_interval":"10s"}`), 0o600))

	cfg, err := loadConfig(context.Background(), path, "lockdown")
	require.NoError(t, err)

	assert.Equal(t, "lab-1", cfg.AgentID)
	assert.Equal(t, "lockdown", cfg.Mode)
	assert.Equal(t, models.Duration(10*time.Second), cfg.PollInterval)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "")
	require.ErrorIs(t, err, os.ErrNotExist)
}
