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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

var errBadMode = errors.New("bad mode")

type testNATS struct {
	URL    string `json:"url"`
	Stream string `json:"stream"`
}

type testConfig struct {
	Mode      string          `json:"mode"`
	Interval  models.Duration `json:"poll_interval"`
	Timeout   time.Duration   `json:"timeout"`
	Keywords  []string        `json:"keywords"`
	Clipboard bool            `json:"clear_clipboard"`
	NATS      *testNATS       `json:"nats,omitempty"`
	Skipped   string          `json:"-"`

	normalized bool
}

func (c *testConfig) Normalize() error {
	if c.Mode == "" {
		c.Mode = "assessment"
	}

	c.normalized = true

	return nil
}

func (c *testConfig) Validate() error {
	if c.Mode != "assessment" && c.Mode != "lockdown" {
		return errBadMode
	}

	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sentinel.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidateFromFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeConfig(t, `{"poll_interval":"7s","keywords":["obs"]}`)

	var cfg testConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	assert.True(t, cfg.normalized)
	assert.Equal(t, "assessment", cfg.Mode)
	assert.Equal(t, models.Duration(7*time.Second), cfg.Interval)
	assert.Equal(t, []string{"obs"}, cfg.Keywords)
}

func TestLoadAndValidateRunsValidator(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	path := writeConfig(t, `{"mode":"kiosk"}`)

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errBadMode)
}

func TestLoadAndValidateRejectsNonPointer(t *testing.T) {
	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "unused", cfg)
	require.ErrorIs(t, err, errInvalidConfigPtr)
}

func TestLoadAndValidateUnknownSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), "unused", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "nope.json"), &cfg)
	require.Error(t, err)
}

func TestEnvConfigLoaderFields(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "")
	t.Setenv("SENTINEL_MODE", "lockdown")
	t.Setenv("SENTINEL_POLL_INTERVAL", "3s")
	t.Setenv("SENTINEL_TIMEOUT", "250ms")
	t.Setenv("SENTINEL_KEYWORDS", "obs, discord ,")
	t.Setenv("SENTINEL_CLEAR_CLIPBOARD", "true")
	t.Setenv("SENTINEL_NATS_URL", "nats://127.0.0.1:4222")

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "lockdown", cfg.Mode)
	assert.Equal(t, models.Duration(3*time.Second), cfg.Interval)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, []string{"obs", "discord"}, cfg.Keywords)
	assert.True(t, cfg.Clipboard)
	require.NotNil(t, cfg.NATS)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
}

func TestEnvConfigLoaderLeavesUnsetPointerNil(t *testing.T) {
	loader := NewEnvConfigLoader(logger.NewTestLogger(), "SENTINEL_TEST_NIL_")

	var cfg testConfig
	require.NoError(t, loader.Load(context.Background(), "", &cfg))
	assert.Nil(t, cfg.NATS)
}

func TestEnvConfigLoaderSkipsBadValues(t *testing.T) {
	t.Setenv("SENTINEL_BAD_CLEAR_CLIPBOARD", "perhaps")
	t.Setenv("SENTINEL_BAD_MODE", "lockdown")

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "SENTINEL_BAD_").Load(context.Background(), "", &cfg))

	assert.False(t, cfg.Clipboard)
	assert.Equal(t, "lockdown", cfg.Mode)
}

func TestEnvConfigLoaderJSONDocument(t *testing.T) {
	t.Setenv("SENTINEL_DOC_CONFIG_JSON", `{"mode":"lockdown","nats":{"stream":"violations"}}`)

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "SENTINEL_DOC_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "lockdown", cfg.Mode)
	require.NotNil(t, cfg.NATS)
	assert.Equal(t, "violations", cfg.NATS.Stream)
}

func TestEnvConfigLoaderRejectsNonStruct(t *testing.T) {
	loader := NewEnvConfigLoader(logger.NewTestLogger(), "SENTINEL_X_")

	var s string
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
	require.ErrorIs(t, loader.Load(context.Background(), "", nil), ErrDstMustBeNonNilPointer)
}

func TestFileConfigLoaderStrictDecoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "unknown key", body: `{"mode":"lockdown","keyword":["obs"]}`},
		{name: "trailing document", body: `{"mode":"lockdown"} {"mode":"assessment"}`, wantErr: errTrailingData},
		{name: "truncated", body: `{"mode":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg testConfig

			err := (&FileConfigLoader{}).Load(context.Background(), writeConfig(t, tt.body), &cfg)
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFileConfigLoaderEmptyPath(t *testing.T) {
	t.Parallel()

	var cfg testConfig

	err := (&FileConfigLoader{}).Load(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errEmptyConfigPath)
}
