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

package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", in: `"5s"`, want: 5 * time.Second},
		{name: "compound", in: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", in: `2000000000`, want: 2 * time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d Duration

			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDurationMarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Duration(1500 * time.Millisecond))
	require.NoError(t, err)
	assert.JSONEq(t, `"1.5s"`, string(b))
}

func TestViolationReportPlaintextKeepsDetectionOrder(t *testing.T) {
	t.Parallel()

	r := &ViolationReport{Violations: []string{"Virtual Machine Detected", "Multiple Displays detected: 2 monitors found"}}
	assert.Equal(t, "Virtual Machine Detected\nMultiple Displays detected: 2 monitors found", r.Plaintext())

	assert.Empty(t, (&ViolationReport{}).Plaintext())
}

func TestViolationReportPlaintextSplitsOnSeparator(t *testing.T) {
	t.Parallel()

	violations := []string{
		`Forbidden Active Window detected: Inbox, Drafts - Google Chrome [matched "google"]`,
		`Forbidden Process detected: discord.exe (PID: 4120) [matched "discord"]`,
		`Forbidden Process detected: obs64.exe (PID: 5332) [matched "obs"]`,
	}

	r := &ViolationReport{Kind: ReportKindRuntime, Violations: violations}

	assert.Equal(t, violations, strings.Split(r.Plaintext(), PlaintextSeparator))
	assert.Len(t, strings.Split(r.Plaintext(), ", "), 2)
}
