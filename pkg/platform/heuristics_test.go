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

package platform

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/sentinel/pkg/models"
)

var (
	errTestProcesses = errors.New("procfs unreadable")
	errTestVirt      = errors.New("cpuinfo unreadable")
)

func TestMatchesHypervisor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		manufacturer string
		model        string
		want         bool
	}{
		{"VMware, Inc.", "VMware Virtual Platform", true},
		{"innotek GmbH", "VirtualBox", true},
		{"QEMU", "Standard PC (Q35 + ICH9, 2009)", true},
		{"Microsoft Corporation", "Virtual Machine", true},
		{"Microsoft Corporation", "Surface Laptop 5", false},
		{"Xen", "HVM domU", true},
		{"Dell Inc.", "XPS 13 9310", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.manufacturer, tt.model), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchesHypervisor(tt.manufacturer, tt.model))
		})
	}
}

func TestAntivirusFromProcesses(t *testing.T) {
	t.Parallel()

	products := antivirusFromProcesses([]models.Process{
		{PID: 10, Name: "clamd"},
		{PID: 11, Name: "freshclam"},
		{PID: 12, Name: "bash"},
		{PID: 13, Name: "falcon-sensor"},
	})

	assert.Equal(t, []models.AntivirusProduct{
		{Name: "ClamAV", Enabled: true},
		{Name: "CrowdStrike Falcon", Enabled: true},
	}, products)
}

func TestBaseRunningAntivirusError(t *testing.T) {
	t.Parallel()

	b := &base{
		listProcesses: func(context.Context) ([]models.Process, error) { return nil, errTestProcesses },
	}

	_, err := b.runningAntivirus(t.Context())
	require.ErrorIs(t, err, errTestProcesses)

	var ce *CollectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FacetAntivirus, ce.Facet)
}

func TestBaseScanProcesses(t *testing.T) {
	t.Parallel()

	want := []models.Process{{PID: 1, Name: "init"}, {PID: 42, Name: "wireshark"}}
	b := &base{
		listProcesses: func(context.Context) ([]models.Process, error) { return want, nil },
	}

	got, err := b.ScanProcesses(t.Context())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	b.listProcesses = func(context.Context) ([]models.Process, error) { return nil, errTestProcesses }

	_, err = b.ScanProcesses(t.Context())

	var ce *CollectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FacetProcesses, ce.Facet)
}

func TestBaseGuest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		system string
		role   string
		err    error
		want   bool
	}{
		{name: "kvm guest", system: "kvm", role: "guest", want: true},
		{name: "kvm host", system: "kvm", role: "host", want: false},
		{name: "bare metal", want: false},
		{name: "error", err: errTestVirt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := &base{
				virtualization: func(context.Context) (string, string, error) {
					return tt.system, tt.role, tt.err
				},
			}

			got, err := b.guest(t.Context())
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
