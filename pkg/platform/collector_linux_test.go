//go:build linux

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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

func newTestLinuxCollector(t *testing.T) *LinuxCollector {
	t.Helper()

	root := t.TempDir()

	return &LinuxCollector{
		base:    newBase(logger.NewTestLogger(), &options{homeDir: root, hostsPath: filepath.Join(root, "hosts")}),
		drmPath: filepath.Join(root, "drm"),
		netPath: filepath.Join(root, "net"),
		dmiPath: filepath.Join(root, "dmi"),
	}
}

func TestLinuxListDisplays(t *testing.T) {
	t.Parallel()

	c := newTestLinuxCollector(t)
	writeFixture(t, filepath.Join(c.drmPath, "card0-eDP-1", "status"), "connected\n")
	writeFixture(t, filepath.Join(c.drmPath, "card0-HDMI-A-1", "status"), "disconnected\n")
	writeFixture(t, filepath.Join(c.drmPath, "card1-DP-2", "status"), "connected\n")
	writeFixture(t, filepath.Join(c.drmPath, "card0", "dev"), "226:0\n")

	displays, err := c.ListDisplays(t.Context())
	require.NoError(t, err)

	assert.Equal(t, []models.Display{
		{Name: "eDP-1", DeviceID: "card0-eDP-1", Primary: true},
		{Name: "DP-2", DeviceID: "card1-DP-2"},
	}, displays)
}

func TestLinuxDescribeInterface(t *testing.T) {
	t.Parallel()

	c := newTestLinuxCollector(t)
	writeFixture(t, filepath.Join(c.netPath, "wg0", "uevent"), "DEVTYPE=wireguard\nINTERFACE=wg0\nIFINDEX=5\n")
	writeFixture(t, filepath.Join(c.netPath, "tun0", "tun_flags"), "0x1001\n")
	writeFixture(t, filepath.Join(c.netPath, "eth0", "uevent"), "INTERFACE=eth0\nIFINDEX=2\n")

	assert.Equal(t, "wireguard", c.describeInterface("wg0"))
	assert.Equal(t, "tun", c.describeInterface("tun0"))
	assert.Empty(t, c.describeInterface("eth0"))
	assert.Empty(t, c.describeInterface("missing"))
}

func TestLinuxIsVirtualMachine(t *testing.T) {
	t.Parallel()

	c := newTestLinuxCollector(t)
	c.virtualization = func(context.Context) (string, string, error) { return "", "", nil }

	writeFixture(t, filepath.Join(c.dmiPath, "sys_vendor"), "LENOVO\n")
	writeFixture(t, filepath.Join(c.dmiPath, "product_name"), "ThinkPad X1 Carbon\n")

	vm, err := c.IsVirtualMachine(t.Context())
	require.NoError(t, err)
	assert.False(t, vm)

	writeFixture(t, filepath.Join(c.dmiPath, "sys_vendor"), "QEMU\n")

	vm, err = c.IsVirtualMachine(t.Context())
	require.NoError(t, err)
	assert.True(t, vm)
}

func TestLinuxIsVirtualMachineFallsBackToRole(t *testing.T) {
	t.Parallel()

	c := newTestLinuxCollector(t)
	c.virtualization = func(context.Context) (string, string, error) { return "docker", "guest", nil }

	vm, err := c.IsVirtualMachine(t.Context())
	require.NoError(t, err)
	assert.True(t, vm)

	c.virtualization = func(context.Context) (string, string, error) { return "", "", errTestVirt }

	_, err = c.IsVirtualMachine(t.Context())

	var ce *CollectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FacetVirtualization, ce.Facet)
}

func TestLinuxActiveWindowTitle(t *testing.T) {
	c := newTestLinuxCollector(t)
	c.lookPath = func(string) (string, error) { return "/usr/bin/xdotool", nil }
	c.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "xdotool", name)
		assert.Equal(t, []string{"getactivewindow", "getwindowname"}, args)

		return []byte("ChatGPT - Mozilla Firefox\n"), nil
	}

	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")

	title, err := c.ActiveWindowTitle(t.Context())
	require.NoError(t, err)
	assert.Empty(t, title)

	t.Setenv("DISPLAY", ":0")

	title, err = c.ActiveWindowTitle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ChatGPT - Mozilla Firefox", title)

	c.lookPath = func(string) (string, error) { return "", errTestNotFound }

	_, err = c.ActiveWindowTitle(t.Context())
	require.ErrorIs(t, err, errNoForegroundTool)
}

func TestNewReturnsNamedCollector(t *testing.T) {
	t.Parallel()

	collector, err := New(logger.NewTestLogger(), WithHomeDir(t.TempDir()), WithHostsPath(os.DevNull))
	require.NoError(t, err)
	assert.Equal(t, "linux", collector.Name())
}
