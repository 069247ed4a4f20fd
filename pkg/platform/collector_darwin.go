//go:build darwin

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
	"bytes"
	"context"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

var darwinBrowsers = []browserLayout{
	{
		Name:     "Google Chrome",
		Binaries: []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"},
		DataDirs: []string{"Library/Application Support/Google/Chrome"},
	},
	{
		Name:     "Chromium",
		Binaries: []string{"/Applications/Chromium.app/Contents/MacOS/Chromium"},
		DataDirs: []string{"Library/Application Support/Chromium"},
	},
	{
		Name:     "Microsoft Edge",
		Binaries: []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"},
		DataDirs: []string{"Library/Application Support/Microsoft Edge"},
	},
	{
		Name:     "Brave",
		Binaries: []string{"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser"},
		DataDirs: []string{"Library/Application Support/BraveSoftware/Brave-Browser"},
	},
	{
		Name:     "Arc",
		Binaries: []string{"/Applications/Arc.app/Contents/MacOS/Arc"},
		DataDirs: []string{"Library/Application Support/Arc/User Data"},
	},
	{
		Name:     "Comet",
		Binaries: []string{"/Applications/Comet.app/Contents/MacOS/Comet"},
		DataDirs: []string{"Library/Application Support/Comet"},
	},
	{
		Name:     "Mozilla Firefox",
		Binaries: []string{"/Applications/Firefox.app/Contents/MacOS/firefox"},
		DataDirs: []string{"Library/Application Support/Firefox"},
	},
	{
		Name:     "Tor Browser",
		Binaries: []string{"/Applications/Tor Browser.app/Contents/MacOS/firefox"},
		DataDirs: []string{"Library/Application Support/TorBrowser-Data/Browser"},
	},
	{
		Name:     "Safari",
		Binaries: []string{"/Applications/Safari.app/Contents/MacOS/Safari"},
	},
}

const (
	frontWindowScript = `tell application "System Events" to tell (first application process whose frontmost is true) ` +
		`to get name of front window`
	frontAppScript = `tell application "System Events" to get name of first application process whose frontmost is true`
)

// DarwinCollector gathers telemetry from system_profiler, AppleScript and
// sysctl.
type DarwinCollector struct {
	base
	sysctl func(name string) (uint32, error)
}

func newPlatformCollector(log logger.Logger, o *options) (Collector, error) {
	return &DarwinCollector{
		base:   newBase(log, o),
		sysctl: unix.SysctlUint32,
	}, nil
}

func defaultHostsPath() string {
	return "/etc/hosts"
}

func (*DarwinCollector) Name() string {
	return "darwin"
}

func (c *DarwinCollector) ListAntivirus(ctx context.Context) ([]models.AntivirusProduct, error) {
	return c.runningAntivirus(ctx)
}

func (c *DarwinCollector) ListBrowsers(_ context.Context) ([]models.Browser, error) {
	return discoverBrowsers(darwinBrowsers, c.homeDir, c.lookPath), nil
}

func (c *DarwinCollector) ListDisplays(ctx context.Context) ([]models.Display, error) {
	out, err := c.run(ctx, "system_profiler", "SPDisplaysDataType", "-json")
	if err != nil {
		return nil, collectionError(FacetDisplays, err)
	}

	return parseSystemProfilerDisplays(out)
}

func (c *DarwinCollector) ListNetworkAdapters(ctx context.Context) ([]models.NetworkAdapter, error) {
	return c.connectedAdapters(ctx, describeDarwinInterface)
}

func describeDarwinInterface(name string) string {
	switch {
	case strings.HasPrefix(name, "utun"):
		return "utun"
	case strings.HasPrefix(name, "ipsec"):
		return "ipsec"
	case strings.HasPrefix(name, "bridge"):
		return "bridge"
	case strings.HasPrefix(name, "en"):
		return "ethernet"
	default:
		return ""
	}
}

// ActiveWindowTitle prefers the front window's title and falls back to the
// frontmost application name when accessibility access is not granted.
func (c *DarwinCollector) ActiveWindowTitle(ctx context.Context) (string, error) {
	if out, err := c.run(ctx, "osascript", "-e", frontWindowScript); err == nil {
		if title := string(bytes.TrimSpace(out)); title != "" {
			return title, nil
		}
	}

	out, err := c.run(ctx, "osascript", "-e", frontAppScript)
	if err != nil {
		return "", collectionError(FacetActiveWindow, err)
	}

	return string(bytes.TrimSpace(out)), nil
}

func (c *DarwinCollector) IsVirtualMachine(ctx context.Context) (bool, error) {
	if present, err := c.sysctl("kern.hv_vmm_present"); err == nil && present == 1 {
		return true, nil
	}

	guest, err := c.guest(ctx)
	if err != nil {
		return false, collectionError(FacetVirtualization, err)
	}

	return guest, nil
}
