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
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

const (
	sysfsDRMPath = "/sys/class/drm"
	sysfsNetPath = "/sys/class/net"
	sysfsDMIPath = "/sys/class/dmi/id"
)

var linuxBrowsers = []browserLayout{
	{Name: "Google Chrome", Binaries: []string{"google-chrome", "google-chrome-stable"}, DataDirs: []string{".config/google-chrome"}},
	{Name: "Chromium", Binaries: []string{"chromium", "chromium-browser"}, DataDirs: []string{".config/chromium", "snap/chromium/common/chromium"}},
	{Name: "Microsoft Edge", Binaries: []string{"microsoft-edge", "microsoft-edge-stable"}, DataDirs: []string{".config/microsoft-edge"}},
	{Name: "Brave", Binaries: []string{"brave-browser", "brave"}, DataDirs: []string{".config/BraveSoftware/Brave-Browser"}},
	{Name: "Vivaldi", Binaries: []string{"vivaldi", "vivaldi-stable"}, DataDirs: []string{".config/vivaldi"}},
	{Name: "Opera", Binaries: []string{"opera"}, DataDirs: []string{".config/opera"}},
	{Name: "Mozilla Firefox", Binaries: []string{"firefox"}, DataDirs: []string{".mozilla/firefox", "snap/firefox/common/.mozilla/firefox"}},
	{Name: "Tor Browser", Binaries: []string{"torbrowser-launcher"}, DataDirs: []string{".local/share/torbrowser/tbb/x86_64/tor-browser/Browser/TorBrowser/Data/Browser"}},
}

// LinuxCollector gathers telemetry from sysfs, procfs and the X session.
type LinuxCollector struct {
	base
	drmPath string
	netPath string
	dmiPath string
}

func newPlatformCollector(log logger.Logger, o *options) (Collector, error) {
	return &LinuxCollector{
		base:    newBase(log, o),
		drmPath: sysfsDRMPath,
		netPath: sysfsNetPath,
		dmiPath: sysfsDMIPath,
	}, nil
}

func defaultHostsPath() string {
	return "/etc/hosts"
}

func (*LinuxCollector) Name() string {
	return "linux"
}

// ListAntivirus infers products from resident scanner daemons; Linux has no
// security center to query.
func (c *LinuxCollector) ListAntivirus(ctx context.Context) ([]models.AntivirusProduct, error) {
	return c.runningAntivirus(ctx)
}

func (c *LinuxCollector) ListBrowsers(_ context.Context) ([]models.Browser, error) {
	return discoverBrowsers(linuxBrowsers, c.homeDir, c.lookPath), nil
}

// ListDisplays reports DRM connectors whose status is "connected".
func (c *LinuxCollector) ListDisplays(_ context.Context) ([]models.Display, error) {
	statusFiles, err := filepath.Glob(filepath.Join(c.drmPath, "card*-*", "status"))
	if err != nil {
		return nil, collectionError(FacetDisplays, err)
	}

	sort.Strings(statusFiles)

	displays := []models.Display{}

	for _, statusFile := range statusFiles {
		status, err := os.ReadFile(statusFile)
		if err != nil || strings.TrimSpace(string(status)) != "connected" {
			continue
		}

		connector := filepath.Base(filepath.Dir(statusFile))
		name := connector

		if idx := strings.IndexByte(connector, '-'); idx >= 0 {
			name = connector[idx+1:]
		}

		// sysfs has no notion of a primary output; the first connected one stands in
		displays = append(displays, models.Display{
			Name:     name,
			DeviceID: connector,
			Primary:  len(displays) == 0,
		})
	}

	return displays, nil
}

func (c *LinuxCollector) ListNetworkAdapters(ctx context.Context) ([]models.NetworkAdapter, error) {
	return c.connectedAdapters(ctx, c.describeInterface)
}

// describeInterface derives a description from the kernel device type, which
// names tunnel drivers such as wireguard or tun directly.
func (c *LinuxCollector) describeInterface(name string) string {
	ifaceDir := filepath.Join(c.netPath, name)

	if data, err := os.ReadFile(filepath.Join(ifaceDir, "uevent")); err == nil {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if devType, ok := strings.CutPrefix(scanner.Text(), "DEVTYPE="); ok {
				return devType
			}
		}
	}

	if fileExists(filepath.Join(ifaceDir, "tun_flags")) {
		return "tun"
	}

	return ""
}

// ActiveWindowTitle asks xdotool for the focused window. Sessions without a
// display server have no foreground window and report an empty title.
func (c *LinuxCollector) ActiveWindowTitle(ctx context.Context) (string, error) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return "", nil
	}

	if _, err := c.lookPath("xdotool"); err != nil {
		return "", collectionError(FacetActiveWindow, errNoForegroundTool)
	}

	out, err := c.run(ctx, "xdotool", "getactivewindow", "getwindowname")
	if err != nil {
		return "", collectionError(FacetActiveWindow, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// IsVirtualMachine checks DMI firmware strings first and falls back to the
// virtualization role gopsutil derives from cpuinfo and hypervisor files.
func (c *LinuxCollector) IsVirtualMachine(ctx context.Context) (bool, error) {
	vendor, _ := os.ReadFile(filepath.Join(c.dmiPath, "sys_vendor"))
	product, _ := os.ReadFile(filepath.Join(c.dmiPath, "product_name"))

	if matchesHypervisor(string(vendor), string(product)) {
		return true, nil
	}

	guest, err := c.guest(ctx)
	if err != nil {
		return false, collectionError(FacetVirtualization, err)
	}

	return guest, nil
}
