//go:build windows

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
	"strings"
	"unsafe"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

const (
	securityCenterNamespace = `ROOT\SecurityCenter2`
	startMenuInternetKey    = `SOFTWARE\Clients\StartMenuInternet`

	// productState bit set while real-time protection is on
	avProductEnabled = 0x1000

	// NetConnectionStatus 2 is "Connected"; WMI filters, rows are taken as is
	connectedAdaptersQuery = "SELECT Name, Description, MACAddress FROM Win32_NetworkAdapter " +
		"WHERE NetConnectionStatus = 2"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
)

type win32AntivirusProduct struct {
	DisplayName  string
	ProductState uint32
}

type win32PnPEntity struct {
	Name     string
	DeviceID string
	Status   string
}

type win32NetworkAdapter struct {
	Name        string
	Description string
	MACAddress  string
}

type win32ComputerSystem struct {
	Manufacturer string
	Model        string
}

// user data locations relative to %LOCALAPPDATA% / %APPDATA%, keyed by a
// lowercase fragment of the StartMenuInternet client name
var windowsBrowserData = []struct {
	match   string
	roaming bool
	dir     string
}{
	{"chrome", false, `Google\Chrome\User Data`},
	{"edge", false, `Microsoft\Edge\User Data`},
	{"brave", false, `BraveSoftware\Brave-Browser\User Data`},
	{"vivaldi", false, `Vivaldi\User Data`},
	{"opera", true, `Opera Software\Opera Stable`},
	{"firefox", true, `Mozilla\Firefox`},
}

// WindowsCollector gathers telemetry from WMI, the registry and user32.
type WindowsCollector struct {
	base
	query          func(query string, dst interface{}) error
	queryNamespace func(query string, dst interface{}, namespace string) error
}

func newPlatformCollector(log logger.Logger, o *options) (Collector, error) {
	return &WindowsCollector{
		base: newBase(log, o),
		query: func(query string, dst interface{}) error {
			return wmi.Query(query, dst)
		},
		queryNamespace: wmi.QueryNamespace,
	}, nil
}

func defaultHostsPath() string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}

	return filepath.Join(root, "System32", "drivers", "etc", "hosts")
}

func (*WindowsCollector) Name() string {
	return "windows"
}

func (c *WindowsCollector) ListAntivirus(_ context.Context) ([]models.AntivirusProduct, error) {
	var products []win32AntivirusProduct

	err := c.queryNamespace("SELECT displayName, productState FROM AntiVirusProduct", &products, securityCenterNamespace)
	if err != nil {
		return nil, collectionError(FacetAntivirus, err)
	}

	out := make([]models.AntivirusProduct, 0, len(products))
	for _, p := range products {
		out = append(out, models.AntivirusProduct{
			Name:    p.DisplayName,
			Enabled: p.ProductState&avProductEnabled != 0,
		})
	}

	return out, nil
}

// ListBrowsers walks the StartMenuInternet clients registered machine-wide and
// per-user, deduplicated by display name.
func (c *WindowsCollector) ListBrowsers(_ context.Context) ([]models.Browser, error) {
	browsers := []models.Browser{}
	seen := make(map[string]struct{})

	for _, root := range []registry.Key{registry.LOCAL_MACHINE, registry.CURRENT_USER} {
		clients, err := registry.OpenKey(root, startMenuInternetKey, registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			continue
		}

		names, err := clients.ReadSubKeyNames(-1)
		_ = clients.Close()

		if err != nil {
			c.log.Debug().Err(err).Msg("Failed to enumerate StartMenuInternet clients")
			continue
		}

		for _, name := range names {
			displayName := readDefaultValue(root, startMenuInternetKey+`\`+name)
			if displayName == "" {
				displayName = name
			}

			if _, dup := seen[displayName]; dup {
				continue
			}

			seen[displayName] = struct{}{}

			command := readDefaultValue(root, startMenuInternetKey+`\`+name+`\shell\open\command`)

			browsers = append(browsers, models.Browser{
				Name:        displayName,
				InstallPath: strings.ReplaceAll(command, `"`, ""),
				Profiles:    windowsProfiles(name),
			})
		}
	}

	return browsers, nil
}

func readDefaultValue(root registry.Key, path string) string {
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer func() { _ = key.Close() }()

	value, _, err := key.GetStringValue("")
	if err != nil {
		return ""
	}

	return value
}

func windowsProfiles(clientName string) []string {
	lower := strings.ToLower(clientName)
	profiles := []string{}

	for _, data := range windowsBrowserData {
		if !strings.Contains(lower, data.match) {
			continue
		}

		appData := os.Getenv("LOCALAPPDATA")
		if data.roaming {
			appData = os.Getenv("APPDATA")
		}

		if appData == "" {
			continue
		}

		if dir := filepath.Join(appData, data.dir); dirExists(dir) {
			profiles = append(profiles, dir)
		}
	}

	return profiles
}

// ListDisplays reports monitor-class PnP devices whose status is OK.
func (c *WindowsCollector) ListDisplays(_ context.Context) ([]models.Display, error) {
	var devices []win32PnPEntity

	err := c.query("SELECT Name, DeviceID, Status FROM Win32_PnPEntity WHERE Service = 'monitor'", &devices)
	if err != nil {
		return nil, collectionError(FacetDisplays, err)
	}

	displays := []models.Display{}

	for _, d := range devices {
		if d.Status != "" && d.Status != "OK" {
			continue
		}

		name := d.Name
		if name == "" {
			name = "Unknown Display"
		}

		displays = append(displays, models.Display{Name: name, DeviceID: d.DeviceID})
	}

	return displays, nil
}

func (c *WindowsCollector) ListNetworkAdapters(_ context.Context) ([]models.NetworkAdapter, error) {
	var adapters []win32NetworkAdapter

	if err := c.query(connectedAdaptersQuery, &adapters); err != nil {
		return nil, collectionError(FacetNetworkAdapters, err)
	}

	out := make([]models.NetworkAdapter, 0, len(adapters))

	for _, a := range adapters {
		out = append(out, models.NetworkAdapter{
			Name:        a.Name,
			Description: a.Description,
			MACAddress:  a.MACAddress,
		})
	}

	return out, nil
}

func (*WindowsCollector) ActiveWindowTitle(_ context.Context) (string, error) {
	if err := procGetForegroundWindow.Find(); err != nil {
		return "", collectionError(FacetActiveWindow, err)
	}

	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", nil
	}

	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return "", nil
	}

	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))

	return windows.UTF16ToString(buf[:n]), nil
}

func (c *WindowsCollector) IsVirtualMachine(ctx context.Context) (bool, error) {
	var systems []win32ComputerSystem

	if err := c.query("SELECT Manufacturer, Model FROM Win32_ComputerSystem", &systems); err == nil && len(systems) > 0 {
		if matchesHypervisor(systems[0].Manufacturer, systems[0].Model) {
			return true, nil
		}
	}

	guest, err := c.guest(ctx)
	if err != nil {
		return false, collectionError(FacetVirtualization, err)
	}

	return guest, nil
}
