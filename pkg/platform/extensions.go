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
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/carverauto/sentinel/pkg/models"
)

const (
	chromiumDefaultProfile = "Default"
	firefoxAddonsFile      = "extensions.json"
	firefoxProfilesIni     = "profiles.ini"
	localizedPrefix        = "__MSG_"
	localizedSuffix        = "__"
)

type chromiumManifest struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	DefaultLocale string `json:"default_locale"`
}

type chromiumMessage struct {
	Message string `json:"message"`
}

type chromiumPreferences struct {
	Extensions struct {
		Settings map[string]chromiumExtensionSetting `json:"settings"`
	} `json:"extensions"`
}

type chromiumExtensionSetting struct {
	State          *int            `json:"state"`
	DisableReasons json.RawMessage `json:"disable_reasons"`
}

func (s chromiumExtensionSetting) enabled() bool {
	if s.State != nil && *s.State == 0 {
		return false
	}

	reasons := strings.TrimSpace(string(s.DisableReasons))

	return reasons == "" || reasons == "0" || reasons == "[]" || reasons == "null"
}

type firefoxAddons struct {
	Addons []struct {
		ID            string `json:"id"`
		Version       string `json:"version"`
		Type          string `json:"type"`
		Active        bool   `json:"active"`
		DefaultLocale struct {
			Name string `json:"name"`
		} `json:"defaultLocale"`
	} `json:"addons"`
}

// extensionScan accumulates a browser's extensions profile by profile. A profile that cannot be read is recorded and skipped so the
// others are still reported.
type extensionScan struct {
	extensions []models.Extension
	read       int
	failures   []profileFailure
}

type profileFailure struct {
	profile string
	err     error
}

// scanExtensions walks every profile location of a browser. The layout of
// each location decides whether it is read as Chromium or Firefox data.
func scanExtensions(browser models.Browser) *extensionScan {
	scan := &extensionScan{extensions: []models.Extension{}}

	for _, root := range browser.Profiles {
		extensionsUnder(root, scan)
	}

	return scan
}

func (s *extensionScan) add(profile string, exts []models.Extension, err error) {
	if err != nil {
		s.failures = append(s.failures, profileFailure{profile: profile, err: err})
		return
	}

	s.read++
	s.extensions = append(s.extensions, exts...)
}

// err is non-nil only when profiles were found and none of them could be read.
func (s *extensionScan) err() error {
	if s.read > 0 || len(s.failures) == 0 {
		return nil
	}

	errs := make([]error, 0, len(s.failures))
	for _, f := range s.failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.profile, f.err))
	}

	return errors.Join(errs...)
}

func extensionsUnder(root string, scan *extensionScan) {
	if fileExists(filepath.Join(root, firefoxAddonsFile)) {
		exts, err := firefoxExtensions(root)
		scan.add(root, exts, err)

		return
	}

	if fileExists(filepath.Join(root, firefoxProfilesIni)) {
		firefoxRootExtensions(root, scan)
		return
	}

	if dirExists(filepath.Join(root, "Extensions")) {
		exts, err := chromiumExtensions(root)
		scan.add(root, exts, err)

		return
	}

	profiles, err := chromiumProfiles(root)
	if err != nil {
		scan.add(root, nil, err)
		return
	}

	for _, profile := range profiles {
		exts, err := chromiumExtensions(profile)
		scan.add(profile, exts, err)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dst)
}

// chromiumProfiles lists "Default" and "Profile N" directories of a user data dir.
func chromiumProfiles(userDataDir string) ([]string, error) {
	entries, err := os.ReadDir(userDataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var profiles []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if name == chromiumDefaultProfile || strings.HasPrefix(name, "Profile ") {
			profiles = append(profiles, filepath.Join(userDataDir, name))
		}
	}

	return profiles, nil
}

func chromiumExtensions(profileDir string) ([]models.Extension, error) {
	extRoot := filepath.Join(profileDir, "Extensions")

	entries, err := os.ReadDir(extRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Extension{}, nil
	}

	if err != nil {
		return nil, err
	}

	settings := chromiumSettings(profileDir)
	out := []models.Extension{}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "Temp" {
			continue
		}

		id := entry.Name()

		ext, ok := latestChromiumVersion(filepath.Join(extRoot, id), id)
		if !ok {
			continue
		}

		ext.Enabled = true
		if setting, found := settings[id]; found {
			ext.Enabled = setting.enabled()
		}

		out = append(out, ext)
	}

	return out, nil
}

// latestChromiumVersion reads the newest version directory that carries a
// usable manifest. Stale versions linger during updates, so only one is kept.
// Directories are ordered by compareVersionDirs, not lexically.
func latestChromiumVersion(idDir, id string) (models.Extension, bool) {
	entries, err := os.ReadDir(idDir)
	if err != nil {
		return models.Extension{}, false
	}

	versions := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}

	slices.SortFunc(versions, func(a, b string) int {
		return compareVersionDirs(b, a)
	})

	for _, dir := range versions {
		versionDir := filepath.Join(idDir, dir)

		var manifest chromiumManifest
		if err := readJSON(filepath.Join(versionDir, "manifest.json"), &manifest); err != nil {
			continue
		}

		name := resolveLocalized(versionDir, manifest.DefaultLocale, manifest.Name)
		if name == "" {
			name = id
		}

		version := manifest.Version
		if version == "" {
			version = dir
		}

		return models.Extension{Name: name, Version: version, ID: id}, true
	}

	return models.Extension{}, false
}

// compareVersionDirs orders Chromium version directories ("1.10.0_0"). The
// dotted version is compared part by part, numerically where both parts are
// numbers and missing parts count as zero; the "_N" install suffix breaks ties.
func compareVersionDirs(a, b string) int {
	va, sa, _ := strings.Cut(a, "_")
	vb, sb, _ := strings.Cut(b, "_")

	pa := strings.Split(va, ".")
	pb := strings.Split(vb, ".")

	for i := 0; i < max(len(pa), len(pb)); i++ {
		if c := compareVersionPart(partAt(pa, i), partAt(pb, i)); c != 0 {
			return c
		}
	}

	return compareVersionPart(sa, sb)
}

func partAt(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}

	return "0"
}

func compareVersionPart(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)

	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		// numeric parts sort after non-numeric ones
		return 1
	case errB == nil:
		return -1
	default:
		return strings.Compare(a, b)
	}
}

// resolveLocalized expands a "__MSG_key__" manifest value from the
// extension's bundled locale catalogs. Keys are case-insensitive.
func resolveLocalized(versionDir, defaultLocale, value string) string {
	if !strings.HasPrefix(value, localizedPrefix) || !strings.HasSuffix(value, localizedSuffix) ||
		len(value) <= len(localizedPrefix)+len(localizedSuffix) {
		return value
	}

	key := strings.ToLower(value[len(localizedPrefix) : len(value)-len(localizedSuffix)])

	for _, locale := range []string{defaultLocale, "en", "en_US"} {
		if locale == "" {
			continue
		}

		var messages map[string]chromiumMessage
		if err := readJSON(filepath.Join(versionDir, "_locales", locale, "messages.json"), &messages); err != nil {
			continue
		}

		for k, msg := range messages {
			if strings.ToLower(k) == key && msg.Message != "" {
				return msg.Message
			}
		}
	}

	return value
}

func chromiumSettings(profileDir string) map[string]chromiumExtensionSetting {
	settings := make(map[string]chromiumExtensionSetting)

	for _, name := range []string{"Preferences", "Secure Preferences"} {
		var prefs chromiumPreferences
		if err := readJSON(filepath.Join(profileDir, name), &prefs); err != nil {
			continue
		}

		for id, s := range prefs.Extensions.Settings {
			settings[id] = s
		}
	}

	return settings
}

func firefoxRootExtensions(root string, scan *extensionScan) {
	candidates, err := filepath.Glob(filepath.Join(root, "*", firefoxAddonsFile))
	if err != nil {
		scan.add(root, nil, err)
		return
	}

	nested, err := filepath.Glob(filepath.Join(root, "Profiles", "*", firefoxAddonsFile))
	if err != nil {
		scan.add(root, nil, err)
		return
	}

	candidates = append(candidates, nested...)
	sort.Strings(candidates)

	for _, path := range candidates {
		profile := filepath.Dir(path)
		exts, err := firefoxExtensions(profile)
		scan.add(profile, exts, err)
	}
}

func firefoxExtensions(profileDir string) ([]models.Extension, error) {
	var addons firefoxAddons
	if err := readJSON(filepath.Join(profileDir, firefoxAddonsFile), &addons); err != nil {
		return nil, err
	}

	out := []models.Extension{}
	seen := make(map[string]struct{})

	for _, addon := range addons.Addons {
		if addon.Type != "extension" || addon.ID == "" {
			continue
		}

		if _, dup := seen[addon.ID]; dup {
			continue
		}

		seen[addon.ID] = struct{}{}

		name := addon.DefaultLocale.Name
		if name == "" {
			name = addon.ID
		}

		out = append(out, models.Extension{
			Name:    name,
			Version: addon.Version,
			ID:      addon.ID,
			Enabled: addon.Active,
		})
	}

	return out, nil
}
