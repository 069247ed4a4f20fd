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
	"os"
	"path/filepath"

	"github.com/carverauto/sentinel/pkg/models"
)

// browserLayout describes where one browser installs and keeps its user data.
// DataDirs are relative to the user home directory.
type browserLayout struct {
	Name     string
	Binaries []string
	DataDirs []string
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// discoverBrowsers reports every layout with an installed binary or an existing
// user data directory. Binaries are resolved with lookPath, or taken as
// absolute paths when they already are.
func discoverBrowsers(layouts []browserLayout, home string, lookPath func(string) (string, error)) []models.Browser {
	browsers := []models.Browser{}

	for _, layout := range layouts {
		installPath := ""

		for _, bin := range layout.Binaries {
			if filepath.IsAbs(bin) {
				if _, err := os.Stat(bin); err == nil {
					installPath = bin
					break
				}

				continue
			}

			if path, err := lookPath(bin); err == nil {
				installPath = path
				break
			}
		}

		profiles := []string{}

		if home != "" {
			for _, rel := range layout.DataDirs {
				if dir := filepath.Join(home, rel); dirExists(dir) {
					profiles = append(profiles, dir)
				}
			}
		}

		if installPath == "" && len(profiles) == 0 {
			continue
		}

		browsers = append(browsers, models.Browser{
			Name:        layout.Name,
			InstallPath: installPath,
			Profiles:    profiles,
		})
	}

	return browsers
}
