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
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/carverauto/sentinel/pkg/models"
)

// readHostsFile parses the hosts override file. A missing file yields no entries.
func readHostsFile(path string) ([]models.HostsEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.HostsEntry{}, nil
	}

	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return parseHosts(f)
}

// parseHosts yields one entry per non-blank, non-comment line that names at
// least an address and a domain. Aliases after the first domain are ignored.
func parseHosts(r io.Reader) ([]models.HostsEntry, error) {
	entries := []models.HostsEntry{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		entries = append(entries, models.HostsEntry{IP: fields[0], Domain: fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
