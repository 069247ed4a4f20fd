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

import "time"

// AntivirusProduct is a security product registered with the host.
type AntivirusProduct struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Version string `json:"version,omitempty"`
}

// Browser is an installed web browser. Profiles are filesystem locations
// that are only opened when extensions are enumerated.
type Browser struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	InstallPath string   `json:"install_path"`
	Profiles    []string `json:"profiles"`
}

// Extension is a browser add-on found in one browser profile.
type Extension struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// Display is an attached physical or virtual monitor.
type Display struct {
	Name     string `json:"name"`
	DeviceID string `json:"device_id"`
	Primary  bool   `json:"primary"`
}

// Process is a running process. The PID is only meaningful within the
// snapshot that produced it.
type Process struct {
	PID  int32  `json:"pid"`
	Name string `json:"name"`
}

// NetworkAdapter is a connected network interface.
type NetworkAdapter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MACAddress  string `json:"mac_address"`
}

// HostsEntry is one override line from the hosts file.
type HostsEntry struct {
	IP     string `json:"ip"`
	Domain string `json:"domain"`
}

// CollectionFailure records a facet that could not be collected and was
// substituted with an empty result.
type CollectionFailure struct {
	Facet string `json:"facet"`
	Error string `json:"error"`
}

// Snapshot aggregates every collector result gathered in one pass.
type Snapshot struct {
	CollectedAt      time.Time           `json:"collected_at"`
	Antivirus        []AntivirusProduct  `json:"antivirus"`
	Browsers         []Browser           `json:"browsers"`
	Extensions       []Extension         `json:"extensions"`
	Displays         []Display           `json:"displays"`
	Processes        []Process           `json:"processes"`
	NetworkAdapters  []NetworkAdapter    `json:"network_adapters"`
	HostsEntries     []HostsEntry        `json:"hosts_entries"`
	ActiveWindow     string              `json:"active_window"`
	IsVirtualMachine bool                `json:"is_virtual_machine"`
	Failures         []CollectionFailure `json:"failures,omitempty"`
}
