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

package policy

import (
	"errors"
	"fmt"
	"strings"
)

var errNegativeMaxDisplays = errors.New("max_displays must not be negative")

// Rules holds the keyword sets each rule matches against. Keywords are
// compared case-insensitively as substrings of the inspected field.
type Rules struct {
	Processes       []string `json:"processes,omitempty"`
	NetworkAdapters []string `json:"network_adapters,omitempty"`
	HostsDomains    []string `json:"hosts_domains,omitempty"`
	ActiveWindows   []string `json:"active_windows,omitempty"`
	Browsers        []string `json:"browsers,omitempty"`
	Extensions      []string `json:"extensions,omitempty"`
	// MaxDisplays is the largest display count that is not a violation.
	MaxDisplays int `json:"max_displays,omitempty"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Processes: []string{
			"wireshark", "fiddler", "charles", "cheatengine", "obs", "xsplit",
			"teamviewer", "anydesk", "discord", "skype", "slack", "telegram",
		},
		NetworkAdapters: []string{"tap", "tun", "vpn", "wireguard", "hamachi", "openvpn", "zerotier"},
		HostsDomains:    []string{"cheat", "brainly", "quizlet", "coursehero", "chegg", "openai"},
		ActiveWindows:   []string{"chatgpt", "discord", "search", "google", "stack overflow", "copilot"},
		Browsers:        []string{"tor", "comet", "ulaa"},
		Extensions: []string{
			"postman", "vulners", "shodan", "wappalyzer",
			"gpt", "copilot", "perplexity", "ai assistant",
			"hack", "proxy", "vpn", "requestly",
		},
		MaxDisplays: 1,
	}
}

// Merge overlays the non-empty lists and a positive MaxDisplays from override
// onto r. A nil override returns r unchanged.
func (r Rules) Merge(override *Rules) Rules {
	if override == nil {
		return r
	}

	merged := r

	if len(override.Processes) > 0 {
		merged.Processes = override.Processes
	}

	if len(override.NetworkAdapters) > 0 {
		merged.NetworkAdapters = override.NetworkAdapters
	}

	if len(override.HostsDomains) > 0 {
		merged.HostsDomains = override.HostsDomains
	}

	if len(override.ActiveWindows) > 0 {
		merged.ActiveWindows = override.ActiveWindows
	}

	if len(override.Browsers) > 0 {
		merged.Browsers = override.Browsers
	}

	if len(override.Extensions) > 0 {
		merged.Extensions = override.Extensions
	}

	if override.MaxDisplays > 0 {
		merged.MaxDisplays = override.MaxDisplays
	}

	return merged
}

// Validate implements config.Validator.
func (r *Rules) Validate() error {
	if r.MaxDisplays < 0 {
		return fmt.Errorf("rules: %w", errNegativeMaxDisplays)
	}

	return nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}

	return out
}

func (r Rules) normalized() Rules {
	return Rules{
		Processes:       normalizeKeywords(r.Processes),
		NetworkAdapters: normalizeKeywords(r.NetworkAdapters),
		HostsDomains:    normalizeKeywords(r.HostsDomains),
		ActiveWindows:   normalizeKeywords(r.ActiveWindows),
		Browsers:        normalizeKeywords(r.Browsers),
		Extensions:      normalizeKeywords(r.Extensions),
		MaxDisplays:     r.MaxDisplays,
	}
}
