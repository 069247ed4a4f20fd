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
	"strings"

	"github.com/carverauto/sentinel/pkg/models"
)

var hypervisorVendors = []string{
	"vmware", "virtualbox", "vbox", "qemu", "kvm", "microsoft corporation", "bochs", "parallels", "xen",
}

// matchesHypervisor checks firmware-reported manufacturer and model strings
// against known hypervisor vendors. Microsoft hardware only counts when the
// model says "virtual", since Surface devices share the manufacturer string.
func matchesHypervisor(manufacturer, model string) bool {
	manufacturer = strings.ToLower(manufacturer)
	model = strings.ToLower(model)

	for _, vendor := range hypervisorVendors {
		if !strings.Contains(manufacturer, vendor) && !strings.Contains(model, vendor) {
			continue
		}

		if vendor == "microsoft corporation" && !strings.Contains(model, "virtual") {
			continue
		}

		return true
	}

	return false
}

type antivirusDaemon struct {
	process string
	product string
}

// Products without a system registry are inferred from their resident daemons.
var antivirusDaemons = []antivirusDaemon{
	{"clamd", "ClamAV"},
	{"freshclam", "ClamAV"},
	{"falcon-sensor", "CrowdStrike Falcon"},
	{"falcond", "CrowdStrike Falcon"},
	{"wdavdaemon", "Microsoft Defender for Endpoint"},
	{"sophos", "Sophos"},
	{"savd", "Sophos Anti-Virus"},
	{"esets", "ESET"},
	{"bdsecd", "Bitdefender"},
	{"sentineld", "SentinelOne"},
	{"s1-agent", "SentinelOne"},
	{"xprotect", "Apple XProtect"},
	{"mcafee", "McAfee"},
}

func antivirusFromProcesses(procs []models.Process) []models.AntivirusProduct {
	products := []models.AntivirusProduct{}
	seen := make(map[string]struct{})

	for _, p := range procs {
		name := strings.ToLower(p.Name)

		for _, d := range antivirusDaemons {
			if !strings.Contains(name, d.process) {
				continue
			}

			if _, ok := seen[d.product]; ok {
				continue
			}

			seen[d.product] = struct{}{}
			products = append(products, models.AntivirusProduct{Name: d.product, Enabled: true})
		}
	}

	return products
}
