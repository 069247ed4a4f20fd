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
	"net"
	"slices"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/carverauto/sentinel/pkg/models"
)

// connectedAdapters keeps interfaces that are up, not loopback and hold at
// least one address that is not link-local.
func connectedAdapters(ifaces psnet.InterfaceStatList, describe func(string) string) []models.NetworkAdapter {
	adapters := []models.NetworkAdapter{}

	for _, iface := range ifaces {
		if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
			continue
		}

		if !hasRoutableAddr(iface.Addrs) {
			continue
		}

		desc := ""
		if describe != nil {
			desc = describe(iface.Name)
		}

		adapters = append(adapters, models.NetworkAdapter{
			Name:        iface.Name,
			Description: desc,
			MACAddress:  iface.HardwareAddr,
		})
	}

	return adapters
}

func hasRoutableAddr(addrs psnet.InterfaceAddrList) bool {
	for _, a := range addrs {
		ip, _, err := net.ParseCIDR(a.Addr)
		if err != nil {
			ip = net.ParseIP(a.Addr)
		}

		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}

		return true
	}

	return false
}
