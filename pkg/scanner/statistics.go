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

package scanner

import (
	"strings"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// finalizeStatistics computes the scan-file "statistics" block (spec §6)
// from the accumulated devices map and SNMP-version tallies. Subnet
// bucketing groups by IPv4 /24 (the first three octets); non-IPv4
// addresses are dropped from that breakdown only.
func finalizeStatistics(devices map[string]*models.DeviceRecord, v3, v2c int) models.ScanStatistics {
	stats := models.ScanStatistics{
		VendorBreakdown:  make(map[string]int),
		TypeBreakdown:    make(map[string]int),
		DevicesPerSubnet: make(map[string]int),
		SNMPVersionBreakdown: models.SNMPVersionBreakdown{
			V3Successful:    v3,
			V2cSuccessful:   v2c,
			TotalSuccessful: v3 + v2c,
		},
	}

	var confidenceSum int

	for _, device := range devices {
		vendor := device.Vendor
		if vendor == "" {
			vendor = "unknown"
		}

		deviceType := device.DeviceType
		if deviceType == "" {
			deviceType = "unknown"
		}

		stats.VendorBreakdown[vendor]++
		stats.TypeBreakdown[deviceType]++
		confidenceSum += device.Confidence

		if subnet, ok := subnet24(device.PrimaryIP); ok {
			stats.DevicesPerSubnet[subnet]++
		}
	}

	stats.TotalDevices = len(devices)

	if len(devices) > 0 {
		stats.AvgConfidence = float64(confidenceSum) / float64(len(devices))
	}

	return stats
}

func subnet24(ip string) (string, bool) {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return "", false
	}

	return parts[0] + "." + parts[1] + "." + parts[2] + ".0/24", true
}
