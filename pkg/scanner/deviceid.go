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
	"regexp"
	"strings"
)

var nonAlphanumericUnderscore = regexp.MustCompile(`[^a-z0-9_]`)

// deviceID constructs the spec §3 deterministic device identifier:
// sys-name first, then vendor+device-type+IP-last-octet, then a bare IP
// fallback.
func deviceID(sysName, vendor, deviceType, ip string) string {
	if clean := cleanSysName(sysName); clean != "" {
		return "host_" + clean
	}

	if vendor != "" && deviceType != "" && deviceType != "unknown" {
		return "host_" + vendor + "_" + deviceType + "_" + lastOctet(ip)
	}

	return "ip_" + strings.ReplaceAll(ip, ".", "_")
}

func cleanSysName(sysName string) string {
	sysName = strings.TrimSpace(sysName)
	if sysName == "" {
		return ""
	}

	clean := strings.ToLower(sysName)
	clean = strings.ReplaceAll(clean, "-", "_")
	clean = strings.ReplaceAll(clean, " ", "_")
	clean = nonAlphanumericUnderscore.ReplaceAllString(clean, "")

	return clean
}

func lastOctet(ip string) string {
	parts := strings.Split(ip, ".")
	if len(parts) == 0 {
		return ip
	}

	return parts[len(parts)-1]
}
