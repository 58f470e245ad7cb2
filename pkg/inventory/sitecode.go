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

package inventory

import (
	"regexp"
	"strings"
)

var siteCodePrefix = regexp.MustCompile(`^([a-z]{2,4})-`)

// ExtractSiteCode derives a site code from a hostname prefix like
// "frc-core01" -> "FRC" (spec §4.8: the scan-file source's site-code
// filter has no stored column, so it is derived from hostname/ip). The
// original's per-deployment IP-octet table (10.67.x.x -> a fixed site)
// is deployment-specific and not carried forward; unmatched hostnames
// fall back to "UNK".
func ExtractSiteCode(hostname string) string {
	m := siteCodePrefix.FindStringSubmatch(strings.ToLower(hostname))
	if m == nil {
		return "UNK"
	}

	return strings.ToUpper(m[1])
}
