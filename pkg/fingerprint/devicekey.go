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

package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const deviceKeyLength = 16

// DeviceKey derives the spec §3 inventory device-key: the first 16 hex
// characters of SHA-256 over the uppercased "vendor|serial|model" triple.
// Deterministic and pure, so two collectors deriving from the same
// fingerprint verdict always agree on the key.
func DeviceKey(vendor, serial, model string) string {
	input := strings.ToUpper(vendor + "|" + serial + "|" + model)
	sum := sha256.Sum256([]byte(input))

	return hex.EncodeToString(sum[:])[:deviceKeyLength]
}
