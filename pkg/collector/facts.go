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

package collector

// factsHostname pulls "hostname" (falling back to "fqdn") out of a
// get_facts result. The result shape is driver-uniform per spec §4.3 —
// a string-keyed map — but its value type is opaque, so both common
// representations (string, fmt.Stringer-free interface{}) are handled.
func factsHostname(data interface{}) (string, bool) {
	m, ok := data.(map[string]interface{})
	if !ok {
		return "", false
	}

	if v, ok := stringField(m, "hostname"); ok && v != "" {
		return v, true
	}

	if v, ok := stringField(m, "fqdn"); ok && v != "" {
		return v, true
	}

	return "", false
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}
