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

import "sort"

const factsMethod = "get_facts"

// orderedMethods derives the method-collection list from the enabled-set:
// get_facts always runs first (when enabled), the remainder follow in
// sorted order for determinism (spec §4.6 step 4).
func orderedMethods(enabled map[string]bool) []string {
	rest := make([]string, 0, len(enabled))

	hasFacts := false

	for name, on := range enabled {
		if !on {
			continue
		}

		if name == factsMethod {
			hasFacts = true
			continue
		}

		rest = append(rest, name)
	}

	sort.Strings(rest)

	if !hasFacts {
		return rest
	}

	return append([]string{factsMethod}, rest...)
}
