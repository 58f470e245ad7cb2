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

package driver

import "strings"

// NoDriver is returned by Registry.Select when no layer matches; callers
// treat it as "skip this device" (spec §4.6 step 1).
const NoDriver = ""

// Heuristic maps a vendor to a driver name based on substring matches
// against model and/or sys-descr. Rules are tried in slice order; the
// first match wins.
type Heuristic struct {
	Vendor     string
	Contains   string // matched case-insensitively against model+" "+sysDescr
	DriverName string
}

// Registry implements the layered driver-selection lookup from spec
// §4.3: explicit overrides, then vendor heuristics, then vendor
// defaults, otherwise NoDriver.
type Registry struct {
	// Overrides key is "{vendor}_{model-substring}", both lowercased.
	Overrides  map[string]string
	Heuristics []Heuristic
	// Defaults maps a lowercased vendor name to its default driver.
	Defaults map[string]string
}

// OverrideKey builds the Overrides map key for a vendor/model-substring
// pair, lowercased to match Select's lookup.
func OverrideKey(vendor, modelSubstring string) string {
	return strings.ToLower(vendor) + "_" + strings.ToLower(modelSubstring)
}

// NewRegistry builds an empty Registry; callers populate its three layers
// from configuration before use.
func NewRegistry() *Registry {
	return &Registry{
		Overrides: make(map[string]string),
		Defaults:  make(map[string]string),
	}
}

// Select runs the four-layer lookup and returns the chosen driver name,
// or NoDriver if nothing matched.
func (r *Registry) Select(vendor, model, sysDescr string) string {
	vendor = strings.ToLower(vendor)
	model = strings.ToLower(model)
	sysDescr = strings.ToLower(sysDescr)

	if name, ok := r.matchOverride(vendor, model); ok {
		return name
	}

	if name, ok := r.matchHeuristic(vendor, model, sysDescr); ok {
		return name
	}

	if name, ok := r.Defaults[vendor]; ok && name != "" {
		return name
	}

	return NoDriver
}

func (r *Registry) matchOverride(vendor, model string) (string, bool) {
	for key, name := range r.Overrides {
		parts := strings.SplitN(key, "_", 2)
		if len(parts) != 2 {
			continue
		}

		overrideVendor, substring := parts[0], parts[1]
		if overrideVendor != vendor {
			continue
		}

		if substring == "" || strings.Contains(model, substring) {
			return name, true
		}
	}

	return "", false
}

func (r *Registry) matchHeuristic(vendor, model, sysDescr string) (string, bool) {
	haystack := model + " " + sysDescr

	for _, h := range r.Heuristics {
		if strings.ToLower(h.Vendor) != vendor {
			continue
		}

		if strings.Contains(haystack, strings.ToLower(h.Contains)) {
			return h.DriverName, true
		}
	}

	return "", false
}
