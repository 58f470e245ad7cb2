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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPrefersExplicitOverride(t *testing.T) {
	r := NewRegistry()
	r.Overrides["cisco_nexus"] = "nxos-override"
	r.Defaults["cisco"] = "ios"

	got := r.Select("cisco", "Nexus 9300", "")
	assert.Equal(t, "nxos-override", got)
}

func TestSelectFallsBackToHeuristic(t *testing.T) {
	r := NewRegistry()
	r.Heuristics = []Heuristic{
		{Vendor: "cisco", Contains: "nxos", DriverName: "nxos"},
	}
	r.Defaults["cisco"] = "ios"

	got := r.Select("cisco", "nxos device", "")
	assert.Equal(t, "nxos", got)
}

func TestSelectFallsBackToVendorDefault(t *testing.T) {
	r := NewRegistry()
	r.Defaults["cisco"] = "ios"

	got := r.Select("cisco", "unremarkable model", "")
	assert.Equal(t, "ios", got)
}

func TestSelectReturnsNoDriverWhenNothingMatches(t *testing.T) {
	r := NewRegistry()

	got := r.Select("unknownvendor", "", "")
	assert.Equal(t, NoDriver, got)
}

func TestSelectIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Heuristics = []Heuristic{
		{Vendor: "Cisco", Contains: "NX-OS", DriverName: "nxos"},
	}

	got := r.Select("CISCO", "Catalyst NX-OS Switch", "")
	assert.Equal(t, "nxos", got)
}

func TestOverrideKeyMatchesSelectLookup(t *testing.T) {
	r := NewRegistry()
	r.Overrides[OverrideKey("Cisco", "Nexus")] = "nxos-override"

	got := r.Select("cisco", "Nexus 9300", "")
	assert.Equal(t, "nxos-override", got)
}

func TestSelectOverrideRequiresVendorMatch(t *testing.T) {
	r := NewRegistry()
	r.Overrides["arista_dcs"] = "eos-dcs"
	r.Defaults["cisco"] = "ios"

	got := r.Select("cisco", "dcs-7050", "")
	assert.Equal(t, "ios", got)
}
