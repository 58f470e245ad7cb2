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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func sampleDevices() []models.InventoryDevice {
	return []models.InventoryDevice{
		{DeviceName: "frc-core01", Hostname: "frc-core01", IP: "10.0.0.1", Vendor: "cisco", Model: "C9300", SiteCode: "FRC", DeviceRole: models.RoleCore},
		{DeviceName: "usc-sw02", Hostname: "usc-sw02", IP: "10.0.1.2", Vendor: "arista", Model: "7050", SiteCode: "USC", DeviceRole: models.RoleSwitch},
	}
}

func TestApplyFiltersByIndividualField(t *testing.T) {
	devices := sampleDevices()

	out := Apply(devices, RuntimeFilter{Vendor: "cisco"})
	assert.Len(t, out, 1)
	assert.Equal(t, "frc-core01", out[0].DeviceName)

	out = Apply(devices, RuntimeFilter{Site: "usc"})
	assert.Len(t, out, 1)
	assert.Equal(t, "usc-sw02", out[0].DeviceName)
}

func TestApplyFiltersAreCaseInsensitiveSubstrings(t *testing.T) {
	devices := sampleDevices()

	out := Apply(devices, RuntimeFilter{Name: "CORE"})
	assert.Len(t, out, 1)

	out = Apply(devices, RuntimeFilter{Model: "050"})
	assert.Len(t, out, 1)
	assert.Equal(t, "usc-sw02", out[0].DeviceName)
}

func TestApplyNoFiltersReturnsEverything(t *testing.T) {
	devices := sampleDevices()
	out := Apply(devices, RuntimeFilter{})
	assert.Len(t, out, 2)
}

func TestApplyLegacySearchesAllFields(t *testing.T) {
	devices := sampleDevices()

	out := Apply(devices, RuntimeFilter{Legacy: "10.0.1.2"})
	assert.Len(t, out, 1)
	assert.Equal(t, "usc-sw02", out[0].DeviceName)

	out = Apply(devices, RuntimeFilter{Legacy: "arista"})
	assert.Len(t, out, 1)

	out = Apply(devices, RuntimeFilter{Legacy: "nonexistent"})
	assert.Empty(t, out)
}

func TestApplyCombinesMultipleFieldsWithAND(t *testing.T) {
	devices := sampleDevices()

	out := Apply(devices, RuntimeFilter{Vendor: "cisco", Site: "usc"})
	assert.Empty(t, out)

	out = Apply(devices, RuntimeFilter{Vendor: "cisco", Site: "frc"})
	assert.Len(t, out, 1)
}

func TestContainsFoldAndContainsRole(t *testing.T) {
	assert.True(t, containsFold([]string{"Cisco", "Arista"}, "cisco"))
	assert.False(t, containsFold([]string{"Cisco"}, "juniper"))

	assert.True(t, containsRole([]models.DeviceRole{models.RoleCore, models.RoleSwitch}, models.RoleSwitch))
	assert.False(t, containsRole([]models.DeviceRole{models.RoleCore}, models.RoleAccess))
}
