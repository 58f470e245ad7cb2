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

// Package inventory implements the two list_devices sources (spec
// §4.8): a scan-file reader and an inventory-store reader, both
// producing the device list the collector consumes.
package inventory

import (
	"strings"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// networkRoles classifies which DeviceRole values count as "network"
// devices for the include-non-network filter; everything else (server,
// printer, camera, ups, unknown) is non-network.
var networkRoles = map[models.DeviceRole]bool{
	models.RoleCore:         true,
	models.RoleAccess:       true,
	models.RoleDistribution: true,
	models.RoleFirewall:     true,
	models.RoleRouter:       true,
	models.RoleSwitch:       true,
	models.RoleWireless:     true,
	models.RoleLoadBalancer: true,
}

// Filters is the union of both sources' query parameters (spec §4.8); a
// source applies only the subset meaningful to it.
type Filters struct {
	// Scan-file source
	MinConfidence int
	DeviceTypes   []string

	// Inventory-store source
	ActiveOnly        bool
	DeviceRoles       []models.DeviceRole
	ExcludeModels     []string
	IncludeNonNetwork bool

	// Shared
	Vendors   []string
	SiteCodes []string
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}

	return false
}

func containsRole(set []models.DeviceRole, value models.DeviceRole) bool {
	for _, r := range set {
		if r == value {
			return true
		}
	}

	return false
}

// RuntimeFilter narrows an already-listed device set by case-insensitive
// substring matches on individual fields (spec §4.8 "runtime filters").
// A zero-value field is not applied.
type RuntimeFilter struct {
	Name   string
	Site   string
	Vendor string
	Role   string
	Model  string
	IP     string
	// Legacy searches every string field with one term.
	Legacy string
}

// Apply returns the devices matching every non-empty field of f.
func Apply(devices []models.InventoryDevice, f RuntimeFilter) []models.InventoryDevice {
	out := make([]models.InventoryDevice, 0, len(devices))

	for _, d := range devices {
		if matches(d, f) {
			out = append(out, d)
		}
	}

	return out
}

func matches(d models.InventoryDevice, f RuntimeFilter) bool {
	if f.Name != "" && !containsFoldSubstr(d.DeviceName, f.Name) {
		return false
	}

	if f.Site != "" && !containsFoldSubstr(d.SiteCode, f.Site) {
		return false
	}

	if f.Vendor != "" && !containsFoldSubstr(d.Vendor, f.Vendor) {
		return false
	}

	if f.Role != "" && !containsFoldSubstr(string(d.DeviceRole), f.Role) {
		return false
	}

	if f.Model != "" && !containsFoldSubstr(d.Model, f.Model) {
		return false
	}

	if f.IP != "" && !containsFoldSubstr(d.IP, f.IP) {
		return false
	}

	if f.Legacy != "" && !matchesLegacy(d, f.Legacy) {
		return false
	}

	return true
}

func matchesLegacy(d models.InventoryDevice, term string) bool {
	fields := []string{
		d.DeviceName, d.Hostname, d.FQDN, d.IP, d.Vendor, d.Model,
		d.SerialNumber, d.OSVersion, d.SiteCode, string(d.DeviceRole),
	}

	for _, f := range fields {
		if containsFoldSubstr(f, term) {
			return true
		}
	}

	return false
}

func containsFoldSubstr(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
