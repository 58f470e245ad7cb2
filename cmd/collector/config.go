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

package main

import (
	"fmt"

	"github.com/scottpeterman/rapidcmdb/pkg/driver"
	"github.com/scottpeterman/rapidcmdb/pkg/logger"
)

// driverOverride is one {vendor}_{model-substring} -> driver mapping
// (spec §4.3 layer 1).
type driverOverride struct {
	Vendor     string `json:"vendor"`
	Model      string `json:"model"`
	DriverName string `json:"driver_name"`
}

// driverHeuristic is one vendor/model-or-sysdescr-substring -> driver
// mapping (spec §4.3 layer 2).
type driverHeuristic struct {
	Vendor     string `json:"vendor"`
	Contains   string `json:"contains"`
	DriverName string `json:"driver_name"`
}

// Config is the collector entry point's JSON configuration document,
// overlaid with environment variables under the RAPIDCMDB_COLLECTOR_
// prefix.
type Config struct {
	// InventorySource selects which pkg/inventory.Source to build:
	// "scan-file" or "store".
	InventorySource string `json:"inventory_source"`
	ScanFilePath    string `json:"scan_file_path"`
	StoreDSN        string `json:"store_dsn"`

	MinConfidence     int      `json:"min_confidence"`
	Vendors           []string `json:"vendors"`
	DeviceTypes       []string `json:"device_types"`
	SiteCodes         []string `json:"site_codes"`
	ActiveOnly        bool     `json:"active_only"`
	DeviceRoles       []string `json:"device_roles"`
	ExcludeModels     []string `json:"exclude_models"`
	IncludeNonNetwork bool     `json:"include_non_network"`

	Workers             int      `json:"workers"`
	EnabledMethods      []string `json:"enabled_methods"`
	UseCache            bool     `json:"use_cache"`
	CredentialEnvPrefix string   `json:"credential_env_prefix"`
	MasterPassword      string   `json:"master_password"`

	DriverOverrides  []driverOverride  `json:"driver_overrides"`
	DriverHeuristics []driverHeuristic `json:"driver_heuristics"`
	DriverDefaults   map[string]string `json:"driver_defaults"`

	OutputDir string `json:"output_dir"`

	Logging *logger.Config `json:"logging"`
}

// validate checks the settings the core cannot proceed without (spec §7
// config_invalid).
func (c *Config) validate() error {
	switch c.InventorySource {
	case "scan-file":
		if c.ScanFilePath == "" {
			return fmt.Errorf("scan_file_path is required for inventory_source=scan-file")
		}
	case "store":
		if c.StoreDSN == "" {
			return fmt.Errorf("store_dsn is required for inventory_source=store")
		}
	default:
		return fmt.Errorf("inventory_source must be \"scan-file\" or \"store\", got %q", c.InventorySource)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.CredentialEnvPrefix == "" {
		return fmt.Errorf("credential_env_prefix is required")
	}

	return nil
}

func (c *Config) enabledMethodSet() map[string]bool {
	if len(c.EnabledMethods) == 0 {
		return nil
	}

	set := make(map[string]bool, len(c.EnabledMethods))
	for _, m := range c.EnabledMethods {
		set[m] = true
	}

	return set
}

func (c *Config) buildRegistry() *driver.Registry {
	reg := driver.NewRegistry()

	for _, o := range c.DriverOverrides {
		reg.Overrides[driver.OverrideKey(o.Vendor, o.Model)] = o.DriverName
	}

	for _, h := range c.DriverHeuristics {
		reg.Heuristics = append(reg.Heuristics, driver.Heuristic{
			Vendor:     h.Vendor,
			Contains:   h.Contains,
			DriverName: h.DriverName,
		})
	}

	for vendor, name := range c.DriverDefaults {
		reg.Defaults[vendor] = name
	}

	return reg
}
