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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidateRequiresScanFilePath(t *testing.T) {
	cfg := Config{InventorySource: "scan-file", OutputDir: "out", CredentialEnvPrefix: "RAPIDCMDB_CRED"}

	err := cfg.validate()
	assert.ErrorContains(t, err, "scan_file_path")
}

func TestConfigValidateRequiresStoreDSN(t *testing.T) {
	cfg := Config{InventorySource: "store", OutputDir: "out", CredentialEnvPrefix: "RAPIDCMDB_CRED"}

	err := cfg.validate()
	assert.ErrorContains(t, err, "store_dsn")
}

func TestConfigValidateRejectsUnknownInventorySource(t *testing.T) {
	cfg := Config{InventorySource: "carrier-pigeon"}

	err := cfg.validate()
	assert.ErrorContains(t, err, "inventory_source")
}

func TestConfigValidateRequiresOutputDir(t *testing.T) {
	cfg := Config{InventorySource: "scan-file", ScanFilePath: "scan.json", CredentialEnvPrefix: "RAPIDCMDB_CRED"}

	err := cfg.validate()
	assert.ErrorContains(t, err, "output_dir")
}

func TestConfigValidateRequiresCredentialEnvPrefix(t *testing.T) {
	cfg := Config{InventorySource: "scan-file", ScanFilePath: "scan.json", OutputDir: "out"}

	err := cfg.validate()
	assert.ErrorContains(t, err, "credential_env_prefix")
}

func TestConfigValidateAcceptsCompleteScanFileConfig(t *testing.T) {
	cfg := Config{
		InventorySource:     "scan-file",
		ScanFilePath:        "scan.json",
		OutputDir:           "out",
		CredentialEnvPrefix: "RAPIDCMDB_CRED",
	}

	assert.NoError(t, cfg.validate())
}

func TestEnabledMethodSetEmptyReturnsNil(t *testing.T) {
	cfg := Config{}

	assert.Nil(t, cfg.enabledMethodSet())
}

func TestEnabledMethodSetBuildsLookup(t *testing.T) {
	cfg := Config{EnabledMethods: []string{"get_facts", "get_config"}}

	set := cfg.enabledMethodSet()

	assert.True(t, set["get_facts"])
	assert.True(t, set["get_config"])
	assert.False(t, set["get_interfaces"])
}

func TestBuildRegistryWiresOverridesHeuristicsAndDefaults(t *testing.T) {
	cfg := Config{
		DriverOverrides: []driverOverride{
			{Vendor: "Cisco", Model: "Nexus", DriverName: "nxos-override"},
		},
		DriverHeuristics: []driverHeuristic{
			{Vendor: "cisco", Contains: "nx-os", DriverName: "nxos"},
		},
		DriverDefaults: map[string]string{"cisco": "ios"},
	}

	reg := cfg.buildRegistry()

	assert.Equal(t, "nxos-override", reg.Select("cisco", "Nexus 9300", ""))
	assert.Equal(t, "nxos", reg.Select("cisco", "unrelated model", "running nx-os"))
	assert.Equal(t, "ios", reg.Select("cisco", "unrelated model", "unrelated descr"))
}
