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

	"github.com/scottpeterman/rapidcmdb/pkg/logger"
	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// v3Config mirrors models.SNMPv3Credentials with JSON tags; nil in the
// parsed Config when no v3 credential is configured.
type v3Config struct {
	Username     string `json:"username"`
	AuthProtocol string `json:"auth_protocol"`
	AuthPassword string `json:"auth_password"`
	PrivProtocol string `json:"priv_protocol"`
	PrivPassword string `json:"priv_password"`
}

func (v *v3Config) toCredential() *models.SNMPv3Credentials {
	if v == nil {
		return nil
	}

	return &models.SNMPv3Credentials{
		Username:     v.Username,
		AuthProtocol: models.SNMPAuthProtocol(v.AuthProtocol),
		AuthPassword: v.AuthPassword,
		PrivProtocol: models.SNMPPrivProtocol(v.PrivProtocol),
		PrivPassword: v.PrivPassword,
	}
}

// Config is the scanner entry point's JSON configuration document,
// overlaid with environment variables under the RAPIDCMDB_SCANNER_
// prefix (spec §4.5, §6).
type Config struct {
	CIDR        string `json:"cidr"`
	ScanID      string `json:"scan_id"`
	Concurrency int    `json:"concurrency"`

	ProbePorts          []int   `json:"probe_ports"`
	ProbeTimeoutSeconds float64 `json:"probe_timeout_seconds"`

	SNMPPort           int     `json:"snmp_port"`
	SNMPTimeoutSeconds float64 `json:"snmp_timeout_seconds"`
	SNMPRetries        int     `json:"snmp_retries"`

	V3          *v3Config `json:"snmp_v3"`
	V2cEnabled  bool      `json:"snmp_v2c_enabled"`
	Communities []string  `json:"snmp_v2c_communities"`

	RulesPath  string `json:"rules_path"`
	OutputPath string `json:"output_path"`

	ProgressEvery int `json:"progress_every"`

	Logging *logger.Config `json:"logging"`
}

// validate checks the settings the core cannot proceed without (spec §7
// config_invalid): these abort the run with exit code 1 before any
// scanning starts.
func (c *Config) validate() error {
	if c.CIDR == "" {
		return fmt.Errorf("cidr is required")
	}

	if c.RulesPath == "" {
		return fmt.Errorf("rules_path is required")
	}

	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}

	return nil
}

func (c *Config) credentials() models.SNMPCredentials {
	return models.SNMPCredentials{
		V3:          c.V3.toCredential(),
		V2cEnabled:  c.V2cEnabled,
		Communities: c.Communities,
	}
}
