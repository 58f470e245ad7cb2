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

// Package fingerprint implements the deterministic, pure vendor/device-type
// classification engine (spec §4.4), driven by a YAML rules bundle.
package fingerprint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// rawRules mirrors the YAML document shape; it is converted into
// models.FingerprintRules so the rest of the package never touches
// yaml-tagged types.
type rawRules struct {
	DetectionRules struct {
		PriorityOrder []string `yaml:"priority_order"`
	} `yaml:"detection_rules"`
	CommonOIDs map[string]string     `yaml:"common_oids"`
	Vendors    map[string]rawVendor `yaml:"vendors"`
}

type rawVendor struct {
	EnterpriseOID      string                       `yaml:"enterprise_oid"`
	DeviceTypes        []string                     `yaml:"device_types"`
	FingerprintOIDs    []rawFingerprintOID          `yaml:"fingerprint_oids"`
	DefinitivePatterns []string                     `yaml:"definitive_patterns"`
	ExclusionPatterns  []string                     `yaml:"exclusion_patterns"`
	DeviceTypeRules    map[string]rawDeviceTypeRule `yaml:"device_type_rules"`
	ModelExtraction    []rawExtractionRule          `yaml:"model_extraction"`
	SerialExtraction   []rawExtractionRule          `yaml:"serial_extraction"`
	FirmwareExtraction []rawExtractionRule          `yaml:"firmware_extraction"`
}

type rawFingerprintOID struct {
	OID            string   `yaml:"oid"`
	Name           string   `yaml:"name"`
	Priority       int      `yaml:"priority"`
	Definitive     bool     `yaml:"definitive"`
	ExpectedValues []string `yaml:"expected_values"`
}

type rawDeviceTypeRule struct {
	DefinitivePatterns []string `yaml:"definitive_patterns"`
	MandatoryPatterns  []string `yaml:"mandatory_patterns"`
	OptionalPatterns   []string `yaml:"optional_patterns"`
	Priority           int      `yaml:"priority"`
}

type rawExtractionRule struct {
	Regex        string   `yaml:"regex"`
	CaptureGroup int      `yaml:"capture_group"`
	DeviceTypes  []string `yaml:"device_types"`
}

// LoadRules reads and parses a fingerprint rules YAML file at path.
func LoadRules(path string) (models.FingerprintRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FingerprintRules{}, fmt.Errorf("read fingerprint rules %q: %w", path, err)
	}

	return ParseRules(data)
}

// ParseRules parses an in-memory YAML fingerprint rules document. Exposed
// separately from LoadRules so callers can embed or generate rules
// without touching the filesystem.
func ParseRules(data []byte) (models.FingerprintRules, error) {
	var raw rawRules

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return models.FingerprintRules{}, fmt.Errorf("parse fingerprint rules: %w", err)
	}

	rules := models.FingerprintRules{
		CommonOIDs:    raw.CommonOIDs,
		PriorityOrder: raw.DetectionRules.PriorityOrder,
		Vendors:       make(map[string]models.VendorRule, len(raw.Vendors)),
	}

	for name, v := range raw.Vendors {
		rules.Vendors[name] = convertVendor(v)
	}

	return rules, nil
}

func convertVendor(v rawVendor) models.VendorRule {
	out := models.VendorRule{
		EnterpriseOID:      v.EnterpriseOID,
		DeviceTypes:        v.DeviceTypes,
		DefinitivePatterns: v.DefinitivePatterns,
		ExclusionPatterns:  v.ExclusionPatterns,
		DeviceTypeRules:    make(map[string]models.DeviceTypeRule, len(v.DeviceTypeRules)),
		ExtractionRules:    make(map[string][]models.ExtractionRule, 3),
	}

	for _, oid := range v.FingerprintOIDs {
		out.FingerprintOIDs = append(out.FingerprintOIDs, models.FingerprintOID{
			OID:            oid.OID,
			Name:           oid.Name,
			Priority:       oid.Priority,
			Definitive:     oid.Definitive,
			ExpectedValues: oid.ExpectedValues,
		})
	}

	for typeName, rule := range v.DeviceTypeRules {
		out.DeviceTypeRules[typeName] = models.DeviceTypeRule{
			DefinitivePatterns: rule.DefinitivePatterns,
			MandatoryPatterns:  rule.MandatoryPatterns,
			OptionalPatterns:   rule.OptionalPatterns,
			Priority:           rule.Priority,
		}
	}

	out.ExtractionRules["model"] = convertExtractionRules(v.ModelExtraction)
	out.ExtractionRules["serial"] = convertExtractionRules(v.SerialExtraction)
	out.ExtractionRules["firmware"] = convertExtractionRules(v.FirmwareExtraction)

	return out
}

func convertExtractionRules(rules []rawExtractionRule) []models.ExtractionRule {
	out := make([]models.ExtractionRule, 0, len(rules))

	for _, r := range rules {
		captureGroup := r.CaptureGroup
		if captureGroup == 0 {
			captureGroup = 1
		}

		out = append(out, models.ExtractionRule{
			Regex:        r.Regex,
			CaptureGroup: captureGroup,
			DeviceTypes:  r.DeviceTypes,
		})
	}

	return out
}

// PriorityFingerprintOIDs returns OIDs worth including in the SNMP
// priority batch: definitive OIDs, or any OID at priority 1-2.
func PriorityFingerprintOIDs(rules models.FingerprintRules) []string {
	seen := make(map[string]bool)

	var out []string

	for _, vendor := range rules.Vendors {
		for _, oid := range vendor.FingerprintOIDs {
			if !oid.Definitive && oid.Priority > 2 {
				continue
			}

			if seen[oid.OID] {
				continue
			}

			seen[oid.OID] = true

			out = append(out, oid.OID)
		}
	}

	return out
}

// AllFingerprintOIDs returns every fingerprint OID named across all
// vendors, for the best-effort extended collection pass.
func AllFingerprintOIDs(rules models.FingerprintRules) []string {
	seen := make(map[string]bool)

	var out []string

	for _, vendor := range rules.Vendors {
		for _, oid := range vendor.FingerprintOIDs {
			if seen[oid.OID] {
				continue
			}

			seen[oid.OID] = true

			out = append(out, oid.OID)
		}
	}

	return out
}
