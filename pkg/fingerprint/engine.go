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

package fingerprint

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

const (
	oidSysDescr = ".1.3.6.1.2.1.1.1.0"
	oidSysName  = ".1.3.6.1.2.1.1.5.0"

	definitivePatternScore = 90
	typeDefinitiveScore    = 100
	typeMandatoryScore     = 50
	typeOptionalScore      = 20
	priorityScoreMaxWeight = 100
	priorityScoreMultiplier = 5
)

// standardExtractionOIDs covers the ENTITY-MIB fields most vendors
// populate identically. Smart field extraction reads them directly, so
// they are consulted before the vendor's regex extraction rules.
var standardExtractionOIDs = map[string]string{
	".1.3.6.1.2.1.47.1.1.1.1.13.1": "model",
	".1.3.6.1.2.1.47.1.1.1.1.7.1":  "model",
	".1.3.6.1.2.1.47.1.1.1.1.11.1": "serial",
	".1.3.6.1.2.1.47.1.1.1.1.10.1": "firmware",
	".1.3.6.1.2.1.47.1.1.1.1.9.1":  "firmware",
}

// Engine runs the pure, deterministic classification algorithm against a
// fixed rules bundle.
type Engine struct {
	rules models.FingerprintRules
}

// NewEngine wraps a parsed rules bundle.
func NewEngine(rules models.FingerprintRules) *Engine {
	return &Engine{rules: rules}
}

// Fingerprint implements the spec §4.4 contract: fingerprint(facts) ->
// verdict. Stage 1 checks definitive OIDs in priority order; stage 2
// falls back to text pattern matching. Never returns an error — an
// unidentified device is itself a valid verdict (models.EmptyVerdict).
func (e *Engine) Fingerprint(facts models.FactSet) models.Verdict {
	if verdict, ok := e.definitiveOIDMatch(facts); ok {
		return verdict
	}

	return e.patternMatch(facts)
}

// definitiveOIDMatch is stage 1: every definitive OID for a vendor must
// be present in facts, and (if declared) its value must be in the
// vendor's expected-values list.
func (e *Engine) definitiveOIDMatch(facts models.FactSet) (models.Verdict, bool) {
	for _, vendorName := range e.rules.PriorityOrder {
		vendor, ok := e.rules.Vendors[vendorName]
		if !ok {
			continue
		}

		matchedNames, matchedOIDs, ok := matchDefinitiveOIDs(vendor, facts)
		if !ok {
			continue
		}

		model, serial, firmware := smartFieldExtraction(facts, vendor)

		haystack := strings.ToLower(strings.Join(matchedNames, " "))
		deviceType := determineDeviceType(vendor, haystack)

		if model == "" {
			model = extractField(vendor, "model", allFactText(facts), deviceType)
		}

		if serial == "" {
			serial = extractField(vendor, "serial", allFactText(facts), deviceType)
		}

		if firmware == "" {
			firmware = extractField(vendor, "firmware", allFactText(facts), deviceType)
		}

		resultType := deviceType
		if resultType == "unknown" {
			resultType = "device"
		}

		return models.Verdict{
			Vendor:       vendorName,
			DeviceType:   resultType,
			Model:        model,
			SerialNumber: serial,
			OSVersion:    firmware,
			Confidence:   100,
			Method:       models.DetectionDefinitiveOIDMatch,
			MatchedOIDs:  matchedOIDs,
		}, true
	}

	return models.Verdict{}, false
}

// matchDefinitiveOIDs returns every definitive OID of vendor when each
// one is present in facts (and matches expected-values when declared).
// ok is true only when the vendor declares at least one definitive OID
// and every one of them matched.
func matchDefinitiveOIDs(vendor models.VendorRule, facts models.FactSet) (names, oids []string, ok bool) {
	for _, fo := range vendor.FingerprintOIDs {
		if !fo.Definitive {
			continue
		}

		value, present := facts[fo.OID]
		if !present || value == "" {
			return nil, nil, false
		}

		if len(fo.ExpectedValues) > 0 && !containsFold(fo.ExpectedValues, value) {
			return nil, nil, false
		}

		names = append(names, strings.ToLower(fo.Name))
		oids = append(oids, fo.OID)
	}

	return names, oids, len(oids) > 0
}

// patternMatch is stage 2: lowercase text-haystack matching against each
// vendor's definitive/exclusion patterns, in priority order.
func (e *Engine) patternMatch(facts models.FactSet) models.Verdict {
	haystack := allFactText(facts)

	for _, vendorName := range e.rules.PriorityOrder {
		vendor, ok := e.rules.Vendors[vendorName]
		if !ok {
			continue
		}

		if verdict, matched := testVendor(vendorName, vendor, haystack); matched {
			return verdict
		}
	}

	return models.EmptyVerdict()
}

func testVendor(name string, vendor models.VendorRule, haystack string) (models.Verdict, bool) {
	for _, exclusion := range vendor.ExclusionPatterns {
		if strings.Contains(haystack, strings.ToLower(exclusion)) {
			return models.Verdict{}, false
		}
	}

	confidence := 0
	method := models.DetectionPatternMatch

	var matched []string

	definitiveHits := 0

	for _, pattern := range vendor.DefinitivePatterns {
		if strings.Contains(haystack, strings.ToLower(pattern)) {
			definitiveHits++
			matched = append(matched, pattern)
			confidence += definitivePatternScore
			method = models.DetectionDefinitivePatternMatch
		}
	}

	if len(vendor.DefinitivePatterns) > 0 && definitiveHits == 0 {
		return models.Verdict{}, false
	}

	if confidence == 0 {
		return models.Verdict{}, false
	}

	if confidence > 100 {
		confidence = 100
	}

	deviceType := determineDeviceType(vendor, haystack)
	model := extractField(vendor, "model", haystack, deviceType)
	serial := extractField(vendor, "serial", haystack, deviceType)
	firmware := extractField(vendor, "firmware", haystack, deviceType)

	return models.Verdict{
		Vendor:          name,
		DeviceType:      deviceType,
		Model:           model,
		SerialNumber:    serial,
		OSVersion:       firmware,
		Confidence:      confidence,
		Method:          method,
		MatchedPatterns: matched,
	}, true
}

// determineDeviceType scores every declared device type against the
// haystack and returns the highest scorer, ties broken by priority
// (earlier map iteration order is not relied on — score is the only
// input, with priority folded into the score itself).
func determineDeviceType(vendor models.VendorRule, haystack string) string {
	type scored struct {
		name     string
		score    int
		priority int
	}

	var candidates []scored

	for typeName, rule := range vendor.DeviceTypeRules {
		score := 0

		for _, pattern := range rule.DefinitivePatterns {
			if strings.Contains(haystack, strings.ToLower(pattern)) {
				score += typeDefinitiveScore
			}
		}

		mandatoryHits := 0

		for _, pattern := range rule.MandatoryPatterns {
			if strings.Contains(haystack, strings.ToLower(pattern)) {
				mandatoryHits++
				score += typeMandatoryScore
			}
		}

		if len(rule.MandatoryPatterns) > 0 && mandatoryHits == 0 {
			continue
		}

		for _, pattern := range rule.OptionalPatterns {
			if strings.Contains(haystack, strings.ToLower(pattern)) {
				score += typeOptionalScore
			}
		}

		priority := rule.Priority
		if priority == 0 {
			priority = 99
		}

		score += (priorityScoreMaxWeight - priority) * priorityScoreMultiplier

		candidates = append(candidates, scored{name: typeName, score: score, priority: priority})
	}

	if len(candidates) == 0 {
		return "unknown"
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].priority < candidates[j].priority
	})

	if candidates[0].score <= 0 {
		return "unknown"
	}

	return candidates[0].name
}

// extractField runs a vendor's regex extraction rules for field, in
// declared order, restricted to rules that either name no device types
// or include deviceType. First match wins.
func extractField(vendor models.VendorRule, field, haystack, deviceType string) string {
	for _, rule := range vendor.ExtractionRules[field] {
		if len(rule.DeviceTypes) > 0 && !contains(rule.DeviceTypes, deviceType) {
			continue
		}

		re, err := regexp.Compile("(?i)" + rule.Regex)
		if err != nil {
			continue
		}

		match := re.FindStringSubmatch(haystack)
		if match == nil || rule.CaptureGroup >= len(match) {
			continue
		}

		if extracted := strings.TrimSpace(match[rule.CaptureGroup]); extracted != "" {
			return extracted
		}
	}

	return ""
}

// smartFieldExtraction analyzes the fingerprint OID names declared for a
// vendor and matches them against keyword groups, then falls back to a
// fixed set of well-known ENTITY-MIB OIDs.
func smartFieldExtraction(facts models.FactSet, vendor models.VendorRule) (model, serial, firmware string) {
	oidName := make(map[string]string, len(vendor.FingerprintOIDs))
	for _, fo := range vendor.FingerprintOIDs {
		oidName[fo.OID] = strings.ToLower(fo.Name)
	}

	for oid, value := range facts {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		name := oidName[oid]

		switch {
		case model == "" && containsAny(name, "model", "product", "type"):
			model = value
		case serial == "" && containsAny(name, "serial", "serialnumber", "serial_number"):
			serial = value
		case firmware == "" && containsAny(name, "firmware", "version", "software", "os", "revision"):
			firmware = value
		}
	}

	for oid, field := range standardExtractionOIDs {
		value, present := facts[oid]
		if !present {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch field {
		case "model":
			if model == "" {
				model = value
			}
		case "serial":
			if serial == "" {
				serial = value
			}
		case "firmware":
			if firmware == "" {
				firmware = value
			}
		}
	}

	return model, serial, firmware
}

func allFactText(facts models.FactSet) string {
	var b strings.Builder

	b.WriteString(strings.ToLower(facts[oidSysDescr]))
	b.WriteString(" ")
	b.WriteString(strings.ToLower(facts[oidSysName]))

	for _, v := range facts {
		if v == "" {
			continue
		}

		b.WriteString(" ")
		b.WriteString(strings.ToLower(v))
	}

	return b.String()
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}

	return false
}

func containsFold(list []string, target string) bool {
	for _, v := range list {
		if strings.EqualFold(v, target) {
			return true
		}
	}

	return false
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}

	return false
}
