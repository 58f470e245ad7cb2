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

// Package stats aggregates a completed collection run into the summary
// document of spec §4.9: this is a distinct aggregation from the
// scan-file's own embedded statistics block (pkg/scanner's
// finalizeStatistics), one level up — over collection runs, not scan
// sessions.
package stats

import (
	"time"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// RunInput pairs one device's collection run with the vendor/device-type
// metadata needed for the per-vendor/per-type breakdowns; CollectionRun
// itself carries neither field (spec §3's schema is fixed to device-id/
// driver/credential).
type RunInput struct {
	Run        models.CollectionRun
	Vendor     string
	DeviceType string
}

// Summarize computes the spec §4.9 aggregate document over every run in
// runs. started/ended are the wall-clock bounds of the whole collection
// call, which may exceed the sum of per-device durations (worker-pool
// concurrency, session open/close overhead).
func Summarize(runs []RunInput, started, ended time.Time) models.CollectionSummary {
	summary := models.CollectionSummary{
		VendorBreakdown:     make(map[string]int),
		DeviceTypeBreakdown: make(map[string]int),
		CredentialBreakdown: make(map[string]int),
		MethodStatistics:    make(map[string]models.MethodStatistics),
		StartedAt:           started,
		EndedAt:             ended,
		DurationSeconds:     ended.Sub(started).Seconds(),
	}

	var durationSum float64

	for _, ri := range runs {
		run := ri.Run

		summary.Total++
		durationSum += run.DurationSeconds

		if run.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}

		vendor := ri.Vendor
		if vendor == "" {
			vendor = "unknown"
		}
		summary.VendorBreakdown[vendor]++

		deviceType := ri.DeviceType
		if deviceType == "" {
			deviceType = "unknown"
		}
		summary.DeviceTypeBreakdown[deviceType]++

		if run.CredentialUsed != "" {
			summary.CredentialBreakdown[run.CredentialUsed]++
		}

		for _, m := range run.MethodsCollected {
			entry := summary.MethodStatistics[m.Name]
			entry.SuccessCount++
			entry.TotalDuration += m.Duration
			entry.Bytes += m.Bytes
			summary.MethodStatistics[m.Name] = entry
		}
	}

	if summary.Total > 0 {
		summary.SuccessRate = float64(summary.Successful) / float64(summary.Total)
		summary.AvgDeviceDuration = durationSum / float64(summary.Total)
	}

	for name, entry := range summary.MethodStatistics {
		if entry.SuccessCount > 0 {
			entry.AvgDuration = entry.TotalDuration / float64(entry.SuccessCount)
		}
		summary.MethodStatistics[name] = entry
	}

	return summary
}
