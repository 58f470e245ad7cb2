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

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestSummarizeCountsSuccessAndFailure(t *testing.T) {
	runs := []RunInput{
		{Run: models.CollectionRun{Success: true, DurationSeconds: 2}, Vendor: "cisco", DeviceType: "switch"},
		{Run: models.CollectionRun{Success: false, DurationSeconds: 1}, Vendor: "cisco", DeviceType: "switch"},
		{Run: models.CollectionRun{Success: true, DurationSeconds: 3}, Vendor: "arista", DeviceType: "router"},
	}

	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ended := started.Add(10 * time.Second)

	summary := Summarize(runs, started, ended)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 2.0/3.0, summary.SuccessRate, 0.0001)
	assert.InDelta(t, 2.0, summary.AvgDeviceDuration, 0.0001)
	assert.Equal(t, 10.0, summary.DurationSeconds)
}

func TestSummarizeBreakdownsByVendorAndDeviceType(t *testing.T) {
	runs := []RunInput{
		{Run: models.CollectionRun{Success: true}, Vendor: "cisco", DeviceType: "switch"},
		{Run: models.CollectionRun{Success: true}, Vendor: "cisco", DeviceType: "router"},
		{Run: models.CollectionRun{Success: true}, Vendor: "", DeviceType: ""},
	}

	summary := Summarize(runs, time.Now(), time.Now())

	assert.Equal(t, 2, summary.VendorBreakdown["cisco"])
	assert.Equal(t, 1, summary.VendorBreakdown["unknown"])
	assert.Equal(t, 1, summary.DeviceTypeBreakdown["switch"])
	assert.Equal(t, 1, summary.DeviceTypeBreakdown["router"])
	assert.Equal(t, 1, summary.DeviceTypeBreakdown["unknown"])
}

func TestSummarizeCredentialBreakdownSkipsEmpty(t *testing.T) {
	runs := []RunInput{
		{Run: models.CollectionRun{CredentialUsed: "admin_creds"}},
		{Run: models.CollectionRun{CredentialUsed: "admin_creds"}},
		{Run: models.CollectionRun{CredentialUsed: ""}},
	}

	summary := Summarize(runs, time.Now(), time.Now())

	assert.Equal(t, 2, summary.CredentialBreakdown["admin_creds"])
	assert.Len(t, summary.CredentialBreakdown, 1)
}

func TestSummarizeMethodStatisticsAggregatesAcrossRuns(t *testing.T) {
	runs := []RunInput{
		{Run: models.CollectionRun{MethodsCollected: []models.MethodResult{
			{Name: "get_facts", Duration: 1.0, Bytes: 100, Success: true},
			{Name: "get_config", Duration: 2.0, Bytes: 500, Success: true},
		}}},
		{Run: models.CollectionRun{MethodsCollected: []models.MethodResult{
			{Name: "get_facts", Duration: 3.0, Bytes: 120, Success: true},
		}}},
	}

	summary := Summarize(runs, time.Now(), time.Now())

	facts := summary.MethodStatistics["get_facts"]
	assert.Equal(t, 2, facts.SuccessCount)
	assert.InDelta(t, 4.0, facts.TotalDuration, 0.0001)
	assert.InDelta(t, 2.0, facts.AvgDuration, 0.0001)
	assert.Equal(t, 220, facts.Bytes)

	config := summary.MethodStatistics["get_config"]
	assert.Equal(t, 1, config.SuccessCount)
	assert.InDelta(t, 2.0, config.AvgDuration, 0.0001)
}

func TestSummarizeEmptyRunsProducesZeroValues(t *testing.T) {
	summary := Summarize(nil, time.Now(), time.Now())

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.SuccessRate)
	assert.Equal(t, 0.0, summary.AvgDeviceDuration)
	assert.Empty(t, summary.VendorBreakdown)
}
