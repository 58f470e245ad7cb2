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

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestBuildDeviceRecordInvariants(t *testing.T) {
	verdict := models.Verdict{Vendor: "cisco", DeviceType: "switch", Confidence: 100, Method: models.DetectionDefinitiveOIDMatch}
	result := models.SNMPCollectResult{
		Facts:    models.FactSet{".1.3.6.1.2.1.1.1.0": "Cisco IOS"},
		Metadata: models.SNMPMetadata{VersionSuccessful: models.SNMPVersionV2c},
	}

	record := buildDeviceRecord("10.0.0.1", "Cisco IOS", "sw01", verdict, result, "scan-123")

	assert.Equal(t, "host_sw01", record.ID)
	assert.Contains(t, record.AllIPs, record.PrimaryIP)
	assert.Equal(t, 1, record.ScanCount)
	assert.Equal(t, "scan-123", record.LastScanID)
}

func TestMergeDeviceAccumulatesAcrossScans(t *testing.T) {
	scanFile := models.NewScanFile()

	first := buildDeviceRecord("10.0.0.1", "Cisco IOS", "sw01", models.Verdict{Vendor: "cisco", DeviceType: "switch"},
		models.SNMPCollectResult{Facts: models.FactSet{"a": "1"}}, "scan-1")
	mergeDevice(scanFile, first)

	second := buildDeviceRecord("10.0.0.2", "Cisco IOS", "sw01", models.Verdict{Vendor: "cisco", DeviceType: "switch"},
		models.SNMPCollectResult{Facts: models.FactSet{"a": "2"}}, "scan-2")
	mergeDevice(scanFile, second)

	require.Len(t, scanFile.Devices, 1)

	merged := scanFile.Devices["host_sw01"]
	assert.Equal(t, 2, merged.ScanCount)
	assert.ElementsMatch(t, []string{"10.0.0.1", "10.0.0.2"}, merged.AllIPs)
	assert.Equal(t, "scan-2", merged.LastScanID)
	assert.Len(t, merged.SNMPDataByIP, 2)
}

func TestPrimaryIPAlwaysInAllIPs(t *testing.T) {
	record := buildDeviceRecord("10.0.0.9", "descr", "", models.Verdict{}, models.SNMPCollectResult{Facts: models.FactSet{}}, "scan-1")
	assert.Contains(t, record.AllIPs, record.PrimaryIP)
}
