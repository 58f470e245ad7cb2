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
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/scottpeterman/rapidcmdb/pkg/fingerprint"
	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// ScanFileSource lists devices out of a parsed scan document (spec §6):
// one device per DeviceRecord entry, filtered by minimum confidence,
// vendor set, device-type set, and a site-code set derived from each
// device's SysName.
type ScanFileSource struct {
	file models.ScanFile
}

// NewScanFileSource wraps an already-parsed scan file.
func NewScanFileSource(file models.ScanFile) *ScanFileSource {
	return &ScanFileSource{file: file}
}

// LoadScanFileSource reads and parses a scan document from path.
func LoadScanFileSource(path string) (*ScanFileSource, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scan file: %w", err)
	}

	var file models.ScanFile
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("parse scan file: %w", err)
	}

	return &ScanFileSource{file: file}, nil
}

// ListDevices implements Source.
func (s *ScanFileSource) ListDevices(_ context.Context, filters Filters) ([]models.InventoryDevice, error) {
	out := make([]models.InventoryDevice, 0, len(s.file.Devices))

	for _, rec := range s.file.Devices {
		if rec.Confidence < filters.MinConfidence {
			continue
		}

		if len(filters.Vendors) > 0 && !containsFold(filters.Vendors, rec.Vendor) {
			continue
		}

		if len(filters.DeviceTypes) > 0 && !containsFold(filters.DeviceTypes, rec.DeviceType) {
			continue
		}

		siteCode := ExtractSiteCode(rec.SysName)
		if len(filters.SiteCodes) > 0 && !containsFold(filters.SiteCodes, siteCode) {
			continue
		}

		out = append(out, deviceFromRecord(rec, siteCode))
	}

	return out, nil
}

func deviceFromRecord(rec *models.DeviceRecord, siteCode string) models.InventoryDevice {
	return models.InventoryDevice{
		DeviceKey:       fingerprint.DeviceKey(rec.Vendor, rec.SerialNumber, rec.Model),
		DeviceName:      rec.SysName,
		Hostname:        rec.SysName,
		IP:              rec.PrimaryIP,
		Vendor:          rec.Vendor,
		Model:           rec.Model,
		SerialNumber:    rec.SerialNumber,
		OSVersion:       rec.OSVersion,
		SiteCode:        siteCode,
		DeviceRole:      models.RoleUnknown,
		FirstDiscovered: rec.FirstSeen,
		LastUpdated:     rec.LastSeen,
		IsActive:        true,
	}
}
