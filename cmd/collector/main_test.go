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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestInventoryFiltersConvertsDeviceRoles(t *testing.T) {
	cfg := &Config{
		MinConfidence:     60,
		Vendors:           []string{"cisco"},
		DeviceTypes:       []string{"switch"},
		SiteCodes:         []string{"NYC"},
		ActiveOnly:        true,
		DeviceRoles:       []string{"switch", "router"},
		ExcludeModels:     []string{"virtual"},
		IncludeNonNetwork: false,
	}

	filters := inventoryFilters(cfg)

	assert.Equal(t, 60, filters.MinConfidence)
	assert.Equal(t, []string{"cisco"}, filters.Vendors)
	assert.Equal(t, []string{"switch"}, filters.DeviceTypes)
	assert.Equal(t, []string{"NYC"}, filters.SiteCodes)
	assert.True(t, filters.ActiveOnly)
	assert.Equal(t, []models.DeviceRole{models.RoleSwitch, models.RoleRouter}, filters.DeviceRoles)
	assert.Equal(t, []string{"virtual"}, filters.ExcludeModels)
	assert.False(t, filters.IncludeNonNetwork)
}

func TestInventoryFiltersEmptyDeviceRoles(t *testing.T) {
	cfg := &Config{}

	filters := inventoryFilters(cfg)

	assert.Empty(t, filters.DeviceRoles)
}

func TestBuildInventorySourceRejectsUnknownSource(t *testing.T) {
	cfg := &Config{InventorySource: "carrier-pigeon"}

	_, _, err := buildInventorySource(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown inventory_source")
}
