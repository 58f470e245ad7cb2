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
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// listInventoryDevicesSQL implements the IP-preference join (spec §4.8):
// for each device, prefer a management-typed IP, then any IP marked
// primary, then any non-virtual IP, in that order. A device with no
// resolvable IP under any of the three tiers is excluded. Every SQL filter
// is applied as "NOT $1::boolean OR ..." / "cardinality($n::text[]) = 0 OR
// ... = ANY($n)" so a caller passing a zero-value filter leaves that clause
// inert; the include-non-network filter is applied in Go after the scan.
const listInventoryDevicesSQL = `
SELECT
	d.device_key,
	d.device_name,
	d.hostname,
	d.fqdn,
	COALESCE(mgmt_ip.address, primary_ip.address, any_ip.address, '') AS ip,
	d.vendor,
	d.model,
	d.serial_number,
	d.os_version,
	d.site_code,
	d.device_role,
	d.first_discovered,
	d.last_updated,
	d.is_active
FROM inventory_devices d
LEFT JOIN LATERAL (
	SELECT address FROM device_ips
	WHERE device_key = d.device_key AND ip_type = 'management'
	ORDER BY address LIMIT 1
) mgmt_ip ON true
LEFT JOIN LATERAL (
	SELECT address FROM device_ips
	WHERE device_key = d.device_key AND is_primary
	ORDER BY address LIMIT 1
) primary_ip ON true
LEFT JOIN LATERAL (
	SELECT address FROM device_ips
	WHERE device_key = d.device_key AND NOT is_virtual
	ORDER BY address LIMIT 1
) any_ip ON true
WHERE (NOT $1::boolean OR d.is_active)
  AND (cardinality($2::text[]) = 0 OR d.site_code = ANY($2))
  AND (cardinality($3::text[]) = 0 OR d.device_role = ANY($3))
  AND (cardinality($4::text[]) = 0 OR d.vendor = ANY($4))
  AND (cardinality($5::text[]) = 0 OR NOT (d.model = ANY($5)))
  AND COALESCE(mgmt_ip.address, primary_ip.address, any_ip.address) IS NOT NULL
`

// Querier is the subset of *pgxpool.Pool the store source needs, so tests
// can substitute a fake without a live database.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (Rows, error)
}

// Rows is the subset of pgx.Rows the store source scans.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// poolQuerier adapts *pgxpool.Pool to Querier.
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (q poolQuerier) Query(ctx context.Context, sql string, args ...interface{}) (Rows, error) {
	return q.pool.Query(ctx, sql, args...)
}

// StoreSource lists devices from the inventory store (spec §4.8).
type StoreSource struct {
	q Querier
}

// NewStoreSource wraps a pgx connection pool.
func NewStoreSource(pool *pgxpool.Pool) *StoreSource {
	return &StoreSource{q: poolQuerier{pool: pool}}
}

// newStoreSourceWithQuerier is used by tests to inject a fake Querier.
func newStoreSourceWithQuerier(q Querier) *StoreSource {
	return &StoreSource{q: q}
}

// ListDevices implements Source.
func (s *StoreSource) ListDevices(ctx context.Context, filters Filters) ([]models.InventoryDevice, error) {
	roles := make([]string, len(filters.DeviceRoles))
	for i, r := range filters.DeviceRoles {
		roles[i] = string(r)
	}

	rows, err := s.q.Query(ctx, listInventoryDevicesSQL,
		filters.ActiveOnly,
		filters.SiteCodes,
		roles,
		filters.Vendors,
		filters.ExcludeModels,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory devices: %w", err)
	}
	defer rows.Close()

	var out []models.InventoryDevice

	for rows.Next() {
		var d models.InventoryDevice
		var role string

		if err := rows.Scan(
			&d.DeviceKey,
			&d.DeviceName,
			&d.Hostname,
			&d.FQDN,
			&d.IP,
			&d.Vendor,
			&d.Model,
			&d.SerialNumber,
			&d.OSVersion,
			&d.SiteCode,
			&role,
			&d.FirstDiscovered,
			&d.LastUpdated,
			&d.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan inventory device: %w", err)
		}

		d.DeviceRole = models.DeviceRole(role)

		if !filters.IncludeNonNetwork && !networkRoles[d.DeviceRole] {
			continue
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory devices: %w", err)
	}

	return out, nil
}
