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

// Package driver defines the device-driver capability the collector
// consumes (spec §4.3): a uniform open/call/close contract over
// vendor-specific transports. rapidcmdb ships no concrete transport
// implementation — drivers are registered by the embedding application.
package driver

import (
	"context"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// Session is one open connection to a device, selected and opened by a
// Registry. Implementations hold their own transport (SSH, HTTP API, ...).
type Session interface {
	// Call invokes one named collection method (e.g. "get_facts",
	// "get_config", "get_arp_table") and returns its structured,
	// method-specific result.
	Call(ctx context.Context, method string) (interface{}, error)

	// Close releases the underlying transport. Safe to call more than
	// once.
	Close() error
}

// Options carries driver-specific connection options plus the elevated
// (enable) secret, when the selected credential has one.
type Options struct {
	ElevatedSecret string
	Extra          map[string]string
}

// Opener opens a Session for one registered driver name.
type Opener interface {
	Open(ctx context.Context, driverName, host string, cred models.Credential, opts Options) (Session, error)
}

// MethodOrder is the fixed collection-method surface the core will call
// (spec §4.3). get_facts always runs first; callers enable a subset and
// the collector sorts the remainder for determinism (see
// orderedMethods in pkg/collector).
var MethodOrder = []string{
	"get_facts",
	"get_config",
	"get_interfaces",
	"get_interfaces_ip",
	"get_arp_table",
	"get_mac_address_table",
	"get_lldp_neighbors",
	"get_environment",
	"get_users",
	"get_optics",
	"get_network_instances",
	"get_route_to",
	"get_vlans",
}
