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

package snmpclient

import "errors"

// ErrAuthFailed is the snmp_auth_failed taxonomy label (spec §7): every
// credential (v3, then each v2c community) failed to answer the probe
// OIDs. Not fatal to a scan run — the host is classified "responsive, no
// SNMP" and the scanner moves on.
var ErrAuthFailed = errors.New("snmp_auth_failed")

// ErrUnsupportedVersion is returned when credentials name neither a v3
// user nor any v2c community.
var ErrUnsupportedVersion = errors.New("snmp_no_credentials")
