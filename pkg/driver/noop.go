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

package driver

import (
	"context"
	"errors"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// ErrNoOpener is returned by NoopOpener for every call. The core treats
// the NAPALM-style transport library as an injected capability it never
// ships (spec §1 Non-goals); NoopOpener is the default wired into the
// collector entry point until a real Opener is substituted.
var ErrNoOpener = errors.New("no device driver transport configured")

// NoopOpener implements Opener by always failing, so the collector
// binary links and runs end-to-end (credential fallback exhausts and the
// run summary records session_open_failed for every device) without a
// concrete protocol transport wired in.
type NoopOpener struct{}

// Open implements Opener.
func (NoopOpener) Open(_ context.Context, _, _ string, _ models.Credential, _ Options) (Session, error) {
	return nil, ErrNoOpener
}
