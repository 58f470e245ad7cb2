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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceKeyIsDeterministicAndCaseInsensitive(t *testing.T) {
	a := DeviceKey("Cisco", "FXS12345", "C9300-48P")
	b := DeviceKey("cisco", "fxs12345", "c9300-48p")

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestDeviceKeyDiffersOnInput(t *testing.T) {
	a := DeviceKey("Cisco", "FXS12345", "C9300-48P")
	b := DeviceKey("Cisco", "FXS99999", "C9300-48P")

	assert.NotEqual(t, a, b)
}
