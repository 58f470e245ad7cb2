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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTrackerEmitsAtMilestonesAndInterval(t *testing.T) {
	var mu sync.Mutex
	var emittedAt []int

	tracker := newProgressTracker(10, func(e ProgressEvent) {
		mu.Lock()
		emittedAt = append(emittedAt, e.Completed)
		mu.Unlock()
	})

	for i := 0; i < 30; i++ {
		tracker.record(hostOutcome{tcpOK: true, succeeded: true})
	}

	assert.Equal(t, []int{1, 5, 10, 20, 25, 30}, emittedAt)
}

func TestProgressTrackerCountsByOutcome(t *testing.T) {
	tracker := newProgressTracker(1, nil)

	tracker.record(hostOutcome{tcpOK: true, snmpVer: "v3", succeeded: true})
	tracker.record(hostOutcome{tcpOK: true, snmpVer: "v2c", succeeded: true})
	tracker.record(hostOutcome{tcpOK: false, succeeded: false})

	snap := tracker.finalSnapshot()
	assert.Equal(t, 3, snap.Completed)
	assert.Equal(t, 2, snap.TCPOk)
	assert.Equal(t, 1, snap.SNMPOkV3)
	assert.Equal(t, 1, snap.SNMPOkV2c)
	assert.Equal(t, 1, snap.Failures)
}
