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
	"time"
)

// milestoneCompletions are the fixed completion counts spec §4.5 requires
// a progress event for, regardless of the configured emit interval.
var milestoneCompletions = map[int]bool{1: true, 5: true, 10: true, 25: true}

// ProgressEvent reports running scan totals. RatePerSec is computed from
// wall-clock elapsed time. No ETA is reported: the event carries no total
// host count, since the CIDR walk is streamed and never counted up front.
type ProgressEvent struct {
	Completed    int
	TCPOk        int
	SNMPOkV3     int
	SNMPOkV2c    int
	Failures     int
	ElapsedMS    int64
	RatePerSec   float64
}

// ProgressFunc receives progress events. Implementations must not block
// significantly — they run on the counting goroutine's critical path.
type ProgressFunc func(ProgressEvent)

// progressTracker accumulates per-host outcomes under a single mutex and
// decides when to emit, per spec §4.5 and §5 ("all shared counters
// updated under a single mutex ... progress emitter reads them under the
// same discipline").
type progressTracker struct {
	mu        sync.Mutex
	start     time.Time
	completed int
	tcpOK     int
	snmpV3    int
	snmpV2c   int
	failures  int
	emitEvery int
	onEvent   ProgressFunc
}

func newProgressTracker(emitEvery int, onEvent ProgressFunc) *progressTracker {
	if emitEvery <= 0 {
		emitEvery = 50
	}

	return &progressTracker{start: time.Now(), emitEvery: emitEvery, onEvent: onEvent}
}

type hostOutcome struct {
	tcpOK     bool
	snmpVer   string // "v3", "v2c", or "" for none
	succeeded bool
}

func (p *progressTracker) record(outcome hostOutcome) {
	p.mu.Lock()

	p.completed++

	if outcome.tcpOK {
		p.tcpOK++
	}

	switch outcome.snmpVer {
	case "v3":
		p.snmpV3++
	case "v2c":
		p.snmpV2c++
	}

	if !outcome.succeeded {
		p.failures++
	}

	completed := p.completed
	shouldEmit := milestoneCompletions[completed] || completed%p.emitEvery == 0

	var event ProgressEvent
	if shouldEmit {
		event = p.snapshotLocked()
	}

	p.mu.Unlock()

	if shouldEmit && p.onEvent != nil {
		p.onEvent(event)
	}
}

func (p *progressTracker) snapshotLocked() ProgressEvent {
	elapsed := time.Since(p.start)

	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(p.completed) / elapsed.Seconds()
	}

	return ProgressEvent{
		Completed:  p.completed,
		TCPOk:      p.tcpOK,
		SNMPOkV3:   p.snmpV3,
		SNMPOkV2c:  p.snmpV2c,
		Failures:   p.failures,
		ElapsedMS:  elapsed.Milliseconds(),
		RatePerSec: rate,
	}
}

// finalSnapshot returns the terminal progress event regardless of the
// milestone/interval schedule, so callers always see a last report.
func (p *progressTracker) finalSnapshot() ProgressEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshotLocked()
}
