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

// Package probe implements the TCP reachability probe (spec §4.1): a
// fast, parallel TCP-connect sweep against a fixed port list used to
// pre-filter candidates before the much more expensive SNMP exchange.
package probe

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/scottpeterman/rapidcmdb/pkg/logger"
)

// DefaultPorts is the port set spec §4.1 chose so that any common network
// device, printer, or server responds to at least one.
var DefaultPorts = []int{20, 21, 22, 25, 53, 80, 161, 443, 515, 631, 993, 995, 9100}

// DefaultTimeout is the per-port connect timeout (spec §5).
const DefaultTimeout = 2 * time.Second

// Prober issues parallel TCP-connect attempts against a host's port list.
type Prober struct {
	ports   []int
	timeout time.Duration
	logger  logger.Logger
}

// New builds a Prober. A nil/empty ports list disables the probe: Probe
// always returns true for it (spec §4.1 — "a port list of length 0 yields
// true").
func New(ports []int, timeout time.Duration, log logger.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Prober{ports: ports, timeout: timeout, logger: log}
}

// Probe returns true on the first successful 3-way handshake against any
// configured port, closing every other in-flight socket immediately. It
// returns false only once every port has failed or timed out.
func (p *Prober) Probe(ctx context.Context, address string) bool {
	if len(p.ports) == 0 {
		return true
	}

	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan struct{}, len(p.ports))

	var wg sync.WaitGroup

	for _, port := range p.ports {
		wg.Add(1)

		go func(port int) {
			defer wg.Done()

			if p.dial(probeCtx, address, port) {
				select {
				case found <- struct{}{}:
				default:
				}

				cancel()
			}
		}(port)
	}

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-found:
		return true
	case <-done:
		select {
		case <-found:
			return true
		default:
			return false
		}
	}
}

func (p *Prober) dial(ctx context.Context, address string, port int) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var dialer net.Dialer

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		if p.logger != nil {
			p.logger.Debug().Str("address", address).Int("port", port).Err(err).Msg("probe port unreachable")
		}

		return false
	}

	_ = conn.Close()

	return true
}
