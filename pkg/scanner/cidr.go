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
	"context"
	"fmt"
	"net"
)

// ExpandCIDR streams every host address in cidr on the returned channel,
// network and broadcast addresses excluded for IPv4 prefixes of /30 and
// shorter (spec §3 CIDR target). It never materializes the full range — a
// /8 walks one address at a time — and stops early if ctx is cancelled.
func ExpandCIDR(ctx context.Context, cidr string) (<-chan string, error) {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}

	out := make(chan string)

	go func() {
		defer close(out)

		cur := ip.Mask(ipNet.Mask)
		isIPv4 := cur.To4() != nil

		ones, bits := ipNet.Mask.Size()
		hostBits := bits - ones

		for ipNet.Contains(cur) {
			if ctx.Err() != nil {
				return
			}

			if !(isIPv4 && hostBits >= 2 && (isNetworkAddress(cur, ipNet) || isBroadcastAddress(cur, ipNet))) {
				select {
				case out <- cur.String():
				case <-ctx.Done():
					return
				}
			}

			cur = nextIP(cur)
			if cur == nil {
				return
			}
		}
	}()

	return out, nil
}

func isNetworkAddress(ip net.IP, ipNet *net.IPNet) bool {
	return ip.Equal(ipNet.IP.Mask(ipNet.Mask))
}

func isBroadcastAddress(ip net.IP, ipNet *net.IPNet) bool {
	broadcast := make(net.IP, len(ipNet.IP))
	copy(broadcast, ipNet.IP.Mask(ipNet.Mask))

	for i := range broadcast {
		broadcast[i] |= ^ipNet.Mask[i]
	}

	return ip.Equal(broadcast)
}

// nextIP returns ip+1, or nil on overflow of the address space.
func nextIP(ip net.IP) net.IP {
	next := make(net.IP, len(ip))
	copy(next, ip)

	for i := len(next) - 1; i >= 0; i-- {
		next[i]++
		if next[i] != 0 {
			return next
		}
	}

	return nil
}
