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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, ch <-chan string) []string {
	t.Helper()

	var out []string
	for v := range ch {
		out = append(out, v)
	}

	return out
}

func TestExpandCIDRExcludesNetworkAndBroadcastForIPv4(t *testing.T) {
	ch, err := ExpandCIDR(context.Background(), "192.0.2.0/29")
	require.NoError(t, err)

	got := drain(t, ch)

	assert.NotContains(t, got, "192.0.2.0")
	assert.NotContains(t, got, "192.0.2.7")
	assert.Equal(t, []string{
		"192.0.2.1", "192.0.2.2", "192.0.2.3", "192.0.2.4", "192.0.2.5", "192.0.2.6",
	}, got)
}

func TestExpandCIDRSlash31HasNoExclusions(t *testing.T) {
	ch, err := ExpandCIDR(context.Background(), "192.0.2.0/31")
	require.NoError(t, err)

	got := drain(t, ch)
	assert.Equal(t, []string{"192.0.2.0", "192.0.2.1"}, got)
}

func TestExpandCIDRSlash32IsSingleHost(t *testing.T) {
	ch, err := ExpandCIDR(context.Background(), "192.0.2.5/32")
	require.NoError(t, err)

	got := drain(t, ch)
	assert.Equal(t, []string{"192.0.2.5"}, got)
}

func TestExpandCIDRInvalidReturnsError(t *testing.T) {
	_, err := ExpandCIDR(context.Background(), "not-a-cidr")
	assert.Error(t, err)
}

func TestExpandCIDRRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch, err := ExpandCIDR(ctx, "10.0.0.0/16")
	require.NoError(t, err)

	// Cancelled before any consumption: the producer must still terminate
	// rather than leak a goroutine blocked on an unbuffered send.
	got := drain(t, ch)
	assert.LessOrEqual(t, len(got), 1)
}
