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

package credentials

import (
	"strings"
	"sync"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// ShapeKey builds the device-shape-key the collector's credential cache is
// keyed on (spec §4.6): a deterministic concatenation of configured
// fields, default {site-code, vendor, device-role, driver}.
func ShapeKey(fields ...string) string {
	return strings.Join(fields, "|")
}

// Cache remembers, for the lifetime of the process, which credential name
// worked last for a given device shape key. It is never persisted across
// restarts. A single mutex guards it; hits are short and misses are rare,
// so contention is never a concern.
type Cache struct {
	mu  sync.Mutex
	hit map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{hit: make(map[string]string)}
}

// Get returns the cached credential name for shapeKey, if any.
func (c *Cache) Get(shapeKey string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, ok := c.hit[shapeKey]

	return name, ok
}

// Remember records that credName worked for shapeKey.
func (c *Cache) Remember(shapeKey, credName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hit[shapeKey] = credName
}

// Ordered returns creds reordered so any credential cached for shapeKey is
// tried first; the remainder keep their existing relative order. Returns
// creds unchanged if nothing is cached or the cached name is not present
// (e.g. it was removed from the configured set since the last run).
func (c *Cache) Ordered(shapeKey string, creds []models.Credential) []models.Credential {
	cached, ok := c.Get(shapeKey)
	if !ok {
		return creds
	}

	ordered := make([]models.Credential, 0, len(creds))

	var found models.Credential

	foundAny := false

	for _, cred := range creds {
		if cred.Name == cached {
			found = cred
			foundAny = true

			continue
		}

		ordered = append(ordered, cred)
	}

	if !foundAny {
		return creds
	}

	return append([]models.Credential{found}, ordered...)
}
