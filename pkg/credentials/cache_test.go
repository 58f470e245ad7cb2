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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestShapeKeyJoinsFieldsDeterministically(t *testing.T) {
	assert.Equal(t, "siteA|cisco|switch|ios", ShapeKey("siteA", "cisco", "switch", "ios"))
}

func TestCacheOrderedPrefersCachedCredential(t *testing.T) {
	cache := NewCache()
	cache.Remember("siteA|cisco|switch|ios", "ro")

	creds := []models.Credential{
		{Name: "admin", Priority: 1},
		{Name: "ro", Priority: 5},
	}

	ordered := cache.Ordered("siteA|cisco|switch|ios", creds)
	assert.Equal(t, "ro", ordered[0].Name)
	assert.Equal(t, "admin", ordered[1].Name)
}

func TestCacheOrderedFallsBackWhenMiss(t *testing.T) {
	cache := NewCache()

	creds := []models.Credential{
		{Name: "admin", Priority: 1},
		{Name: "ro", Priority: 5},
	}

	ordered := cache.Ordered("unknown-shape", creds)
	assert.Equal(t, creds, ordered)
}

func TestCacheOrderedFallsBackWhenCachedNameMissingFromSet(t *testing.T) {
	cache := NewCache()
	cache.Remember("siteA|cisco|switch|ios", "stale")

	creds := []models.Credential{
		{Name: "admin", Priority: 1},
	}

	ordered := cache.Ordered("siteA|cisco|switch|ios", creds)
	assert.Equal(t, creds, ordered)
}
