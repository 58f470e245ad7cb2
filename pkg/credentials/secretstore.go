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

import "github.com/scottpeterman/rapidcmdb/pkg/models"

// SecretProvider is the opaque encrypted-store interface (spec §4.3):
// implementations hold their own storage format and key derivation.
// rapidcmdb ships no concrete implementation — callers wire one in from
// their own secrets infrastructure.
type SecretProvider interface {
	Unlock(masterPassword string) ([]models.Credential, error)
}

// Load combines env-sourced and secret-store-sourced credentials into one
// priority-ordered list. secretStore and masterPassword may be left zero
// to skip the secret-store source entirely.
func Load(envLoader *EnvLoader, secretStore SecretProvider, masterPassword string) ([]models.Credential, error) {
	var all []models.Credential

	if envLoader != nil {
		all = append(all, envLoader.Load()...)
	}

	if secretStore != nil {
		fromStore, err := secretStore.Unlock(masterPassword)
		if err != nil {
			return nil, err
		}

		all = append(all, fromStore...)
	}

	SortByPriority(all)

	return all, nil
}
