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

// Package config loads scanner/collector configuration from a JSON file
// with an environment-variable overlay, following the same two-loader
// split the rest of this codebase's family uses.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/scottpeterman/rapidcmdb/pkg/logger"
)

// ErrConfigInvalid is the spec's config_invalid taxonomy label (§7):
// malformed config, missing required settings. It aborts the run with
// exit code 1 before any scanning/collection work starts.
var ErrConfigInvalid = errors.New("config_invalid")

// Loader reads configuration into dst from either a file path or the
// process environment.
type Loader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Load populates dst from the JSON file at path (if path is non-empty),
// then overlays any matching environment variables under prefix. A
// missing file is not an error when path is empty — callers running from
// environment variables alone (e.g. containerized deployments) pass "".
func Load(ctx context.Context, log logger.Logger, path, envPrefix string, dst interface{}) error {
	if path != "" {
		if err := NewFileConfigLoader(log).Load(ctx, path, dst); err != nil {
			return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	if err := NewEnvConfigLoader(log, envPrefix).Load(ctx, "", dst); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return nil
}
