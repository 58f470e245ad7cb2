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

package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

const configMethod = "get_config"

// Write persists one device's collection run under
// <captureRoot>/<safe-device-name>/ (spec §4.7): the full run as
// "<safe-name>_complete.json", each get_config key as plaintext
// "<safe-name>_<config-type>_config.txt", and every other collected
// method as "<safe-name>_<method>.json". deviceName is the raw,
// pre-safety name (collector.Result.DeviceName); Write derives the safe
// form itself.
func Write(captureRoot, deviceName string, run models.CollectionRun) error {
	safeName := SafeDeviceName(deviceName)
	deviceDir := filepath.Join(captureRoot, safeName)

	if err := os.MkdirAll(deviceDir, 0o755); err != nil {
		return fmt.Errorf("create device directory: %w", err)
	}

	completeBody, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection run: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(deviceDir, safeName+"_complete.json"), completeBody); err != nil {
		return err
	}

	for method, data := range run.Data {
		if method == configMethod {
			if err := writeConfigFiles(deviceDir, safeName, data); err != nil {
				return err
			}

			continue
		}

		body, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s result: %w", method, err)
		}

		path := filepath.Join(deviceDir, fmt.Sprintf("%s_%s.json", safeName, method))
		if err := writeFileAtomic(path, body); err != nil {
			return err
		}
	}

	return nil
}

// writeConfigFiles handles get_config specially: a map of config-type ->
// text content is written as one plaintext file per key; anything else
// is stringified into a single "<safe-name>_config.txt".
func writeConfigFiles(deviceDir, safeName string, data interface{}) error {
	if byType, ok := data.(map[string]interface{}); ok {
		for configType, content := range byType {
			path := filepath.Join(deviceDir, fmt.Sprintf("%s_%s_config.txt", safeName, configType))
			if err := writeFileAtomic(path, []byte(stringify(content))); err != nil {
				return err
			}
		}

		return nil
	}

	path := filepath.Join(deviceDir, safeName+"_config.txt")

	return writeFileAtomic(path, []byte(stringify(data)))
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

// writeFileAtomic writes body to a temp file in dir(path) then renames
// it into place, so a reader never observes a partially-written file.
func writeFileAtomic(path string, body []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)

		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("rename into %s: %w", path, err)
	}

	return nil
}
