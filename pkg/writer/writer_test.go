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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestWriteProducesCompleteJSONAndPerMethodFiles(t *testing.T) {
	dir := t.TempDir()

	run := models.CollectionRun{
		DeviceID: "dev1",
		Success:  true,
		Data: map[string]interface{}{
			"get_facts": map[string]interface{}{"hostname": "sw01"},
		},
	}

	require.NoError(t, Write(dir, "sw01.corp.example.com", run))

	deviceDir := filepath.Join(dir, "sw01")

	completeBody, err := os.ReadFile(filepath.Join(deviceDir, "sw01_complete.json"))
	require.NoError(t, err)

	var roundTripped models.CollectionRun
	require.NoError(t, json.Unmarshal(completeBody, &roundTripped))
	assert.Equal(t, "dev1", roundTripped.DeviceID)

	factsBody, err := os.ReadFile(filepath.Join(deviceDir, "sw01_get_facts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(factsBody), "sw01")
}

func TestWriteSplitsConfigMapIntoPerTypeTextFiles(t *testing.T) {
	dir := t.TempDir()

	run := models.CollectionRun{
		DeviceID: "dev1",
		Data: map[string]interface{}{
			"get_config": map[string]interface{}{
				"running": "interface Gi0/1\n no shutdown\n",
			},
		},
	}

	require.NoError(t, Write(dir, "10.0.0.1", run))

	body, err := os.ReadFile(filepath.Join(dir, "10.0.0.1", "10.0.0.1_running_config.txt"))
	require.NoError(t, err)
	assert.Equal(t, "interface Gi0/1\n no shutdown\n", string(body))
}

func TestWriteCreatesDeviceDirectory(t *testing.T) {
	dir := t.TempDir()

	run := models.CollectionRun{DeviceID: "dev1", Data: map[string]interface{}{}}
	require.NoError(t, Write(dir, "weird name here", run))

	info, err := os.Stat(filepath.Join(dir, "weird_name_here"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
