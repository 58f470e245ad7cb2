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

package collector

import "encoding/json"

// approximateSize reports the JSON-encoded byte size of a method result,
// matching the original collector's len(json.dumps(data)) sizing. Returns
// 0 if the value cannot be marshaled rather than failing the method call.
func approximateSize(data interface{}) int {
	b, err := json.Marshal(data)
	if err != nil {
		return 0
	}

	return len(b)
}
