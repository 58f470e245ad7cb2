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

// Package writer persists collection runs to per-device output
// directories (spec §4.7).
package writer

import (
	"regexp"
	"strings"
)

var ipv4Literal = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

var unsafeChars = []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}

// SafeDeviceName turns a raw device or host name into a filesystem-safe
// name: the trailing DNS suffix is stripped unless the name is a bare
// IPv4 literal, filesystem-unsafe characters become underscores,
// repeated underscores collapse, and leading/trailing underscores are
// trimmed. Falls back to "unknown_device" on an empty result.
func SafeDeviceName(name string) string {
	if name == "" {
		return "unknown_device"
	}

	if !ipv4Literal.MatchString(name) {
		if dot := strings.IndexByte(name, '.'); dot >= 0 {
			name = name[:dot]
		}
	}

	for _, ch := range unsafeChars {
		name = strings.ReplaceAll(name, ch, "_")
	}

	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}

	name = strings.Trim(name, "_")

	if name == "" {
		return "unknown_device"
	}

	return name
}
