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

// Package credentials loads ordered device-login material from the
// environment and from an injected encrypted secret store, and provides
// the process-lifetime credential cache used by the collector's fallback
// loop.
package credentials

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

// fieldSuffixes lists the recognized env-var field markers in
// longest-first order so "ENABLE_PASSWORD" is tried before "ENABLE" and
// "USERNAME" before "USER" — a shorter marker would otherwise swallow
// part of the credential-set name.
var fieldSuffixes = []string{
	"ENABLE_PASSWORD",
	"USERNAME",
	"PASSWORD",
	"PRIORITY",
	"ENABLE",
	"USER",
	"PASS",
}

// EnvLoader discovers credential sets from environment variables named
// `<prefix>_{USERNAME|USER|PASSWORD|PASS|ENABLE|ENABLE_PASSWORD|PRIORITY}_<NAME>`.
type EnvLoader struct {
	prefix string
}

// NewEnvLoader builds a loader scoped to prefix (e.g. "RAPIDCMDB_CRED").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

// Load scans the process environment and returns every credential set
// with a non-empty username and password, sorted ascending by priority
// with name as the tiebreak.
func (l *EnvLoader) Load() []models.Credential {
	creds := FromEnviron(os.Environ(), l.prefix)
	SortByPriority(creds)

	return creds
}

type partialCredential struct {
	username, secret, elevated string
	priority                   int
	hasPriority                bool
}

// FromEnviron parses a raw environ slice (as returned by os.Environ) into
// credential sets. Exported for testing without mutating process
// environment.
func FromEnviron(environ []string, prefix string) []models.Credential {
	partials := make(map[string]*partialCredential)
	var order []string

	for _, kv := range environ {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}

		key, value := kv[:eq], kv[eq+1:]

		rest, ok := stripPrefix(key, prefix)
		if !ok {
			continue
		}

		field, name, ok := splitFieldName(rest)
		if !ok || name == "" {
			continue
		}

		p, exists := partials[name]
		if !exists {
			p = &partialCredential{}
			partials[name] = p
			order = append(order, name)
		}

		applyField(p, field, value)
	}

	creds := make([]models.Credential, 0, len(order))

	for _, name := range order {
		p := partials[name]
		if p.username == "" || p.secret == "" {
			continue
		}

		priority := models.DefaultCredentialPriority
		if p.hasPriority {
			priority = p.priority
		}

		creds = append(creds, models.Credential{
			Name:           name,
			Username:       p.username,
			Secret:         p.secret,
			ElevatedSecret: p.elevated,
			Priority:       priority,
		})
	}

	return creds
}

func stripPrefix(key, prefix string) (string, bool) {
	if prefix == "" {
		return strings.TrimPrefix(key, "_"), true
	}

	if !strings.HasPrefix(key, prefix) {
		return "", false
	}

	return strings.TrimPrefix(strings.TrimPrefix(key, prefix), "_"), true
}

func splitFieldName(rest string) (field, name string, ok bool) {
	for _, suffix := range fieldSuffixes {
		marker := suffix + "_"
		if strings.HasPrefix(rest, marker) {
			return suffix, strings.TrimPrefix(rest, marker), true
		}
	}

	return "", "", false
}

func applyField(p *partialCredential, field, value string) {
	switch field {
	case "USERNAME", "USER":
		p.username = value
	case "PASSWORD", "PASS":
		p.secret = value
	case "ENABLE", "ENABLE_PASSWORD":
		p.elevated = value
	case "PRIORITY":
		if n, err := strconv.Atoi(value); err == nil {
			p.priority = n
			p.hasPriority = true
		}
	}
}

// SortByPriority orders creds ascending by Priority, breaking ties by Name.
func SortByPriority(creds []models.Credential) {
	sort.SliceStable(creds, func(i, j int) bool {
		if creds[i].Priority != creds[j].Priority {
			return creds[i].Priority < creds[j].Priority
		}

		return creds[i].Name < creds[j].Name
	})
}
