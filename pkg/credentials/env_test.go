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
	"github.com/stretchr/testify/require"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestFromEnvironParsesCompleteCredentialSet(t *testing.T) {
	environ := []string{
		"RAPIDCMDB_CRED_USERNAME_NETADMIN=svc-net",
		"RAPIDCMDB_CRED_PASSWORD_NETADMIN=hunter2",
		"RAPIDCMDB_CRED_ENABLE_PASSWORD_NETADMIN=enablepw",
		"RAPIDCMDB_CRED_PRIORITY_NETADMIN=10",
		"UNRELATED=ignored",
	}

	creds := FromEnviron(environ, "RAPIDCMDB_CRED")
	require.Len(t, creds, 1)

	got := creds[0]
	assert.Equal(t, "NETADMIN", got.Name)
	assert.Equal(t, "svc-net", got.Username)
	assert.Equal(t, "hunter2", got.Secret)
	assert.Equal(t, "enablepw", got.ElevatedSecret)
	assert.Equal(t, 10, got.Priority)
}

func TestFromEnvironDefaultsPriorityWhenAbsent(t *testing.T) {
	environ := []string{
		"RAPIDCMDB_CRED_USER_RO=viewer",
		"RAPIDCMDB_CRED_PASS_RO=viewerpw",
	}

	creds := FromEnviron(environ, "RAPIDCMDB_CRED")
	require.Len(t, creds, 1)
	assert.Equal(t, models.DefaultCredentialPriority, creds[0].Priority)
}

func TestFromEnvironDropsIncompleteCredentialSet(t *testing.T) {
	environ := []string{
		"RAPIDCMDB_CRED_USERNAME_HALF=onlyuser",
	}

	creds := FromEnviron(environ, "RAPIDCMDB_CRED")
	assert.Empty(t, creds)
}

func TestFromEnvironDoesNotConfuseEnableWithEnablePassword(t *testing.T) {
	environ := []string{
		"RAPIDCMDB_CRED_USERNAME_A=u",
		"RAPIDCMDB_CRED_PASSWORD_A=p",
		"RAPIDCMDB_CRED_ENABLE_PASSWORD_A=enablepw",
	}

	creds := FromEnviron(environ, "RAPIDCMDB_CRED")
	require.Len(t, creds, 1)
	assert.Equal(t, "enablepw", creds[0].ElevatedSecret)
}

func TestSortByPriorityOrdersAscendingThenByName(t *testing.T) {
	creds := []models.Credential{
		{Name: "zzz", Priority: 5},
		{Name: "aaa", Priority: 5},
		{Name: "first", Priority: 1},
	}

	SortByPriority(creds)

	assert.Equal(t, []string{"first", "aaa", "zzz"}, []string{creds[0].Name, creds[1].Name, creds[2].Name})
}

func TestFromEnvironIgnoresUnprefixedVars(t *testing.T) {
	environ := []string{
		"OTHERAPP_CRED_USERNAME_X=u",
		"OTHERAPP_CRED_PASSWORD_X=p",
	}

	creds := FromEnviron(environ, "RAPIDCMDB_CRED")
	assert.Empty(t, creds)
}
