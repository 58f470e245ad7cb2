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

package snmpclient

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"

	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

func TestPDUStringValueRejectsExceptionSentinels(t *testing.T) {
	tests := []struct {
		name string
		pdu  gosnmp.SnmpPDU
		ok   bool
	}{
		{"noSuchObject", gosnmp.SnmpPDU{Type: gosnmp.NoSuchObject}, false},
		{"noSuchInstance", gosnmp.SnmpPDU{Type: gosnmp.NoSuchInstance}, false},
		{"endOfMibView", gosnmp.SnmpPDU{Type: gosnmp.EndOfMibView}, false},
		{"null", gosnmp.SnmpPDU{Type: gosnmp.Null}, false},
		{"octet string", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("Cisco IOS")}, true},
		{"integer", gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: 7}, true},
		{"empty octet string is still present", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := pduStringValue(tt.pdu)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPDUStringValueOctetString(t *testing.T) {
	v, ok := pduStringValue(gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("switch01")})
	assert.True(t, ok)
	assert.Equal(t, "switch01", v)
}

func TestNormalizeOID(t *testing.T) {
	assert.Equal(t, ".1.3.6.1.2.1.1.1.0", normalizeOID("1.3.6.1.2.1.1.1.0"))
	assert.Equal(t, ".1.3.6.1.2.1.1.1.0", normalizeOID(".1.3.6.1.2.1.1.1.0"))
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	got := dedupe([]string{"a", "b"}, []string{"b", "c"}, []string{"a", "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestAuthProtocolMapping(t *testing.T) {
	assert.Equal(t, gosnmp.SHA256, authProtocol(models.AuthProtocolSHA256))
	assert.Equal(t, gosnmp.NoAuth, authProtocol(models.AuthProtocolNone))
}

func TestPrivProtocolMapping(t *testing.T) {
	assert.Equal(t, gosnmp.AES256, privProtocol(models.PrivProtocolAES256))
	assert.Equal(t, gosnmp.NoPriv, privProtocol(models.PrivProtocolNone))
}

func TestBuildV3ClientMsgFlags(t *testing.T) {
	c := New(nil)

	noAuth := c.buildV3Client("10.0.0.1", &models.SNMPv3Credentials{Username: "ro"})
	assert.Equal(t, gosnmp.NoAuthNoPriv, noAuth.MsgFlags)

	authOnly := c.buildV3Client("10.0.0.1", &models.SNMPv3Credentials{
		Username: "ro", AuthProtocol: models.AuthProtocolSHA, AuthPassword: "secret1",
	})
	assert.Equal(t, gosnmp.AuthNoPriv, authOnly.MsgFlags)

	authPriv := c.buildV3Client("10.0.0.1", &models.SNMPv3Credentials{
		Username: "ro", AuthProtocol: models.AuthProtocolSHA, AuthPassword: "secret1",
		PrivProtocol: models.PrivProtocolAES, PrivPassword: "secret2",
	})
	assert.Equal(t, gosnmp.AuthPriv, authPriv.MsgFlags)
}
