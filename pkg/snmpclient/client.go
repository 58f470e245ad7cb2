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

// Package snmpclient implements the versioned SNMP fact collector (spec
// §4.2): v3-first with v2c community fallback, OID batching with
// per-OID degradation, and strict exception-sentinel filtering.
package snmpclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/scottpeterman/rapidcmdb/pkg/logger"
	"github.com/scottpeterman/rapidcmdb/pkg/models"
)

const (
	oidSysDescr = ".1.3.6.1.2.1.1.1.0"
	oidSysName  = ".1.3.6.1.2.1.1.5.0"

	defaultPort    = 161
	defaultRetries = 1
	defaultTimeout = 3 * time.Second
)

// probeOIDs are the two OIDs that must both answer for a version/credential
// attempt to count as a success (spec §4.2 step 1).
var probeOIDs = []string{oidSysDescr, oidSysName}

// Client issues versioned SNMP GETs against a single target per call.
type Client struct {
	port    uint16
	timeout time.Duration
	retries int
	logger  logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPort overrides the default UDP port 161.
func WithPort(port uint16) Option {
	return func(c *Client) { c.port = port }
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetries overrides the default retry count.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// New builds a Client with the given logger and options.
func New(log logger.Logger, opts ...Option) *Client {
	c := &Client{
		port:    defaultPort,
		timeout: defaultTimeout,
		retries: defaultRetries,
		logger:  log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect implements the spec §4.2 contract: try v3 then v2c communities
// in order, and on the first successful probe batch-collect the
// remaining OID sets. Returns ErrAuthFailed if every credential fails the
// probe; metadata is always populated, even on failure, for diagnostics.
func (c *Client) Collect(
	ctx context.Context,
	address string,
	creds models.SNMPCredentials,
	priorityOIDs, extendedOIDs, fingerprintOIDs []string,
) (models.SNMPCollectResult, error) {
	start := time.Now()

	result := models.SNMPCollectResult{
		Facts: models.FactSet{},
		Metadata: models.SNMPMetadata{
			OIDsAttempted: dedupe(priorityOIDs, extendedOIDs, fingerprintOIDs),
		},
	}

	gclient, probeFacts, version, community, err := c.establishSession(ctx, address, creds, &result.Metadata)
	if err != nil {
		result.Metadata.ResponseTimeMS = int(time.Since(start).Milliseconds())
		return result, err
	}
	defer func() { _ = gclient.Conn.Close() }()

	result.Metadata.VersionSuccessful = version
	result.Metadata.CommunityUsed = community

	for oid, val := range probeFacts {
		result.Facts[oid] = val
	}

	c.batchCollect(gclient, priorityOIDs, result.Facts, &result.Metadata)
	c.bestEffortCollect(gclient, extendedOIDs, result.Facts, &result.Metadata)
	c.bestEffortCollect(gclient, fingerprintOIDs, result.Facts, &result.Metadata)

	result.Metadata.ResponseTimeMS = int(time.Since(start).Milliseconds())

	return result, nil
}

// establishSession tries v3 first (if configured), then each v2c
// community in order, returning the first connected+authenticated
// client along with the two probe OIDs it already resolved.
func (c *Client) establishSession(
	ctx context.Context,
	address string,
	creds models.SNMPCredentials,
	meta *models.SNMPMetadata,
) (*gosnmp.GoSNMP, models.FactSet, models.SNMPVersion, string, error) {
	if creds.V3 == nil && (!creds.V2cEnabled || len(creds.Communities) == 0) {
		return nil, nil, models.SNMPVersionNone, "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, address)
	}

	if creds.V3 != nil {
		meta.VersionsAttempted = append(meta.VersionsAttempted, models.SNMPVersionV3)

		client := c.buildV3Client(address, creds.V3)
		if facts, ok := c.tryConnect(ctx, client); ok {
			return client, facts, models.SNMPVersionV3, "", nil
		}

		if c.logger != nil {
			c.logger.Debug().Str("address", address).Msg("snmp v3 probe failed, falling back to v2c")
		}
	}

	if creds.V2cEnabled {
		for _, community := range creds.Communities {
			meta.VersionsAttempted = append(meta.VersionsAttempted, models.SNMPVersionV2c)

			client := c.buildV2cClient(address, community)
			if facts, ok := c.tryConnect(ctx, client); ok {
				return client, facts, models.SNMPVersionV2c, community, nil
			}
		}
	}

	return nil, nil, models.SNMPVersionNone, "", fmt.Errorf("%w: %s", ErrAuthFailed, address)
}

// tryConnect connects the client and issues the two probe OIDs. It
// returns ok=true only if both resolve to non-exception values.
func (c *Client) tryConnect(ctx context.Context, client *gosnmp.GoSNMP) (models.FactSet, bool) {
	client.Context = ctx

	if err := client.Connect(); err != nil {
		if c.logger != nil {
			c.logger.Debug().Str("address", client.Target).Err(err).Msg("snmp connect failed")
		}

		return nil, false
	}

	pkt, err := client.Get(probeOIDs)
	if err != nil || pkt.Error != gosnmp.NoError {
		_ = client.Conn.Close()
		return nil, false
	}

	facts := models.FactSet{}
	for _, pdu := range pkt.Variables {
		if v, ok := pduStringValue(pdu); ok {
			facts[normalizeOID(pdu.Name)] = v
		}
	}

	if _, hasDescr := facts[oidSysDescr]; !hasDescr {
		_ = client.Conn.Close()
		return nil, false
	}

	if _, hasName := facts[oidSysName]; !hasName {
		_ = client.Conn.Close()
		return nil, false
	}

	return facts, true
}

// batchCollect issues the priority OID set as a single multi-varbind GET,
// falling back to one GET per OID on batch failure (spec §4.2).
func (c *Client) batchCollect(client *gosnmp.GoSNMP, oids []string, facts models.FactSet, meta *models.SNMPMetadata) {
	if len(oids) == 0 {
		return
	}

	if pkt, err := client.Get(oids); err == nil && pkt.Error == gosnmp.NoError {
		for _, pdu := range pkt.Variables {
			oid := normalizeOID(pdu.Name)
			if v, ok := pduStringValue(pdu); ok {
				facts[oid] = v
				meta.OIDsSuccessful = append(meta.OIDsSuccessful, oid)
			} else {
				meta.OIDsFailed = append(meta.OIDsFailed, oid)
			}
		}

		return
	}

	if c.logger != nil {
		c.logger.Debug().Str("address", client.Target).Msg("priority batch GET failed, degrading to per-OID")
	}

	c.bestEffortCollect(client, oids, facts, meta)
}

// bestEffortCollect issues one GET per OID, recording and swallowing
// per-OID failures. Used for extended/fingerprint OIDs and as the
// priority-batch fallback.
func (c *Client) bestEffortCollect(client *gosnmp.GoSNMP, oids []string, facts models.FactSet, meta *models.SNMPMetadata) {
	for _, oid := range oids {
		pkt, err := client.Get([]string{oid})
		if err != nil || pkt.Error != gosnmp.NoError || len(pkt.Variables) == 0 {
			meta.OIDsFailed = append(meta.OIDsFailed, oid)
			continue
		}

		if v, ok := pduStringValue(pkt.Variables[0]); ok {
			facts[oid] = v
			meta.OIDsSuccessful = append(meta.OIDsSuccessful, oid)
		} else {
			meta.OIDsFailed = append(meta.OIDsFailed, oid)
		}
	}
}

func (c *Client) buildV2cClient(address, community string) *gosnmp.GoSNMP {
	return &gosnmp.GoSNMP{
		Target:             address,
		Port:               c.port,
		Community:          community,
		Version:            gosnmp.Version2c,
		Timeout:            c.timeout,
		Retries:            c.retries,
		MaxOids:            gosnmp.MaxOids,
		ExponentialTimeout: true,
	}
}

func (c *Client) buildV3Client(address string, creds *models.SNMPv3Credentials) *gosnmp.GoSNMP {
	usm := &gosnmp.UsmSecurityParameters{
		UserName: creds.Username,
	}

	msgFlags := gosnmp.NoAuthNoPriv

	if creds.AuthProtocol != models.AuthProtocolNone {
		usm.AuthenticationProtocol, usm.AuthenticationPassphrase = authProtocol(creds.AuthProtocol), creds.AuthPassword
		msgFlags = gosnmp.AuthNoPriv

		if creds.PrivProtocol != models.PrivProtocolNone {
			usm.PrivacyProtocol, usm.PrivacyPassphrase = privProtocol(creds.PrivProtocol), creds.PrivPassword
			msgFlags = gosnmp.AuthPriv
		}
	}

	return &gosnmp.GoSNMP{
		Target:             address,
		Port:               c.port,
		Version:            gosnmp.Version3,
		Timeout:            c.timeout,
		Retries:            c.retries,
		MaxOids:            gosnmp.MaxOids,
		ExponentialTimeout: true,
		SecurityModel:      gosnmp.UserSecurityModel,
		MsgFlags:           msgFlags,
		SecurityParameters: usm,
	}
}

func authProtocol(p models.SNMPAuthProtocol) gosnmp.SnmpV3AuthProtocol {
	switch p {
	case models.AuthProtocolMD5:
		return gosnmp.MD5
	case models.AuthProtocolSHA:
		return gosnmp.SHA
	case models.AuthProtocolSHA224:
		return gosnmp.SHA224
	case models.AuthProtocolSHA256:
		return gosnmp.SHA256
	case models.AuthProtocolSHA384:
		return gosnmp.SHA384
	case models.AuthProtocolSHA512:
		return gosnmp.SHA512
	default:
		return gosnmp.NoAuth
	}
}

func privProtocol(p models.SNMPPrivProtocol) gosnmp.SnmpV3PrivProtocol {
	switch p {
	case models.PrivProtocolDES:
		return gosnmp.DES
	case models.PrivProtocolAES:
		return gosnmp.AES
	case models.PrivProtocolAES192:
		return gosnmp.AES192
	case models.PrivProtocolAES256:
		return gosnmp.AES256
	default:
		return gosnmp.NoPriv
	}
}

// pduStringValue converts an SnmpPDU to its string form, rejecting the
// SNMP exception sentinels (noSuchObject, noSuchInstance, endOfMibView) —
// their absence from the fact set is semantically distinct from an empty
// string (spec §3).
func pduStringValue(pdu gosnmp.SnmpPDU) (string, bool) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return "", false
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return string(b), true
		}

		return fmt.Sprintf("%v", pdu.Value), true
	case gosnmp.ObjectIdentifier:
		if s, ok := pdu.Value.(string); ok {
			return strings.TrimPrefix(s, "."), true
		}

		return fmt.Sprintf("%v", pdu.Value), true
	case gosnmp.TimeTicks, gosnmp.Counter32, gosnmp.Counter64, gosnmp.Gauge32, gosnmp.Uinteger32:
		return fmt.Sprintf("%v", pdu.Value), true
	case gosnmp.Integer:
		if v, ok := pdu.Value.(int); ok {
			return strconv.Itoa(v), true
		}

		return fmt.Sprintf("%v", pdu.Value), true
	case gosnmp.IPAddress:
		if s, ok := pdu.Value.(string); ok {
			return s, true
		}

		return fmt.Sprintf("%v", pdu.Value), true
	case gosnmp.Null:
		return "", false
	default:
		return fmt.Sprintf("%v", pdu.Value), true
	}
}

func normalizeOID(oid string) string {
	if strings.HasPrefix(oid, ".") {
		return oid
	}

	return "." + oid
}

func dedupe(lists ...[]string) []string {
	seen := make(map[string]bool)

	var out []string

	for _, list := range lists {
		for _, oid := range list {
			if !seen[oid] {
				seen[oid] = true

				out = append(out, oid)
			}
		}
	}

	return out
}
