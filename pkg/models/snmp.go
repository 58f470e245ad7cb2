package models

import "time"

// SNMPVersion identifies which SNMP protocol version answered a device.
type SNMPVersion string

const (
	SNMPVersionNone SNMPVersion = ""
	SNMPVersionV3   SNMPVersion = "v3"
	SNMPVersionV2c  SNMPVersion = "v2c"
)

// SNMPAuthProtocol enumerates the v3 authentication protocols spec §4.2
// requires support for.
type SNMPAuthProtocol string

const (
	AuthProtocolNone    SNMPAuthProtocol = ""
	AuthProtocolMD5     SNMPAuthProtocol = "MD5"
	AuthProtocolSHA     SNMPAuthProtocol = "SHA"
	AuthProtocolSHA224  SNMPAuthProtocol = "SHA224"
	AuthProtocolSHA256  SNMPAuthProtocol = "SHA256"
	AuthProtocolSHA384  SNMPAuthProtocol = "SHA384"
	AuthProtocolSHA512  SNMPAuthProtocol = "SHA512"
)

// SNMPPrivProtocol enumerates the v3 privacy protocols spec §4.2 requires
// support for.
type SNMPPrivProtocol string

const (
	PrivProtocolNone   SNMPPrivProtocol = ""
	PrivProtocolDES    SNMPPrivProtocol = "DES"
	PrivProtocolAES    SNMPPrivProtocol = "AES"
	PrivProtocolAES192 SNMPPrivProtocol = "AES192"
	PrivProtocolAES256 SNMPPrivProtocol = "AES256"
)

// SNMPv3Credentials carries USM auth parameters. Either protocol may be
// the "None" value, giving noAuthNoPriv/authNoPriv/authPriv depending on
// which are set.
type SNMPv3Credentials struct {
	Username     string
	AuthProtocol SNMPAuthProtocol
	AuthPassword string
	PrivProtocol SNMPPrivProtocol
	PrivPassword string
}

// SNMPCredentials bundles the v3 credential (if any) plus the ordered list
// of v2c community strings to try on fallback.
type SNMPCredentials struct {
	V3          *SNMPv3Credentials
	V2cEnabled  bool
	Communities []string // tried in order; first success wins
}

// FactSet is the OID -> string value mapping collected from a device.
// OIDs answering noSuchObject/noSuchInstance/endOfMibView are absent, not
// present with an empty string — that distinction is load-bearing for the
// fingerprint engine.
type FactSet map[string]string

// SNMPMetadata records what happened during a collect(), regardless of
// outcome.
type SNMPMetadata struct {
	VersionsAttempted    []SNMPVersion
	VersionSuccessful    SNMPVersion
	CommunityUsed        string // name only, never the secret; empty for v3
	OIDsAttempted        []string
	OIDsSuccessful       []string
	OIDsFailed           []string
	ResponseTimeMS       int
}

// SNMPCollectResult is the output of snmpclient.Collect.
type SNMPCollectResult struct {
	Facts    FactSet
	Metadata SNMPMetadata
}

// ProbeResult is the ephemeral output of the TCP reachability probe (§3).
// It never outlives the scan pipeline for a single host.
type ProbeResult struct {
	Address   string
	Reachable bool
	ProbedAt  time.Time
}
