package models

import "time"

// Interface is one entry of a device's interface map, keyed by name in
// DeviceRecord.Interfaces.
type Interface struct {
	Name   string `json:"name"`
	IP     string `json:"ip,omitempty"`
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}

// DeviceRecord is the scan-output device record (spec §3). Invariant:
// PrimaryIP must appear in AllIPs; ScanCount >= 1; timestamps are RFC3339
// UTC.
type DeviceRecord struct {
	ID               string                      `json:"id"`
	PrimaryIP        string                      `json:"primary_ip"`
	AllIPs           []string                    `json:"all_ips"`
	MACAddresses     []string                    `json:"mac_addresses,omitempty"`
	Interfaces       map[string]Interface        `json:"interfaces,omitempty"`
	Vendor           string                      `json:"vendor"`
	DeviceType       string                      `json:"device_type"`
	Model            string                      `json:"model,omitempty"`
	SerialNumber     string                      `json:"serial_number,omitempty"`
	OSVersion        string                      `json:"os_version,omitempty"`
	SysDescr         string                      `json:"sys_descr,omitempty"`
	SysName          string                      `json:"sys_name,omitempty"`
	FirstSeen        time.Time                   `json:"first_seen"`
	LastSeen         time.Time                   `json:"last_seen"`
	ScanCount        int                         `json:"scan_count"`
	LastScanID       string                      `json:"last_scan_id"`
	Confidence       int                         `json:"confidence"`
	DetectionMethod  DetectionMethod             `json:"detection_method"`
	SNMPVersionUsed  SNMPVersion                 `json:"snmp_version_used"`
	SNMPDataByIP     map[string]map[string]string `json:"snmp_data_by_ip,omitempty"`
}

// DeviceRole is pluggable site-specific metadata the core never derives
// itself (spec §9 Open Question) — it is supplied by the inventory source.
type DeviceRole string

const (
	RoleCore         DeviceRole = "core"
	RoleAccess       DeviceRole = "access"
	RoleDistribution DeviceRole = "distribution"
	RoleFirewall     DeviceRole = "firewall"
	RoleRouter       DeviceRole = "router"
	RoleSwitch       DeviceRole = "switch"
	RoleWireless     DeviceRole = "wireless"
	RoleLoadBalancer DeviceRole = "load_balancer"
	RoleUPS          DeviceRole = "ups"
	RolePrinter      DeviceRole = "printer"
	RoleCamera       DeviceRole = "camera"
	RoleServer       DeviceRole = "server"
	RoleUnknown      DeviceRole = "unknown"
)

// InventoryDevice is the persistent, store-backed view of a device (spec
// §3). DeviceKey is the first 16 hex chars of SHA-256 over uppercased
// "vendor|serial|model" — see pkg/fingerprint.DeviceKey.
type InventoryDevice struct {
	DeviceKey       string     `json:"device_key"`
	DeviceName      string     `json:"device_name"`
	Hostname        string     `json:"hostname,omitempty"`
	FQDN            string     `json:"fqdn,omitempty"`
	IP              string     `json:"ip,omitempty"`
	Vendor          string     `json:"vendor"`
	Model           string     `json:"model,omitempty"`
	SerialNumber    string     `json:"serial_number,omitempty"`
	OSVersion       string     `json:"os_version,omitempty"`
	SiteCode        string     `json:"site_code,omitempty"`
	DeviceRole      DeviceRole `json:"device_role"`
	FirstDiscovered time.Time  `json:"first_discovered"`
	LastUpdated     time.Time  `json:"last_updated"`
	IsActive        bool       `json:"is_active"`
}
