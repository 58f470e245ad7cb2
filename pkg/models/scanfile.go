package models

import "time"

// SessionResult is one per-host entry in the scan-file's "sessions" array
// (spec §6) — recorded regardless of whether the host ended up producing a
// DeviceRecord, so failed/unreachable hosts are still auditable.
type SessionResult struct {
	Address         string      `json:"address"`
	Reachable       bool        `json:"reachable"`
	SNMPVersionUsed SNMPVersion `json:"snmp_version_used"`
	DeviceID        string      `json:"device_id,omitempty"`
	Error           string      `json:"error,omitempty"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         time.Time   `json:"ended_at"`
}

// SNMPVersionBreakdown tallies successful scans by SNMP version.
type SNMPVersionBreakdown struct {
	V3Successful    int `json:"v3_successful"`
	V2cSuccessful   int `json:"v2c_successful"`
	TotalSuccessful int `json:"total_successful"`
}

// ScanStatistics is the "statistics" block of the scan-file schema (§6).
type ScanStatistics struct {
	TotalDevices         int                  `json:"total_devices"`
	VendorBreakdown      map[string]int       `json:"vendor_breakdown"`
	TypeBreakdown        map[string]int       `json:"type_breakdown"`
	SNMPVersionBreakdown SNMPVersionBreakdown `json:"snmp_version_breakdown"`
	DevicesPerSubnet     map[string]int       `json:"devices_per_subnet"`
	AvgConfidence        float64              `json:"avg_confidence"`
}

// ScanFileConfig mirrors the scan-file's "config" block. RapidCMDB's core
// does not act on auto_cleanup/backup_*; they are carried as opaque
// passthrough fields so round-tripping a scan file (spec §8) never drops
// them.
type ScanFileConfig struct {
	MaxSessions     int  `json:"max_sessions"`
	MaxDevices      int  `json:"max_devices"`
	AutoCleanup     bool `json:"auto_cleanup"`
	CleanupInterval int  `json:"cleanup_interval"`
	BackupEnabled   bool `json:"backup_enabled"`
	BackupCount     int  `json:"backup_count"`
	CompressBackups bool `json:"compress_backups"`
}

// ScanFile is the full persistent scan document (spec §6).
type ScanFile struct {
	Version      string                  `json:"version"`
	LastUpdated  time.Time               `json:"last_updated"`
	TotalDevices int                     `json:"total_devices"`
	Devices      map[string]*DeviceRecord `json:"devices"`
	Sessions     []SessionResult         `json:"sessions"`
	Statistics   ScanStatistics          `json:"statistics"`
	Config       ScanFileConfig          `json:"config"`
}

// NewScanFile returns an empty, well-formed scan document.
func NewScanFile() *ScanFile {
	return &ScanFile{
		Version: "1.0.0",
		Devices: make(map[string]*DeviceRecord),
		Statistics: ScanStatistics{
			VendorBreakdown:  make(map[string]int),
			TypeBreakdown:    make(map[string]int),
			DevicesPerSubnet: make(map[string]int),
		},
	}
}
