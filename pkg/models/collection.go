package models

import "time"

// MethodStatistics tallies one driver method's outcomes across a
// collection run (spec §4.9).
type MethodStatistics struct {
	SuccessCount  int     `json:"success_count"`
	TotalDuration float64 `json:"total_duration_seconds"`
	AvgDuration   float64 `json:"avg_duration_seconds"`
	Bytes         int     `json:"bytes"`
}

// CollectionSummary is the per-run aggregate document (spec §4.9, schema
// matching §6's collection summary).
type CollectionSummary struct {
	Total               int                         `json:"total"`
	Successful          int                         `json:"successful"`
	Failed              int                         `json:"failed"`
	SuccessRate         float64                     `json:"success_rate"`
	AvgDeviceDuration   float64                     `json:"avg_device_duration_seconds"`
	VendorBreakdown     map[string]int              `json:"vendor_breakdown"`
	DeviceTypeBreakdown map[string]int              `json:"device_type_breakdown"`
	CredentialBreakdown map[string]int              `json:"credential_breakdown"`
	MethodStatistics    map[string]MethodStatistics `json:"method_statistics"`
	StartedAt           time.Time                   `json:"started_at"`
	EndedAt             time.Time                   `json:"ended_at"`
	DurationSeconds     float64                     `json:"duration_seconds"`
}

// MethodResult records a single successful driver method call inside a
// collection run.
type MethodResult struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration_seconds"`
	Bytes    int     `json:"bytes"`
	Success  bool    `json:"success"`
}

// MethodFailure records a single failed driver method call.
type MethodFailure struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration_seconds"`
	Error    string  `json:"error"`
	Success  bool    `json:"success"`
}

// CollectionRun is one device's collection outcome (spec §3). Invariant:
// Success iff len(MethodsCollected) > 0; EndedAt >= StartedAt; no method
// name appears in both MethodsCollected and MethodsFailed.
type CollectionRun struct {
	DeviceID         string                 `json:"device_id"`
	Driver           string                 `json:"driver"`
	CredentialUsed   string                 `json:"credential_used"`
	CredentialSource string                 `json:"credential_source"`
	CollectionIP     string                 `json:"collection_ip"`
	StartedAt        time.Time              `json:"started_at"`
	EndedAt          time.Time              `json:"ended_at"`
	DurationSeconds  float64                `json:"duration_seconds"`
	Success          bool                   `json:"success"`
	MethodsCollected []MethodResult         `json:"methods_collected"`
	MethodsFailed    []MethodFailure        `json:"methods_failed"`
	Errors           []string               `json:"errors"`
	Data             map[string]interface{} `json:"data"`
	DatabaseID       string                 `json:"database_id,omitempty"`
}
