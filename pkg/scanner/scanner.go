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

// Package scanner implements the scan orchestrator (spec §4.5): it walks
// a CIDR, bounds parallelism, drives probe -> SNMP collect -> fingerprint
// per host, and assembles the scan-file document.
package scanner

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scottpeterman/rapidcmdb/pkg/fingerprint"
	"github.com/scottpeterman/rapidcmdb/pkg/logger"
	"github.com/scottpeterman/rapidcmdb/pkg/models"
	"github.com/scottpeterman/rapidcmdb/pkg/probe"
	"github.com/scottpeterman/rapidcmdb/pkg/snmpclient"
)

const (
	oidSysDescr = ".1.3.6.1.2.1.1.1.0"
	oidSysName  = ".1.3.6.1.2.1.1.5.0"

	// DefaultConcurrency is the scanner's bounded worker pool size (spec §5).
	DefaultConcurrency = 100

	// DefaultProgressEvery is the completion interval between progress
	// events outside the fixed milestones (spec §4.5).
	DefaultProgressEvery = 50
)

// Config parameterizes one Scan call.
type Config struct {
	ScanID          string
	Concurrency     int
	Credentials     models.SNMPCredentials
	PriorityOIDs    []string
	ExtendedOIDs    []string
	FingerprintOIDs []string
	ProgressEvery   int
	OnProgress      ProgressFunc
}

// Scanner drives the probe -> SNMP -> fingerprint pipeline over a bounded
// worker pool.
type Scanner struct {
	prober *probe.Prober
	snmp   *snmpclient.Client
	engine *fingerprint.Engine
	logger logger.Logger
}

// New builds a Scanner from its three collaborating components.
func New(prober *probe.Prober, snmp *snmpclient.Client, engine *fingerprint.Engine, log logger.Logger) *Scanner {
	return &Scanner{prober: prober, snmp: snmp, engine: engine, logger: log}
}

// Scan implements the spec §4.5 contract: scan(cidr, config) -> scan-record.
// Cancelling ctx stops dispatch of new hosts; in-flight hosts run to
// completion of their current operation and the partial scan file is
// still returned.
func (s *Scanner) Scan(ctx context.Context, cidr string, cfg Config) (*models.ScanFile, error) {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	addrs, err := ExpandCIDR(ctx, cidr)
	if err != nil {
		return nil, err
	}

	scanFile := models.NewScanFile()

	var (
		mu    sync.Mutex
		v3OK  int
		v2cOK int
	)

	tracker := newProgressTracker(cfg.ProgressEvery, cfg.OnProgress)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

dispatch:
	for {
		select {
		case addr, ok := <-addrs:
			if !ok {
				break dispatch
			}

			target := addr

			g.Go(func() error {
				s.scanHost(ctx, target, cfg, scanFile, &mu, &v3OK, &v2cOK, tracker)
				return nil
			})
		case <-ctx.Done():
			break dispatch
		}
	}

	_ = g.Wait()

	mu.Lock()
	scanFile.Statistics = finalizeStatistics(scanFile.Devices, v3OK, v2cOK)
	scanFile.TotalDevices = len(scanFile.Devices)
	scanFile.LastUpdated = time.Now().UTC()
	mu.Unlock()

	if cfg.OnProgress != nil {
		cfg.OnProgress(tracker.finalSnapshot())
	}

	return scanFile, nil
}

// scanHost runs the full per-host pipeline and records its session result
// and (on success) device record under mu. It never returns an error —
// every failure mode is a recorded SessionResult.Error, not a worker
// failure, so one bad host never aborts the pool (spec §5 ordering
// guarantees).
func (s *Scanner) scanHost(
	ctx context.Context,
	addr string,
	cfg Config,
	scanFile *models.ScanFile,
	mu *sync.Mutex,
	v3OK, v2cOK *int,
	tracker *progressTracker,
) {
	started := time.Now()
	session := models.SessionResult{Address: addr, StartedAt: started}
	outcome := hostOutcome{}

	defer func() {
		session.EndedAt = time.Now()

		mu.Lock()
		scanFile.Sessions = append(scanFile.Sessions, session)
		mu.Unlock()

		tracker.record(outcome)
	}()

	reachable := s.prober.Probe(ctx, addr)
	session.Reachable = reachable
	outcome.tcpOK = reachable

	if !reachable {
		session.Error = probe.ErrUnreachable.Error()
		return
	}

	result, err := s.snmp.Collect(ctx, addr, cfg.Credentials, cfg.PriorityOIDs, cfg.ExtendedOIDs, cfg.FingerprintOIDs)
	if err != nil {
		session.Error = err.Error()
		return
	}

	session.SNMPVersionUsed = result.Metadata.VersionSuccessful

	switch result.Metadata.VersionSuccessful {
	case models.SNMPVersionV3:
		outcome.snmpVer = "v3"

		mu.Lock()
		*v3OK++
		mu.Unlock()
	case models.SNMPVersionV2c:
		outcome.snmpVer = "v2c"

		mu.Lock()
		*v2cOK++
		mu.Unlock()
	}

	sysDescr, hasDescr := result.Facts[oidSysDescr]
	sysName, hasName := result.Facts[oidSysName]

	if !hasDescr || !hasName {
		session.Error = "snmp answers but unidentifiable"
		return
	}

	verdict := s.engine.Fingerprint(result.Facts)
	record := buildDeviceRecord(addr, sysDescr, sysName, verdict, result, cfg.ScanID)

	mu.Lock()
	mergeDevice(scanFile, record)
	mu.Unlock()

	session.DeviceID = record.ID
	outcome.succeeded = true
}

// buildDeviceRecord assembles a fresh DeviceRecord for one scan
// observation of addr; mergeDevice reconciles it against any
// previously-seen record sharing the same device ID.
func buildDeviceRecord(
	addr, sysDescr, sysName string,
	verdict models.Verdict,
	result models.SNMPCollectResult,
	scanID string,
) *models.DeviceRecord {
	now := time.Now().UTC()
	id := deviceID(sysName, verdict.Vendor, verdict.DeviceType, addr)

	return &models.DeviceRecord{
		ID:              id,
		PrimaryIP:       addr,
		AllIPs:          []string{addr},
		Vendor:          verdict.Vendor,
		DeviceType:      verdict.DeviceType,
		Model:           verdict.Model,
		SerialNumber:    verdict.SerialNumber,
		OSVersion:       verdict.OSVersion,
		SysDescr:        sysDescr,
		SysName:         sysName,
		FirstSeen:       now,
		LastSeen:        now,
		ScanCount:       1,
		LastScanID:      scanID,
		Confidence:      verdict.Confidence,
		DetectionMethod: verdict.Method,
		SNMPVersionUsed: result.Metadata.VersionSuccessful,
		SNMPDataByIP:    map[string]map[string]string{addr: result.Facts},
	}
}

// mergeDevice inserts fresh into scanFile.Devices, or folds it into an
// existing record sharing the same ID: AllIPs/SNMPDataByIP accumulate,
// ScanCount increments, and identification fields refresh to the latest
// observation (spec §3: "device records persist across scans, updated in
// place by device-id").
func mergeDevice(scanFile *models.ScanFile, fresh *models.DeviceRecord) {
	existing, ok := scanFile.Devices[fresh.ID]
	if !ok {
		scanFile.Devices[fresh.ID] = fresh
		return
	}

	existing.LastSeen = fresh.LastSeen
	existing.ScanCount++
	existing.LastScanID = fresh.LastScanID
	existing.Vendor = fresh.Vendor
	existing.DeviceType = fresh.DeviceType
	existing.Model = fresh.Model
	existing.SerialNumber = fresh.SerialNumber
	existing.OSVersion = fresh.OSVersion
	existing.SysDescr = fresh.SysDescr
	existing.SysName = fresh.SysName
	existing.Confidence = fresh.Confidence
	existing.DetectionMethod = fresh.DetectionMethod
	existing.SNMPVersionUsed = fresh.SNMPVersionUsed

	if !containsIP(existing.AllIPs, fresh.PrimaryIP) {
		existing.AllIPs = append(existing.AllIPs, fresh.PrimaryIP)
	}

	if existing.SNMPDataByIP == nil {
		existing.SNMPDataByIP = make(map[string]map[string]string)
	}

	for ip, facts := range fresh.SNMPDataByIP {
		existing.SNMPDataByIP[ip] = facts
	}
}

func containsIP(ips []string, ip string) bool {
	for _, v := range ips {
		if v == ip {
			return true
		}
	}

	return false
}
