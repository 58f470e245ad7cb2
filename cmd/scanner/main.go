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

// Command scanner runs one network discovery sweep (spec §4.5): probe,
// SNMP-collect, and fingerprint every host in a CIDR block, then persist
// the resulting scan file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/scottpeterman/rapidcmdb/pkg/config"
	"github.com/scottpeterman/rapidcmdb/pkg/fingerprint"
	"github.com/scottpeterman/rapidcmdb/pkg/logger"
	"github.com/scottpeterman/rapidcmdb/pkg/probe"
	"github.com/scottpeterman/rapidcmdb/pkg/scanner"
	"github.com/scottpeterman/rapidcmdb/pkg/snmpclient"
	"github.com/scottpeterman/rapidcmdb/pkg/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to scanner config JSON file")
	cidrOverride := flag.String("cidr", "", "override the config's cidr")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	var cfg Config
	if err := config.Load(ctx, nil, *configPath, "RAPIDCMDB_SCANNER_", &cfg); err != nil {
		return err
	}

	if *cidrOverride != "" {
		cfg.CIDR = *cidrOverride
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	log, err := logger.NewComponent("scanner", cfg.Logging)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	rules, err := fingerprint.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	probeTimeout := time.Duration(cfg.ProbeTimeoutSeconds * float64(time.Second))
	ports := cfg.ProbePorts
	if len(ports) == 0 {
		ports = probe.DefaultPorts
	}

	prober := probe.New(ports, probeTimeout, log)

	snmpOpts := []snmpclient.Option{}
	if cfg.SNMPPort > 0 {
		snmpOpts = append(snmpOpts, snmpclient.WithPort(uint16(cfg.SNMPPort)))
	}
	if cfg.SNMPTimeoutSeconds > 0 {
		snmpOpts = append(snmpOpts, snmpclient.WithTimeout(time.Duration(cfg.SNMPTimeoutSeconds*float64(time.Second))))
	}
	if cfg.SNMPRetries > 0 {
		snmpOpts = append(snmpOpts, snmpclient.WithRetries(cfg.SNMPRetries))
	}

	snmp := snmpclient.New(log, snmpOpts...)
	engine := fingerprint.NewEngine(rules)

	s := scanner.New(prober, snmp, engine, log)

	scanID := cfg.ScanID
	if scanID == "" {
		scanID = "scan-" + uuid.New().String()
	}

	scanFile, err := s.Scan(ctx, cfg.CIDR, scanner.Config{
		ScanID:          scanID,
		Concurrency:     cfg.Concurrency,
		Credentials:     cfg.credentials(),
		PriorityOIDs:    fingerprint.PriorityFingerprintOIDs(rules),
		ExtendedOIDs:    fingerprint.AllFingerprintOIDs(rules),
		FingerprintOIDs: fingerprint.AllFingerprintOIDs(rules),
		ProgressEvery:   cfg.ProgressEvery,
		OnProgress: func(p scanner.ProgressEvent) {
			log.Info().
				Int("completed", p.Completed).
				Int("tcp_ok", p.TCPOk).
				Int("failures", p.Failures).
				Float64("rate_per_sec", p.RatePerSec).
				Msg("scan progress")
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	if err := writeScanFile(cfg.OutputPath, scanFile); err != nil {
		log.Error().Err(err).Str("path", cfg.OutputPath).Msg("writer_failed")
	}

	log.Info().
		Int("total_devices", scanFile.TotalDevices).
		Int("sessions", len(scanFile.Sessions)).
		Msg("scan complete")

	return nil
}

func writeScanFile(path string, scanFile interface{}) error {
	body, err := json.MarshalIndent(scanFile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scan file: %w", err)
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".scanfile-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp scan file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp scan file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp scan file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename scan file into place: %w", err)
	}

	return nil
}
