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

// Command collector runs one telemetry collection pass (spec §4.6) over
// the devices returned by a configured inventory source, writing one
// result directory per device and logging a run summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scottpeterman/rapidcmdb/pkg/collector"
	"github.com/scottpeterman/rapidcmdb/pkg/config"
	"github.com/scottpeterman/rapidcmdb/pkg/credentials"
	"github.com/scottpeterman/rapidcmdb/pkg/driver"
	"github.com/scottpeterman/rapidcmdb/pkg/inventory"
	"github.com/scottpeterman/rapidcmdb/pkg/logger"
	"github.com/scottpeterman/rapidcmdb/pkg/models"
	"github.com/scottpeterman/rapidcmdb/pkg/stats"
	"github.com/scottpeterman/rapidcmdb/pkg/version"
	"github.com/scottpeterman/rapidcmdb/pkg/writer"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to collector config JSON file")
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
	if err := config.Load(ctx, nil, *configPath, "RAPIDCMDB_COLLECTOR_", &cfg); err != nil {
		return err
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	log, err := logger.NewComponent("collector", cfg.Logging)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	source, closeSource, err := buildInventorySource(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}
	defer closeSource()

	devices, err := source.ListDevices(ctx, inventoryFilters(&cfg))
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	envLoader := credentials.NewEnvLoader(cfg.CredentialEnvPrefix)

	creds, err := credentials.Load(envLoader, nil, cfg.MasterPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	if len(creds) == 0 {
		return fmt.Errorf("%w: no credentials configured under prefix %q", config.ErrConfigInvalid, cfg.CredentialEnvPrefix)
	}

	c := collector.New(cfg.buildRegistry(), driver.NoopOpener{}, credentials.NewCache(), log)

	started := time.Now()

	results, err := c.CollectAll(ctx, devices, creds, collector.Config{
		Workers:        cfg.Workers,
		EnabledMethods: cfg.enabledMethodSet(),
		UseCache:       cfg.UseCache,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigInvalid, err)
	}

	ended := time.Now()

	runInputs := make([]stats.RunInput, 0, len(results))

	for i, res := range results {
		vendor, deviceType := "", ""
		if i < len(devices) {
			vendor = devices[i].Vendor
			deviceType = string(devices[i].DeviceRole)
		}

		runInputs = append(runInputs, stats.RunInput{Run: res.Run, Vendor: vendor, DeviceType: deviceType})

		if err := writer.Write(cfg.OutputDir, res.DeviceName, res.Run); err != nil {
			log.Error().Err(err).Str("device", res.DeviceName).Msg("writer_failed")
		}
	}

	summary := stats.Summarize(runInputs, started, ended)

	log.Info().
		Int("total", summary.Total).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Float64("success_rate", summary.SuccessRate).
		Msg("collection complete")

	return nil
}

func buildInventorySource(ctx context.Context, cfg *Config) (inventory.Source, func(), error) {
	switch cfg.InventorySource {
	case "scan-file":
		source, err := inventory.LoadScanFileSource(cfg.ScanFilePath)
		if err != nil {
			return nil, nil, err
		}

		return source, func() {}, nil

	case "store":
		pool, err := pgxpool.New(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect inventory store: %w", err)
		}

		return inventory.NewStoreSource(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown inventory_source %q", cfg.InventorySource)
	}
}

func inventoryFilters(cfg *Config) inventory.Filters {
	roles := make([]models.DeviceRole, len(cfg.DeviceRoles))
	for i, r := range cfg.DeviceRoles {
		roles[i] = models.DeviceRole(r)
	}

	return inventory.Filters{
		MinConfidence:     cfg.MinConfidence,
		DeviceTypes:       cfg.DeviceTypes,
		ActiveOnly:        cfg.ActiveOnly,
		DeviceRoles:       roles,
		ExcludeModels:     cfg.ExcludeModels,
		IncludeNonNetwork: cfg.IncludeNonNetwork,
		Vendors:           cfg.Vendors,
		SiteCodes:         cfg.SiteCodes,
	}
}
