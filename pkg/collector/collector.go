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

// Package collector implements the per-device collection pipeline (spec
// §4.6): driver selection, credential fallback, sequential method calls
// over one open session, and collection-run assembly.
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scottpeterman/rapidcmdb/pkg/credentials"
	"github.com/scottpeterman/rapidcmdb/pkg/driver"
	"github.com/scottpeterman/rapidcmdb/pkg/logger"
	"github.com/scottpeterman/rapidcmdb/pkg/models"
	"github.com/scottpeterman/rapidcmdb/pkg/writer"
)

// DefaultWorkers is the collector's bounded worker-pool size (spec §4.6).
const DefaultWorkers = 10

// Config parameterizes one CollectAll call.
type Config struct {
	Workers        int
	EnabledMethods map[string]bool
	UseCache       bool
	// ShapeFields derives the credential-cache shape key fields for a
	// device and its selected driver; defaults to
	// {SiteCode, Vendor, DeviceRole, driver}.
	ShapeFields func(dev models.InventoryDevice, driverName string) []string
}

// Result pairs one device's collection run with its resolved display
// name — updated from get_facts per spec §4.6 step 4 — which the writer
// uses to derive the output directory name. CollectionRun itself carries
// no name field (spec §3's schema is fixed to device-id).
type Result struct {
	Run        models.CollectionRun
	DeviceName string
}

// Collector drives the driver-selection -> credential-fallback ->
// sequential-method-call pipeline over a bounded worker pool.
type Collector struct {
	registry *driver.Registry
	opener   driver.Opener
	cache    *credentials.Cache
	logger   logger.Logger
}

// New builds a Collector from its driver registry, session opener, and
// credential cache (pass a freshly-made *credentials.Cache to disable
// persistence across calls, or share one for its process lifetime).
func New(registry *driver.Registry, opener driver.Opener, cache *credentials.Cache, log logger.Logger) *Collector {
	return &Collector{registry: registry, opener: opener, cache: cache, logger: log}
}

func defaultShapeFields(dev models.InventoryDevice, driverName string) []string {
	return []string{dev.SiteCode, dev.Vendor, string(dev.DeviceRole), driverName}
}

// CollectAll runs the pipeline for every device concurrently, bounded by
// cfg.Workers, and returns one Result per device in input order. A single
// device's failure never aborts the run — every failure mode is recorded
// on that device's Result, not returned as an error.
func (c *Collector) CollectAll(ctx context.Context, devices []models.InventoryDevice, creds []models.Credential, cfg Config) ([]Result, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	shapeFields := cfg.ShapeFields
	if shapeFields == nil {
		shapeFields = defaultShapeFields
	}

	results := make([]Result, len(devices))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	var mu sync.Mutex

	for i, dev := range devices {
		idx, device := i, dev

		g.Go(func() error {
			res := c.collectDevice(ctx, device, creds, cfg, shapeFields)

			mu.Lock()
			results[idx] = res
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return results, nil
}

func (c *Collector) collectDevice(
	ctx context.Context,
	dev models.InventoryDevice,
	creds []models.Credential,
	cfg Config,
	shapeFields func(models.InventoryDevice, string) []string,
) Result {
	started := time.Now()

	run := models.CollectionRun{
		DeviceID:     dev.DeviceKey,
		CollectionIP: dev.IP,
		StartedAt:    started,
		Data:         make(map[string]interface{}),
	}
	resolvedName := dev.DeviceName

	driverName := c.registry.Select(dev.Vendor, dev.Model, "")
	if driverName == driver.NoDriver {
		run.Errors = append(run.Errors, "no driver")
		run.EndedAt = time.Now()
		run.DurationSeconds = run.EndedAt.Sub(run.StartedAt).Seconds()

		return Result{Run: run, DeviceName: resolvedName}
	}

	run.Driver = driverName

	ordered := creds
	shapeKey := ""

	if cfg.UseCache && c.cache != nil {
		shapeKey = credentials.ShapeKey(shapeFields(dev, driverName)...)
		ordered = c.cache.Ordered(shapeKey, creds)
	}

	session, usedCred, ok := c.openSession(ctx, driverName, dev.IP, ordered, &run)
	if !ok {
		run.EndedAt = time.Now()
		run.DurationSeconds = run.EndedAt.Sub(run.StartedAt).Seconds()

		return Result{Run: run, DeviceName: resolvedName}
	}

	if cfg.UseCache && c.cache != nil {
		c.cache.Remember(shapeKey, usedCred.Name)
	}

	run.CredentialUsed = usedCred.Name
	run.CredentialSource = "tested"

	resolvedName = c.runMethods(ctx, session, cfg.EnabledMethods, &run, resolvedName)

	if err := session.Close(); err != nil && c.logger != nil {
		c.logger.Debug().Err(err).Str("device", dev.DeviceKey).Msg("error closing driver session")
	}

	run.Success = len(run.MethodsCollected) > 0
	run.EndedAt = time.Now()
	run.DurationSeconds = run.EndedAt.Sub(run.StartedAt).Seconds()

	return Result{Run: run, DeviceName: resolvedName}
}

// openSession iterates ordered credentials ascending priority, returning
// the first session that opens successfully (spec §4.6 step 2).
func (c *Collector) openSession(
	ctx context.Context,
	driverName, host string,
	ordered []models.Credential,
	run *models.CollectionRun,
) (driver.Session, models.Credential, bool) {
	for _, cred := range ordered {
		opts := driver.Options{ElevatedSecret: cred.ElevatedSecret}

		session, err := c.opener.Open(ctx, driverName, host, cred, opts)
		if err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("credential %s: %s", cred.Name, err))
			continue
		}

		return session, cred, true
	}

	return nil, models.Credential{}, false
}

// runMethods executes the configured method list sequentially over one
// open session (spec §4.6 step 4), returning the (possibly updated)
// device display name.
func (c *Collector) runMethods(
	ctx context.Context,
	session driver.Session,
	enabled map[string]bool,
	run *models.CollectionRun,
	fallbackName string,
) string {
	name := fallbackName

	for _, method := range orderedMethods(enabled) {
		start := time.Now()

		data, err := session.Call(ctx, method)
		duration := time.Since(start).Seconds()

		if err != nil {
			run.MethodsFailed = append(run.MethodsFailed, models.MethodFailure{
				Name:     method,
				Duration: duration,
				Error:    err.Error(),
				Success:  false,
			})

			continue
		}

		run.Data[method] = data
		run.MethodsCollected = append(run.MethodsCollected, models.MethodResult{
			Name:     method,
			Duration: duration,
			Bytes:    approximateSize(data),
			Success:  true,
		})

		if method == factsMethod {
			if hostname, ok := factsHostname(data); ok {
				name = writer.SafeDeviceName(hostname)
			}
		}
	}

	return name
}
