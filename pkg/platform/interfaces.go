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

//go:generate mockgen -destination=mock_platform.go -package=platform github.com/carverauto/sentinel/pkg/platform Collector

// Package platform normalizes host telemetry from each operating system into
// the shared models used by the policy engine.
package platform

import (
	"context"

	"github.com/carverauto/sentinel/pkg/models"
)

// Profiler answers point-in-time questions about the host. Every call is
// independent; a failure in one must not stop callers from trying the others.
type Profiler interface {
	ListAntivirus(ctx context.Context) ([]models.AntivirusProduct, error)
	ListBrowsers(ctx context.Context) ([]models.Browser, error)
	ListExtensions(ctx context.Context, browser models.Browser) ([]models.Extension, error)
	ListDisplays(ctx context.Context) ([]models.Display, error)
	ListNetworkAdapters(ctx context.Context) ([]models.NetworkAdapter, error)
	ParseHostsOverrides(ctx context.Context) ([]models.HostsEntry, error)
	ActiveWindowTitle(ctx context.Context) (string, error)
	IsVirtualMachine(ctx context.Context) (bool, error)
}

// ProcessScanner enumerates running processes.
type ProcessScanner interface {
	ScanProcesses(ctx context.Context) ([]models.Process, error)
}

// Collector is the full capability set one operating system provides.
type Collector interface {
	Profiler
	ProcessScanner
	Name() string
}
