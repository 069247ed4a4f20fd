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

package platform

import (
	"context"
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

// Option customizes collector construction.
type Option func(*options)

type options struct {
	homeDir   string
	hostsPath string
}

// WithHomeDir overrides the user home directory used to locate browser data.
func WithHomeDir(dir string) Option {
	return func(o *options) {
		o.homeDir = dir
	}
}

// WithHostsPath overrides the hosts override file location.
func WithHostsPath(path string) Option {
	return func(o *options) {
		o.hostsPath = path
	}
}

// New returns the collector for the operating system this binary was built for.
func New(log logger.Logger, opts ...Option) (Collector, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.homeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.homeDir = home
		}
	}

	if o.hostsPath == "" {
		o.hostsPath = defaultHostsPath()
	}

	return newPlatformCollector(log, o)
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// base carries the facets every operating system collects the same way.
type base struct {
	log            logger.Logger
	homeDir        string
	hostsPath      string
	listProcesses  func(context.Context) ([]models.Process, error)
	listInterfaces func(context.Context) (psnet.InterfaceStatList, error)
	virtualization func(context.Context) (string, string, error)
	run            commandRunner
	lookPath       func(string) (string, error)
}

func newBase(log logger.Logger, o *options) base {
	return base{
		log:            log,
		homeDir:        o.homeDir,
		hostsPath:      o.hostsPath,
		listProcesses:  scanProcesses,
		listInterfaces: psnet.InterfacesWithContext,
		virtualization: host.VirtualizationWithContext,
		run:            runCommand,
		lookPath:       exec.LookPath,
	}
}

func (b *base) ScanProcesses(ctx context.Context) ([]models.Process, error) {
	procs, err := b.listProcesses(ctx)
	if err != nil {
		return nil, collectionError(FacetProcesses, err)
	}

	return procs, nil
}

func (b *base) ParseHostsOverrides(_ context.Context) ([]models.HostsEntry, error) {
	entries, err := readHostsFile(b.hostsPath)
	if err != nil {
		return nil, collectionError(FacetHosts, err)
	}

	return entries, nil
}

// ListExtensions fails only when every profile of the browser is unreadable;
// otherwise unreadable profiles are logged and skipped.
func (b *base) ListExtensions(_ context.Context, browser models.Browser) ([]models.Extension, error) {
	scan := scanExtensions(browser)
	if err := scan.err(); err != nil {
		return nil, collectionError(FacetExtensions, err)
	}

	for _, f := range scan.failures {
		b.log.Warn().
			Err(f.err).
			Str("browser", browser.Name).
			Str("profile", f.profile).
			Msg("Skipping unreadable browser profile")
	}

	return scan.extensions, nil
}

func (b *base) connectedAdapters(ctx context.Context, describe func(string) string) ([]models.NetworkAdapter, error) {
	ifaces, err := b.listInterfaces(ctx)
	if err != nil {
		return nil, collectionError(FacetNetworkAdapters, err)
	}

	return connectedAdapters(ifaces, describe), nil
}

// guest reports whether gopsutil detects the host as a virtualization guest.
func (b *base) guest(ctx context.Context) (bool, error) {
	system, role, err := b.virtualization(ctx)
	if err != nil {
		return false, err
	}

	return system != "" && role == "guest", nil
}

func (b *base) runningAntivirus(ctx context.Context) ([]models.AntivirusProduct, error) {
	procs, err := b.listProcesses(ctx)
	if err != nil {
		return nil, collectionError(FacetAntivirus, err)
	}

	return antivirusFromProcesses(procs), nil
}
