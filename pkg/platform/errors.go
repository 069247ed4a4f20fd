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
	"errors"
	"fmt"
)

// Facet names used in CollectionError and in snapshot failure records.
const (
	FacetAntivirus       = "antivirus"
	FacetBrowsers        = "browsers"
	FacetExtensions      = "extensions"
	FacetDisplays        = "displays"
	FacetNetworkAdapters = "network_adapters"
	FacetHosts           = "hosts"
	FacetActiveWindow    = "active_window"
	FacetVirtualization  = "virtualization"
	FacetProcesses       = "processes"
)

var (
	// ErrUnsupportedPlatform is returned by New on an operating system without a collector.
	ErrUnsupportedPlatform = errors.New("platform: no collector for this operating system")
	errNoForegroundTool    = errors.New("no foreground window tool available")
)

// CollectionError reports that a single collector call failed.
type CollectionError struct {
	Facet string
	Err   error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Facet, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

func collectionError(facet string, err error) error {
	if err == nil {
		return nil
	}

	var ce *CollectionError
	if errors.As(err, &ce) {
		return err
	}

	return &CollectionError{Facet: facet, Err: err}
}
