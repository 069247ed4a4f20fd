//go:build !linux && !windows && !darwin

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
	"github.com/carverauto/sentinel/pkg/logger"
)

func newPlatformCollector(_ logger.Logger, _ *options) (Collector, error) {
	return nil, ErrUnsupportedPlatform
}

func defaultHostsPath() string {
	return "/etc/hosts"
}
