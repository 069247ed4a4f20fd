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

//go:generate mockgen -destination=mock_session.go -package=session github.com/carverauto/sentinel/pkg/session Clock,Ticker,Surface

package session

import (
	"context"
	"time"

	"github.com/carverauto/sentinel/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Surface is the foreground the session protects. Closed fires when the user
// ends the session; Terminate tears it down because of a violation.
type Surface interface {
	Closed() <-chan struct{}
	Terminate(reason string, env *models.Envelope)
}

// SurfaceFactory builds the foreground. The coordinator calls it only after
// the startup assessment has finished.
type SurfaceFactory func(ctx context.Context) (Surface, error)
