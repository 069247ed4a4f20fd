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

package report

import (
	"context"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

// LogEmitter records envelopes in the structured log.
type LogEmitter struct {
	log logger.Logger
}

func NewLogEmitter(log logger.Logger) *LogEmitter {
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(_ context.Context, env *models.Envelope) error {
	e.log.Warn().
		Str("envelope_id", env.ID).
		Str("report_id", env.ReportID).
		Str("kind", string(env.Kind)).
		Str("agent_id", env.AgentID).
		Int("violation_count", env.ViolationCount).
		Str("payload", env.Payload).
		Msg("Sealed violation report")

	return nil
}
