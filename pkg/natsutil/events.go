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

// Package natsutil publishes sealed violation envelopes to NATS JetStream.
package natsutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
)

// Publisher is the slice of jetstream.JetStream the envelope publisher uses.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// EnvelopePublisher wraps sealed envelopes in CloudEvents and publishes them
// to a JetStream subject. It satisfies report.Emitter.
type EnvelopePublisher struct {
	js      Publisher
	stream  string
	subject string
	source  string
	log     logger.Logger
}

// NewEnvelopePublisher creates a publisher for subject on stream. source is
// the CloudEvents source attribute, typically "sentinel/<agent id>".
func NewEnvelopePublisher(js Publisher, stream, subject, source string, log logger.Logger) *EnvelopePublisher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &EnvelopePublisher{
		js:      js,
		stream:  stream,
		subject: subject,
		source:  source,
		log:     log,
	}
}

// Subject returns the subject envelopes are published on.
func (p *EnvelopePublisher) Subject() string {
	return p.subject
}

// Emit publishes env. The envelope id doubles as the JetStream message id so
// redeliveries within the stream's duplicate window are dropped.
func (p *EnvelopePublisher) Emit(ctx context.Context, env *models.Envelope) error {
	createdAt := env.CreatedAt

	event := models.CloudEvent{
		SpecVersion:     models.CloudEventSpecVersion,
		ID:              uuid.New().String(),
		Source:          p.source,
		Type:            models.ViolationEventType,
		DataContentType: "application/json",
		Subject:         p.subject,
		Time:            &createdAt,
		Data:            env,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal violation event: %w", err)
	}

	ack, err := p.js.Publish(ctx, p.subject, eventBytes, jetstream.WithMsgID(env.ID))
	if err != nil {
		return fmt.Errorf("failed to publish violation event: %w", err)
	}

	p.log.Debug().
		Str("event_id", event.ID).
		Str("envelope_id", env.ID).
		Str("subject", p.subject).
		Uint64("seq", ack.Sequence).
		Bool("duplicate", ack.Duplicate).
		Msg("Published violation event")

	return nil
}
