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

package agent

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/carverauto/sentinel/pkg/crypto/envelope"
	"github.com/carverauto/sentinel/pkg/logger"
	"github.com/carverauto/sentinel/pkg/models"
	"github.com/carverauto/sentinel/pkg/natsutil"
	"github.com/carverauto/sentinel/pkg/policy"
	"github.com/carverauto/sentinel/pkg/session"
)

const (
	defaultAgentID      = "sentinel-agent"
	defaultPollInterval = session.DefaultPollInterval
	minPollInterval     = time.Second
	maxPollInterval     = 5 * time.Minute
)

// hostname is swapped in tests.
var hostname = os.Hostname

// Config is the agent's JSON configuration. ClearClipboard is ignored
// outside lockdown mode.
type Config struct {
	AgentID           string           `json:"agent_id"`
	Mode              string           `json:"mode"`
	PollInterval      models.Duration  `json:"poll_interval"`
	ReceiverPublicKey string           `json:"receiver_public_key,omitempty"`
	KeyDerivation     string           `json:"key_derivation,omitempty"`
	ClearClipboard    bool             `json:"clear_clipboard,omitempty"`
	Rules             *policy.Rules    `json:"rules,omitempty"`
	NATS              *natsutil.Config `json:"nats,omitempty"`
	Logging           *logger.Config   `json:"logging,omitempty"`
}

// Normalize fills defaults and clamps the poll interval.
func (c *Config) Normalize() error {
	c.AgentID = strings.TrimSpace(c.AgentID)
	if c.AgentID == "" {
		if name, err := hostname(); err == nil && name != "" {
			c.AgentID = name
		} else {
			c.AgentID = defaultAgentID
		}
	}

	mode, err := session.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	c.Mode = string(mode)

	kd, err := envelope.ParseKeyDerivation(c.KeyDerivation)
	if err != nil {
		return err
	}

	c.KeyDerivation = string(kd)

	d := time.Duration(c.PollInterval)

	switch {
	case d == 0:
		d = defaultPollInterval
	case d < minPollInterval:
		d = minPollInterval
	case d > maxPollInterval:
		d = maxPollInterval
	}

	c.PollInterval = models.Duration(d)
	c.ReceiverPublicKey = strings.TrimSpace(c.ReceiverPublicKey)

	if c.NATS != nil {
		c.NATS.Normalize()
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	return nil
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if _, err := session.ParseMode(c.Mode); err != nil {
		return err
	}

	if _, err := envelope.ParseKeyDerivation(c.KeyDerivation); err != nil {
		return err
	}

	if c.ReceiverPublicKey != "" {
		if _, err := envelope.ParseEncapsulationKey(c.ReceiverPublicKey); err != nil {
			return fmt.Errorf("receiver_public_key: %w", err)
		}
	}

	if c.Rules != nil {
		if err := c.Rules.Validate(); err != nil {
			return err
		}
	}

	if c.NATS != nil {
		if err := c.NATS.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// SessionConfig maps the agent configuration onto the coordinator's.
func (c *Config) SessionConfig() session.Config {
	mode, err := session.ParseMode(c.Mode)
	if err != nil {
		mode = session.ModeAssessment
	}

	return session.Config{
		Mode:           mode,
		PollInterval:   time.Duration(c.PollInterval),
		ClearClipboard: c.ClearClipboard,
	}
}
