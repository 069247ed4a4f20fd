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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carverauto/sentinel/pkg/agent"
	"github.com/carverauto/sentinel/pkg/config"
	"github.com/carverauto/sentinel/pkg/lifecycle"
	"github.com/carverauto/sentinel/pkg/session"
	"github.com/carverauto/sentinel/pkg/version"
)

const (
	exitOK          = 0
	exitError       = 1
	exitBlocked     = 2
	exitInterrupted = 3
)

type flags struct {
	configPath  string
	mode        string
	showVersion bool
}

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Printf("sentinel: %v", err)
	}

	os.Exit(code)
}

func run(args []string, stdout io.Writer) (int, error) {
	f, err := parseFlags(args)
	if err != nil {
		return exitError, err
	}

	if f.showVersion {
		_, _ = fmt.Fprintln(stdout, version.GetFullVersion())
		return exitOK, nil
	}

	ctx := context.Background()

	cfg, err := loadConfig(ctx, f.configPath, f.mode)
	if err != nil {
		return exitError, err
	}

	componentLogger, err := lifecycle.CreateComponentLogger("sentinel", cfg.Logging)
	if err != nil {
		return exitError, fmt.Errorf("failed to create component logger: %w", err)
	}

	componentLogger.Info().Str("version", version.GetFullVersion()).Msg("Starting sentinel")

	a, err := agent.New(ctx, cfg, componentLogger)
	if err != nil {
		return exitError, fmt.Errorf("failed to initialize agent: %w", err)
	}
	defer a.Close()

	outcome, err := a.Run(ctx)
	if outcome != nil {
		componentLogger.Info().Str("state", outcome.State.String()).Msg("Session ended")
	}

	return exitCode(outcome, err), err
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}

	fs := flag.NewFlagSet("sentinel", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "Path to sentinel config file (defaults apply when empty)")
	fs.StringVar(&f.mode, "mode", "", "Override the session mode: assessment or lockdown")
	fs.BoolVar(&f.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}

// loadConfig reads the config from path, or from the environment when
// CONFIG_SOURCE=env. With neither, the built-in defaults are used. A non-empty
// mode overrides the configured one.
func loadConfig(ctx context.Context, path, mode string) (*agent.Config, error) {
	cfg := &agent.Config{}

	if path != "" || os.Getenv("CONFIG_SOURCE") == "env" {
		if err := config.NewConfig(nil).LoadAndValidate(ctx, path, cfg); err != nil {
			return nil, err
		}
	}

	if mode != "" {
		cfg.Mode = mode
	}

	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func exitCode(outcome *session.Outcome, err error) int {
	switch {
	case errors.Is(err, session.ErrSessionBlocked):
		return exitBlocked
	case errors.Is(err, context.Canceled):
		return exitOK
	case err != nil:
		return exitError
	case outcome != nil && outcome.State == session.StateInterrupted:
		return exitInterrupted
	default:
		return exitOK
	}
}
