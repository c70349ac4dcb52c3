// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix namespaces every environment variable read by the CLI.
const envPrefix = "CONFKEEPER_"

// parseEnv populates cfg from CONFKEEPER_* environment variables using the
// caarlos0/env library. Fields are mapped via their `env` tags on [Config].
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg *Config) error {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
