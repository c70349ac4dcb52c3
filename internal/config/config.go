// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config assembles the process configuration of the confkeeper CLI
// from environment variables and command-line overrides, merged in
// precedence order (overrides win over environment, environment wins over
// built-in defaults).
package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Config holds everything the CLI needs to open a store.
//
// Struct tags map fields to CONFKEEPER_* environment variables via
// caarlos0/env.
type Config struct {
	// Path is the location of the configuration store file.
	// Env: CONFKEEPER_PATH
	Path string `env:"PATH"`

	// Encoding is the IANA charset name of the store file.
	// Env: CONFKEEPER_ENCODING
	Encoding string `env:"ENCODING"`

	// Interactive enables the create-file confirmation prompt when the
	// store file is missing. Non-interactive runs exit instead.
	// Env: CONFKEEPER_INTERACTIVE
	Interactive bool `env:"INTERACTIVE"`

	// LogLevel is the minimum emitted diagnostics level
	// (debug, info, warn, error).
	// Env: CONFKEEPER_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Defaults returns the built-in configuration baseline.
func Defaults() *Config {
	return &Config{
		Encoding: "UTF-8",
		LogLevel: "debug",
	}
}

// Build merges the configuration sources into one Config. overrides usually
// carries flag values and may be nil.
func Build(overrides *Config) (*Config, error) {
	b := newBuilder().withEnv()
	if overrides != nil {
		b = b.withOverrides(overrides)
	}
	return b.build()
}

type builder struct {
	configs []*Config
	err     error
}

func newBuilder() *builder {
	return &builder{
		configs: make([]*Config, 0, 3),
	}
}

// build merges the collected sources. Later sources were appended with
// higher precedence, so merging walks them in reverse and lets mergo fill
// only the still-empty fields, finishing with the defaults.
func (b *builder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(Config)
	for i := len(b.configs) - 1; i >= 0; i-- {
		if err := mergo.Merge(config, b.configs[i]); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	if err := mergo.Merge(config, Defaults()); err != nil {
		return nil, fmt.Errorf("error merging defaults: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (b *builder) withEnv() *builder {
	envCfg := &Config{}
	if err := parseEnv(envCfg); err != nil {
		b.err = err
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *builder) withOverrides(cfg *Config) *builder {
	b.configs = append(b.configs, cfg)
	return b
}

func (c *Config) validate() error {
	if c.Path == "" {
		return ErrMissingPath
	}
	return nil
}
