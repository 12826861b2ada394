// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles chddl project configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dacolabs/chddl/internal/output"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default name of the configuration file.
const FileName = "chddl.yaml"

// Config represents the chddl.yaml configuration file.
// Every field except Version is optional; command-line flags take precedence.
type Config struct {
	Version    int    `yaml:"version"`
	Table      string `yaml:"table,omitempty"`
	PrimaryKey string `yaml:"primary_key,omitempty"`
	Engine     string `yaml:"engine,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Version: CurrentConfigVersion}
}

// Load reads a Config from a file path. An empty file yields Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return output.WriteFile(path, buf.Bytes(), 0o600)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Engine != "" && !validEngine(c.Engine) {
		return fmt.Errorf("invalid engine %q: expected a call such as MergeTree()", c.Engine)
	}
	if strings.ContainsAny(c.Table, " \t\n;") {
		return fmt.Errorf("invalid table name %q", c.Table)
	}
	return nil
}

func validEngine(engine string) bool {
	open := strings.IndexByte(engine, '(')
	return open > 0 && strings.HasSuffix(engine, ")") && !strings.ContainsRune(engine, ';')
}
