// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides configuration and logger loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dacolabs/chddl/internal/config"
)

var (
	// ErrConfigNotFound indicates the config file named by ConfigEnv doesn't exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigEnv names the environment variable that overrides the config file path.
const ConfigEnv = "CHDDL_CONFIG"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved configuration and the command logger.
type Context struct {
	// Config is the loaded configuration, or config.Default() when no file exists.
	Config *config.Config

	// ConfigPath is the file Config was read from; empty for defaults.
	ConfigPath string

	Logger *slog.Logger
}

// Options controls how Load resolves the session.
type Options struct {
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer

	// Verbose enables debug logging.
	Verbose bool
}

// Load resolves the configuration and logger and returns a new
// context.Context with the session Context stored in it.
//
// The config file is the one named by CHDDL_CONFIG, which must exist, or
// chddl.yaml in the working directory, which is optional.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(opts.LogOutput, &slog.HandlerOptions{Level: level}))

	configPath, explicit, err := resolveConfigPath(opts.Getenv)
	if err != nil {
		return nil, err
	}

	sess := &Context{Config: config.Default(), Logger: logger}

	if _, statErr := os.Stat(configPath); statErr != nil {
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		logger.Debug("no config file, using defaults", "path", configPath)
		return context.WithValue(ctx, contextKey{}, sess), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, configPath, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, configPath, validateErr)
	}

	sess.Config = cfg
	sess.ConfigPath = configPath
	logger.Debug("config loaded", "path", configPath)

	return context.WithValue(ctx, contextKey{}, sess), nil
}

func resolveConfigPath(getenv func(string) string) (string, bool, error) {
	if p := getenv(ConfigEnv); p != "" {
		return p, true, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, config.FileName), false, nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sess, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sess
	}
	return nil
}
