// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/chddl/internal/commands"
	"github.com/dacolabs/chddl/internal/translate"
	"github.com/dacolabs/chddl/internal/translate/clickhouse"
)

// Translators returns the translators available to the CLI.
func Translators() translate.Register {
	translators := make(translate.Register)
	translators.Add(clickhouse.New())
	return translators
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments, env lookup).
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd(Translators(), getenv)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
