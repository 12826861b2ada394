// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package cmdctx wires the session into cobra commands.
package cmdctx

import (
	"errors"

	"github.com/dacolabs/chddl/internal/session"
	"github.com/spf13/cobra"
)

// VerboseFlag is the persistent flag that enables debug logging.
const VerboseFlag = "verbose"

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *session.Context {
	return session.From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's context,
// returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*session.Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("session not loaded")
	}
	return ctx, nil
}

// PreRunLoad returns a PersistentPreRunE function that loads the session
// and stores it in the command's context. Logs go to the command's stderr.
func PreRunLoad(getenv func(string) string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		verbose := false
		if f := cmd.Flags().Lookup(VerboseFlag); f != nil {
			verbose = f.Value.String() == "true"
		}

		ctx, err := session.Load(cmd.Context(), session.Options{
			Getenv:    getenv,
			LogOutput: cmd.ErrOrStderr(),
			Verbose:   verbose,
		})
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}
}
