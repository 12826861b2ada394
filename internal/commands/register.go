// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/chddl/internal/cmdctx"
	"github.com/dacolabs/chddl/internal/translate"
	"github.com/dacolabs/chddl/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators translate.Register, getenv func(string) string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chddl",
		Short: "Generate ClickHouse table definitions from Parquet schemas",
		Long: `chddl reads the schema of a Parquet file, or a YAML/JSON schema document,
and writes the matching ClickHouse DROP/CREATE TABLE statements.`,
		Version:           version.Short(),
		PersistentPreRunE: cmdctx.PreRunLoad(getenv),
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().Bool(cmdctx.VerboseFlag, false, "Enable debug logging")

	rootCmd.AddCommand(newConvertCmd(translators))
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
