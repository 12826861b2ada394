// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/dacolabs/chddl/internal/cmdctx"
	"github.com/dacolabs/chddl/internal/pqschema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema of a Parquet file",
		Long:  `Print the schema of a Parquet file or schema document in Parquet message notation.`,
		Example: `  # Inspect a Parquet file before converting it
  chddl schema --parquet-path events.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			schema, err := pqschema.LoadPath(path)
			if err != nil {
				return err
			}
			sess.Logger.Debug("schema loaded", "path", path, "fields", len(schema.Fields))

			_, err = fmt.Fprint(cmd.OutOrStdout(), pqschema.Format(schema))
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "parquet-path", "i", "", "Input Parquet file or YAML/JSON schema document")
	_ = cmd.MarkFlagRequired("parquet-path")

	return cmd
}
