// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dacolabs/chddl/internal/cmdctx"
	"github.com/dacolabs/chddl/internal/output"
	"github.com/dacolabs/chddl/internal/pqschema"
	"github.com/dacolabs/chddl/internal/prompts"
	"github.com/dacolabs/chddl/internal/session"
	"github.com/dacolabs/chddl/internal/translate"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	parquetPath    string
	outputPath     string
	table          string
	primaryKey     string
	format         string
	nonInteractive bool
}

func newConvertCmd(translators translate.Register) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a Parquet schema to a table definition",
		Long: fmt.Sprintf(`Convert the schema of a Parquet file (or a YAML/JSON schema document) to a
DROP/CREATE TABLE script. Table name and primary key default to the values in
chddl.yaml and are prompted for when missing.

Available formats: %s`, strings.Join(translators.Available(), ", ")),
		Example: `  # Interactive mode for the table name and primary key
  chddl convert -i events.parquet -o events.sql

  # Non-interactive
  chddl convert --parquet-path events.parquet --clickhouse-schema-path events.sql \
    --table-name events --primary-key id --non-interactive

  # Write events.sql to the current directory
  chddl convert -i data/events.parquet -t events -k id

  # From a declarative schema document
  chddl convert -i schema.yaml -o events.sql -t events -k id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, translators, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.parquetPath, "parquet-path", "i", "", "Input Parquet file or YAML/JSON schema document")
	cmd.Flags().StringVarP(&opts.outputPath, "clickhouse-schema-path", "o", "", "Output DDL file (default <input name><format extension>)")
	cmd.Flags().StringVarP(&opts.table, "table-name", "t", "", "Table name (default from chddl.yaml)")
	cmd.Flags().StringVarP(&opts.primaryKey, "primary-key", "k", "", "Primary key column (default from chddl.yaml)")
	cmd.Flags().StringVar(&opts.format, "format", "clickhouse", fmt.Sprintf("Output format (%s)", strings.Join(translators.Available(), ", ")))
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Fail instead of prompting for missing values")
	_ = cmd.MarkFlagRequired("parquet-path")

	return cmd
}

func runConvert(cmd *cobra.Command, translators translate.Register, opts *convertOptions) error {
	sess, err := cmdctx.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	log := sess.Logger

	translator, err := translators.Get(opts.format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			opts.format, strings.Join(translators.Available(), ", "))
	}
	if c, ok := translator.(translate.EngineConfigurable); ok && sess.Config.Engine != "" {
		translator = c.WithEngine(sess.Config.Engine)
	}

	schema, err := pqschema.LoadPath(opts.parquetPath)
	if err != nil {
		return err
	}
	log.Debug("schema loaded", "path", opts.parquetPath, "fields", len(schema.Fields))

	table, primaryKey := resolveTableAndKey(opts, sess)
	if table == "" || primaryKey == "" {
		if opts.nonInteractive {
			return missingValuesError(table, primaryKey)
		}
		if err := prompts.RunConvertForm(&table, &primaryKey, schema.FieldNames()); err != nil {
			return err
		}
	}

	if schema.Field(primaryKey) == nil {
		log.Warn("primary key is not a top-level column", "primary_key", primaryKey, "table", table)
	}

	data, err := translator.Translate(table, schema, primaryKey)
	if err != nil {
		return fmt.Errorf("convert %s: %w", opts.parquetPath, err)
	}

	outFile := opts.outputPath
	if outFile == "" {
		outFile = defaultOutputPath(opts.parquetPath, translator.FileExtension())
	}
	if err := output.WriteFile(outFile, data, 0o644); err != nil { //nolint:gosec // DDL is not secret
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}
	log.Info("ddl written", "path", outFile, "bytes", len(data))

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Table", Value: table},
		{Label: "Primary key", Value: primaryKey},
		{Label: "Columns", Value: strconv.Itoa(len(schema.Fields))},
		{Label: "Output", Value: outFile},
	}, "Schema converted")
	return nil
}

// defaultOutputPath names the output after the input file, in the current directory.
func defaultOutputPath(input, ext string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// resolveTableAndKey applies config defaults to values not given as flags.
func resolveTableAndKey(opts *convertOptions, sess *session.Context) (string, string) {
	table, primaryKey := opts.table, opts.primaryKey
	if table == "" {
		table = sess.Config.Table
	}
	if primaryKey == "" {
		primaryKey = sess.Config.PrimaryKey
	}
	return table, primaryKey
}

func missingValuesError(table, primaryKey string) error {
	var missing []string
	if table == "" {
		missing = append(missing, "--table-name")
	}
	if primaryKey == "" {
		missing = append(missing, "--primary-key")
	}
	return errors.New("non-interactive mode requires " + strings.Join(missing, " and "))
}
