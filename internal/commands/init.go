// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/chddl/internal/cmdctx"
	"github.com/dacolabs/chddl/internal/config"
	"github.com/dacolabs/chddl/internal/prompts"
	"github.com/spf13/cobra"
)

type initOptions struct {
	table          string
	primaryKey     string
	engine         string
	force          bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a chddl.yaml configuration file",
		Long: `Create a chddl.yaml in the current directory holding the defaults used by
convert: table name, primary key and table engine.`,
		Example: `  # Interactive mode
  chddl init

  # Non-interactive
  chddl init --table-name events --primary-key id --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.table, "table-name", "t", "", "Default table name")
	cmd.Flags().StringVarP(&opts.primaryKey, "primary-key", "k", "", "Default primary key column")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "MergeTree()", "Table engine")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing chddl.yaml")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	sess, err := cmdctx.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !opts.force {
		return errors.New("chddl.yaml already exists; use --force to overwrite")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.table, &opts.primaryKey, &opts.engine); err != nil {
			return err
		}
	}

	cfg := config.Config{
		Version:    config.CurrentConfigVersion,
		Table:      opts.table,
		PrimaryKey: opts.primaryKey,
		Engine:     opts.engine,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write chddl.yaml: %w", err)
	}
	sess.Logger.Debug("config written", "path", cfgPath)

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: cfgPath},
		{Label: "Engine", Value: cfg.Engine},
	}, "Initialization completed")
	return nil
}
