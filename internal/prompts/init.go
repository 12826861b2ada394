// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(table, primaryKey, engine *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default table name").
				Description("Leave empty to pass --table-name on each run").
				Prompt(": ").
				Inline(true).
				Value(table).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return ValidateIdentifier(s)
				}),
			huh.NewInput().
				Title("Default primary key").
				Prompt(": ").
				Inline(true).
				Value(primaryKey),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Table engine").
				Options(
					huh.NewOption("MergeTree (recommended)", "MergeTree()"),
					huh.NewOption("ReplacingMergeTree", "ReplacingMergeTree()"),
					huh.NewOption("SummingMergeTree", "SummingMergeTree()"),
					huh.NewOption("Custom", ""),
				).
				Value(engine),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Custom engine").
				Placeholder("CollapsingMergeTree(sign)").
				Validate(func(s string) error {
					if !strings.HasSuffix(s, ")") {
						return errors.New("engine must be a call such as MergeTree()")
					}
					return nil
				}).
				Value(engine),
		).WithHideFunc(func() bool { return *engine != "" && strings.HasSuffix(*engine, ")") }),
	).WithTheme(Theme()).Run()
}
