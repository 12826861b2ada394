// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunConvertForm asks for the table name and primary key when they are not
// already set. The primary key is chosen among the top-level columns; an
// input field is shown instead when there are none to offer.
func RunConvertForm(table, primaryKey *string, columns []string) error {
	askTable := *table == ""
	askKey := *primaryKey == ""
	if !askTable && !askKey {
		return nil
	}

	var keyField huh.Field
	if len(columns) > 0 {
		options := make([]huh.Option[string], len(columns))
		for i, c := range columns {
			options[i] = huh.NewOption(c, c)
		}
		keyField = huh.NewSelect[string]().
			Title("Primary key").
			Options(options...).
			Value(primaryKey)
	} else {
		keyField = huh.NewInput().
			Title("Primary key").
			Prompt(": ").
			Inline(true).
			Value(primaryKey).
			Validate(requiredValidator("primary key"))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Table name").
				Prompt(": ").
				Inline(true).
				Value(table).
				Validate(ValidateIdentifier),
		).WithHideFunc(func() bool { return !askTable }),
		huh.NewGroup(keyField).WithHideFunc(func() bool { return !askKey }),
	).WithTheme(Theme()).Run()
}
