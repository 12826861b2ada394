// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate provides schema translation utilities.
package translate

import (
	"fmt"
	"sort"

	"github.com/dacolabs/chddl/internal/pqschema"
)

// Translator defines the interface all DDL translators must implement.
type Translator interface {
	// Name returns the translator's identifier (e.g., "clickhouse")
	Name() string

	// Translate converts a Parquet schema to a table definition.
	// table names the created table; primaryKey names its primary key column.
	Translate(table string, schema *pqschema.Schema, primaryKey string) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".sql")
	FileExtension() string
}

// EngineConfigurable is implemented by translators whose table engine can be
// overridden, typically from configuration.
type EngineConfigurable interface {
	Translator
	WithEngine(engine string) Translator
}

// Register maps translator names to translators.
type Register map[string]Translator

// Add registers t under its own name.
func (r Register) Add(t Translator) {
	r[t.Name()] = t
}

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
