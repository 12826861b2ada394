// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package clickhouse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/dacolabs/chddl/internal/pqschema"
	"github.com/dacolabs/chddl/internal/translate"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnsupportedType indicates a physical or logical type with no ClickHouse mapping.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMalformedList indicates a LIST group that does not follow the list encoding.
	ErrMalformedList = errors.New("malformed list")

	// ErrUnsupportedSchema indicates a group whose shape cannot be translated.
	ErrUnsupportedSchema = errors.New("unsupported schema")

	// ErrIO indicates the output could not be written.
	ErrIO = errors.New("write failed")

	// ErrInvalidArgument indicates a missing table name or primary key.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DefaultEngine is the table engine used when none is configured.
const DefaultEngine = "MergeTree()"

// Translator translates Parquet schemas to ClickHouse DROP/CREATE TABLE statements.
type Translator struct {
	// Engine is the table engine clause; DefaultEngine when empty.
	Engine string
}

// New creates a ClickHouse translator with the default engine.
func New() *Translator {
	return &Translator{Engine: DefaultEngine}
}

var _ translate.EngineConfigurable = (*Translator)(nil)

// WithEngine returns a copy of t that uses engine; an empty engine keeps t's.
func (t *Translator) WithEngine(engine string) translate.Translator {
	c := *t
	if engine != "" {
		c.Engine = engine
	}
	return &c
}

// Name returns the translator's identifier.
func (t *Translator) Name() string {
	return "clickhouse"
}

// FileExtension returns the file extension for SQL files.
func (t *Translator) FileExtension() string {
	return ".sql"
}

// Translate renders the DDL for schema s into memory.
func (t *Translator) Translate(table string, s *pqschema.Schema, primaryKey string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: no schema", ErrUnsupportedSchema)
	}
	var buf bytes.Buffer
	if err := t.Convert(&buf, s.Fields, table, primaryKey); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Convert writes the DDL for the given top-level fields to w.
func Convert(w io.Writer, fields []*pqschema.Node, table, primaryKey string) error {
	return New().Convert(w, fields, table, primaryKey)
}

// Convert writes the DDL for the given top-level fields to w. Nothing is
// written unless every field translates.
func (t *Translator) Convert(w io.Writer, fields []*pqschema.Node, table, primaryKey string) error {
	if table == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidArgument)
	}
	if primaryKey == "" {
		return fmt.Errorf("%w: primary key is required", ErrInvalidArgument)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: table %q has no columns", ErrUnsupportedSchema, table)
	}

	columns, err := renderColumns(fields, primaryKey)
	if err != nil {
		return err
	}

	engine := t.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	var f Fragments
	f.add("drop table if exists ", table, ";\n")
	f.add("create table ", table, " (\n")
	pad := NewContext(primaryKey).Pad()
	for i, col := range columns {
		if i == 0 {
			f.add(pad)
		} else {
			f.add(pad, ", ")
		}
		f.addAll(col)
	}
	f.add(") engine = ", engine, " primary key (", primaryKey, ");\n")

	bw := bufio.NewWriter(w)
	if _, err := f.WriteTo(bw); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// renderColumns renders each top-level field. Fields are independent subtrees,
// so they render concurrently; results and the reported error keep
// declaration order.
func renderColumns(fields []*pqschema.Node, primaryKey string) ([]Fragments, error) {
	columns := make([]Fragments, len(fields))
	errs := make([]error, len(fields))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, field := range fields {
		g.Go(func() error {
			col, err := dispatch(field, NewContext(primaryKey))
			if err != nil {
				errs[i] = fmt.Errorf("column %q at %s: %w", field.Name, failedPath(field, err), err)
				return errs[i]
			}
			columns[i] = col
			return nil
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return columns, nil
}
