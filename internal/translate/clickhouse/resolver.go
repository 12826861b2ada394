// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package clickhouse translates Parquet schemas to ClickHouse CREATE TABLE statements.
package clickhouse

import (
	"fmt"

	"github.com/dacolabs/chddl/internal/pqschema"
)

// ScalarType is a ClickHouse scalar column type.
type ScalarType string

// Supported scalar types.
const (
	Bool    ScalarType = "Bool"
	Int32   ScalarType = "Int32"
	Int64   ScalarType = "Int64"
	Float32 ScalarType = "Float32"
	Float64 ScalarType = "Float64"
	String  ScalarType = "String"
)

// MapType maps a physical/logical type pair to a ClickHouse scalar type.
// A logical annotation takes precedence over the physical type.
func MapType(physical pqschema.PhysicalType, logical pqschema.LogicalType) (ScalarType, error) {
	if logical != pqschema.LogicalNone {
		switch logical {
		case pqschema.LogicalUTF8:
			return String, nil
		case pqschema.LogicalDate:
			return Int32, nil
		case pqschema.LogicalTimestampMillis:
			return Int64, nil
		default:
			return "", fmt.Errorf("%w: logical type %s", ErrUnsupportedType, logical)
		}
	}

	switch physical {
	case pqschema.Boolean:
		return Bool, nil
	case pqschema.Int32:
		return Int32, nil
	case pqschema.Int64:
		return Int64, nil
	case pqschema.Float:
		return Float32, nil
	case pqschema.Double:
		return Float64, nil
	case pqschema.ByteArray:
		return String, nil
	default:
		return "", fmt.Errorf("%w: physical type %s", ErrUnsupportedType, physical)
	}
}

// columnType wraps t in Nullable. Only a required column of the table itself
// is emitted bare; nested members, list items and map entries are always Nullable.
func columnType(n *pqschema.Node, t ScalarType, topLevel bool) string {
	if topLevel && n.Repetition == pqschema.Required {
		return string(t)
	}
	return "Nullable(" + string(t) + ")"
}
