// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pqschema

import (
	"fmt"
	"strings"
)

// Repetition is the per-field cardinality marker.
type Repetition int

// Repetition values.
const (
	Required Repetition = iota
	Optional
	Repeated
)

var repetitionNames = []string{"required", "optional", "repeated"}

func (r Repetition) String() string {
	if int(r) < 0 || int(r) >= len(repetitionNames) {
		return fmt.Sprintf("Repetition(%d)", int(r))
	}
	return repetitionNames[r]
}

// ParseRepetition parses a repetition name, case-insensitively.
func ParseRepetition(s string) (Repetition, error) {
	for i, name := range repetitionNames {
		if strings.EqualFold(s, name) {
			return Repetition(i), nil
		}
	}
	return 0, fmt.Errorf("unknown repetition %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Repetition) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Repetition) UnmarshalText(b []byte) error {
	v, err := ParseRepetition(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// PhysicalType is the on-disk primitive type of a leaf.
type PhysicalType int

// Physical types. PhysicalUndefined is used for group nodes.
const (
	PhysicalUndefined PhysicalType = iota
	Boolean
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

var physicalNames = []string{
	"UNDEFINED",
	"BOOLEAN",
	"INT32",
	"INT64",
	"INT96",
	"FLOAT",
	"DOUBLE",
	"BYTE_ARRAY",
	"FIXED_LEN_BYTE_ARRAY",
}

func (t PhysicalType) String() string {
	if int(t) < 0 || int(t) >= len(physicalNames) {
		return fmt.Sprintf("PhysicalType(%d)", int(t))
	}
	return physicalNames[t]
}

// ParsePhysicalType parses a Parquet physical type name such as "INT32" or "byte_array".
func ParsePhysicalType(s string) (PhysicalType, error) {
	for i, name := range physicalNames[1:] {
		if strings.EqualFold(s, name) {
			return PhysicalType(i + 1), nil
		}
	}
	return PhysicalUndefined, fmt.Errorf("unknown physical type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t PhysicalType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PhysicalType) UnmarshalText(b []byte) error {
	v, err := ParsePhysicalType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// LogicalType is the converted type annotation refining a physical type or
// tagging a group. LogicalNone means no annotation.
type LogicalType int

// Logical (converted) types.
const (
	LogicalNone LogicalType = iota
	LogicalUTF8
	LogicalMap
	LogicalMapKeyValue
	LogicalList
	LogicalEnum
	LogicalDecimal
	LogicalDate
	LogicalTimeMillis
	LogicalTimeMicros
	LogicalTimestampMillis
	LogicalTimestampMicros
	LogicalUint8
	LogicalUint16
	LogicalUint32
	LogicalUint64
	LogicalInt8
	LogicalInt16
	LogicalInt32
	LogicalInt64
	LogicalJSON
	LogicalBSON
	LogicalInterval
)

var logicalNames = []string{
	"NONE",
	"UTF8",
	"MAP",
	"MAP_KEY_VALUE",
	"LIST",
	"ENUM",
	"DECIMAL",
	"DATE",
	"TIME_MILLIS",
	"TIME_MICROS",
	"TIMESTAMP_MILLIS",
	"TIMESTAMP_MICROS",
	"UINT_8",
	"UINT_16",
	"UINT_32",
	"UINT_64",
	"INT_8",
	"INT_16",
	"INT_32",
	"INT_64",
	"JSON",
	"BSON",
	"INTERVAL",
}

func (t LogicalType) String() string {
	if int(t) < 0 || int(t) >= len(logicalNames) {
		return fmt.Sprintf("LogicalType(%d)", int(t))
	}
	return logicalNames[t]
}

// ParseLogicalType parses a converted type name such as "UTF8" or "timestamp_millis".
// The empty string parses as LogicalNone.
func ParseLogicalType(s string) (LogicalType, error) {
	if s == "" {
		return LogicalNone, nil
	}
	for i, name := range logicalNames {
		if strings.EqualFold(s, name) {
			return LogicalType(i), nil
		}
	}
	return LogicalNone, fmt.Errorf("unknown logical type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t LogicalType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *LogicalType) UnmarshalText(b []byte) error {
	v, err := ParseLogicalType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
