// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package clickhouse

import (
	"io"
	"strings"
)

// indentWidth is the number of spaces per nesting level.
const indentWidth = 4

// Marker records whether recursion is inside a map's key/value pair.
type Marker int

// Marker values.
const (
	MarkerNone Marker = iota
	MarkerMap
	MarkerMapTupleValue
)

func (m Marker) String() string {
	switch m {
	case MarkerMap:
		return "map"
	case MarkerMapTupleValue:
		return "map-tuple-value"
	default:
		return "none"
	}
}

// Context is the traversal state handed to every visit. It is passed by value,
// so adjustments made for one subtree are never seen by its siblings.
type Context struct {
	PrimaryKey string
	Indent     int
	Marker     Marker

	// TopLevel is set only while rendering a column of the table itself.
	TopLevel bool
}

// NewContext returns the context used for a top-level column.
func NewContext(primaryKey string) Context {
	return Context{PrimaryKey: primaryKey, Indent: 1, TopLevel: true}
}

// Nested returns a copy one indentation level deeper.
func (c Context) Nested() Context {
	c.Indent++
	c.TopLevel = false
	return c
}

// Member returns a copy for the fields of a group, at the same indentation.
func (c Context) Member() Context {
	c.TopLevel = false
	return c
}

// WithMarker returns a copy with the given marker.
func (c Context) WithMarker(m Marker) Context {
	c.Marker = m
	return c
}

// Pad returns the indentation prefix for the current level.
func (c Context) Pad() string {
	return strings.Repeat(" ", c.Indent*indentWidth)
}

// Fragments is an ordered sequence of DDL text segments.
type Fragments []string

func (f *Fragments) add(s ...string) {
	*f = append(*f, s...)
}

func (f *Fragments) addAll(other Fragments) {
	*f = append(*f, other...)
}

// String concatenates the fragments.
func (f Fragments) String() string {
	return strings.Join(f, "")
}

// WriteTo writes the fragments to w in order.
func (f Fragments) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range f {
		n, err := io.WriteString(w, s)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
