// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package clickhouse

import (
	"errors"
	"fmt"

	"github.com/dacolabs/chddl/internal/pqschema"
)

// Structural names used by Parquet writers for list and map wrappers.
const (
	wrapperArray   = "array"
	wrapperList    = "list"
	wrapperElement = "element"
	wrapperItem    = "item"
	keyValueName   = "key_value"
)

// shape is the classification of a schema node.
type shape int

const (
	shapePrimitive shape = iota
	shapeList
	shapeMap
	shapeStruct
)

func classify(n *pqschema.Node) shape {
	switch {
	case n.IsPrimitive():
		return shapePrimitive
	case n.Logical == pqschema.LogicalList:
		return shapeList
	case n.Logical == pqschema.LogicalMap,
		n.Logical == pqschema.LogicalMapKeyValue,
		n.Name == keyValueName:
		return shapeMap
	default:
		return shapeStruct
	}
}

func isWrapperName(name string) bool {
	switch name {
	case wrapperArray, wrapperList, wrapperElement, wrapperItem:
		return true
	}
	return false
}

// isTransparent reports whether n is a wrapper group that adds no nesting of its own.
func isTransparent(n *pqschema.Node) bool {
	return classify(n) == shapeStruct && isWrapperName(n.Name)
}

// nodeError records the deepest node a render failed on.
type nodeError struct {
	node *pqschema.Node
	err  error
}

func (e *nodeError) Error() string { return e.err.Error() }
func (e *nodeError) Unwrap() error { return e.err }

// dispatch renders n and its subtree.
func dispatch(n *pqschema.Node, c Context) (Fragments, error) {
	f, err := visitNode(n, c)
	if err != nil {
		var ne *nodeError
		if !errors.As(err, &ne) {
			err = &nodeError{node: n, err: err}
		}
		return nil, err
	}
	return f, nil
}

// failedPath returns the dotted path from column to the node err failed on.
func failedPath(column *pqschema.Node, err error) string {
	var ne *nodeError
	if !errors.As(err, &ne) {
		return column.Name
	}
	for v := range pqschema.Traverse(&pqschema.Schema{Fields: []*pqschema.Node{column}}) {
		if v.Node == ne.node {
			return v.DottedPath()
		}
	}
	return column.Name
}

func visitNode(n *pqschema.Node, c Context) (Fragments, error) {
	if !n.IsPrimitive() && len(n.Children) == 0 {
		return nil, fmt.Errorf("%w: group %q has no fields", ErrUnsupportedSchema, n.Name)
	}

	switch classify(n) {
	case shapePrimitive:
		return visitPrimitive(n, c)
	case shapeList:
		item, err := listItem(n)
		if err != nil {
			return nil, err
		}
		return visitList(n, item, c)
	case shapeMap:
		if n.Logical == pqschema.LogicalMap {
			return visitMap(n, c)
		}
		return visitKeyValue(n, c.WithMarker(MarkerMap))
	case shapeStruct:
		return visitStruct(n, c)
	}
	return nil, fmt.Errorf("%w: cannot classify %q", ErrUnsupportedSchema, n.Name)
}

// listItem resolves the element type of a LIST group.
//
// The group must hold a single repeated field. A repeated primitive is the item
// itself. A repeated group with one field is the standard three-level encoding
// and is unwrapped, unless it is named "array" or "<list>_tuple": those legacy
// wrappers are single-field structs and are the item as-is.
func listItem(list *pqschema.Node) (*pqschema.Node, error) {
	if len(list.Children) != 1 {
		return nil, fmt.Errorf("%w: %q has %d fields, want exactly one", ErrMalformedList, list.Name, len(list.Children))
	}

	repeated := list.Children[0]
	if repeated.IsPrimitive() {
		if repeated.Repetition != pqschema.Repeated {
			return nil, fmt.Errorf("%w: %q: primitive element %q must be repeated, got %s",
				ErrMalformedList, list.Name, repeated.Name, repeated.Repetition)
		}
		return repeated, nil
	}

	if len(repeated.Children) == 1 &&
		repeated.Name != wrapperArray &&
		repeated.Name != list.Name+"_tuple" {
		return repeated.Children[0], nil
	}
	return repeated, nil
}

func visitPrimitive(n *pqschema.Node, c Context) (Fragments, error) {
	t, err := MapType(n.Physical, n.Logical)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", n.Name, err)
	}

	switch {
	case c.Marker == MarkerMap:
		// map keys and values are anonymous
		return Fragments{columnType(n, t, false), "\n"}, nil
	case n.Name == c.PrimaryKey:
		return Fragments{n.Name, " ", string(t), "\n"}, nil
	default:
		return Fragments{n.Name, " ", columnType(n, t, c.TopLevel), "\n"}, nil
	}
}

func visitStruct(n *pqschema.Node, c Context) (Fragments, error) {
	var f Fragments

	wrapped := !isWrapperName(n.Name)
	inner := c.Member()
	if wrapped {
		inner = c.Nested()
		if c.Marker == MarkerMap {
			inner = inner.WithMarker(MarkerMapTupleValue)
			f.add("Tuple(\n")
		} else {
			f.add(n.Name, " Tuple(\n")
		}
	}

	body, err := visitFields(n.Children, inner, inner.Pad())
	if err != nil {
		return nil, err
	}
	f.addAll(body)

	if wrapped {
		f.add(c.Pad(), ")\n")
	}
	return f, nil
}

func visitMap(n *pqschema.Node, c Context) (Fragments, error) {
	if len(n.Children) != 1 || n.Children[0].IsPrimitive() {
		return nil, fmt.Errorf("%w: map %q must wrap a single key/value group", ErrUnsupportedSchema, n.Name)
	}

	var f Fragments
	if c.Marker == MarkerMap {
		f.add("Map (\n")
	} else {
		f.add(n.Name, " Map (\n")
	}

	body, err := visitKeyValue(n.Children[0], c.WithMarker(MarkerMap))
	if err != nil {
		return nil, err
	}
	f.addAll(body)
	return f, nil
}

// visitKeyValue renders the synthetic key/value group of a map and closes the
// Map opened by its parent.
func visitKeyValue(kv *pqschema.Node, c Context) (Fragments, error) {
	if len(kv.Children) != 2 {
		return nil, fmt.Errorf("%w: key/value group %q has %d fields, want key and value",
			ErrUnsupportedSchema, kv.Name, len(kv.Children))
	}

	inner := c.Nested()
	f, err := visitFields(kv.Children, inner, inner.Pad())
	if err != nil {
		return nil, err
	}
	f.add(c.Pad(), ")\n")
	return f, nil
}

func visitList(list, item *pqschema.Node, c Context) (Fragments, error) {
	if list.Logical != pqschema.LogicalList {
		return nil, fmt.Errorf("%w: %q is not a LIST (got %s)", ErrUnsupportedSchema, list.Name, list.Logical)
	}

	var f Fragments
	if c.Marker == MarkerMap {
		f.add("Nested (\n")
	} else {
		f.add(list.Name, " Nested (\n")
	}

	inner := c.Nested().WithMarker(MarkerNone)
	// wrapper groups indent their own fields
	if !isTransparent(item) {
		f.add(inner.Pad())
	}
	body, err := dispatch(item, inner)
	if err != nil {
		return nil, err
	}
	f.addAll(body)

	f.add(c.Pad(), ")\n")
	return f, nil
}

// visitFields renders sibling fields, separating them with commas.
func visitFields(fields []*pqschema.Node, c Context, pad string) (Fragments, error) {
	var f Fragments
	for i, field := range fields {
		if i == 0 {
			f.add(pad)
		} else {
			f.add(pad, ", ")
		}
		body, err := dispatch(field, c)
		if err != nil {
			return nil, err
		}
		f.addAll(body)
	}
	return f, nil
}
