// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pqschema models Parquet schema trees and loads them from Parquet
// files or declarative YAML/JSON documents.
package pqschema

// Kind distinguishes leaves from groups.
type Kind int

// Node kinds.
const (
	KindPrimitive Kind = iota
	KindGroup
)

func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "primitive"
}

// Node is one element of a Parquet schema tree.
//
// Primitive nodes carry a physical type and no children. Group nodes carry an
// ordered, non-empty list of children; their Logical annotation (LIST, MAP,
// MAP_KEY_VALUE or NONE) tells consumers how to interpret them.
type Node struct {
	Name       string
	Kind       Kind
	Repetition Repetition
	Physical   PhysicalType
	Logical    LogicalType
	Children   []*Node
}

// NewPrimitive returns a leaf node.
func NewPrimitive(name string, rep Repetition, physical PhysicalType, logical LogicalType) *Node {
	return &Node{
		Name:       name,
		Kind:       KindPrimitive,
		Repetition: rep,
		Physical:   physical,
		Logical:    logical,
	}
}

// NewGroup returns a group node with the given children.
func NewGroup(name string, rep Repetition, logical LogicalType, children ...*Node) *Node {
	return &Node{
		Name:       name,
		Kind:       KindGroup,
		Repetition: rep,
		Logical:    logical,
		Children:   children,
	}
}

// IsPrimitive reports whether n is a leaf.
func (n *Node) IsPrimitive() bool {
	return n.Kind == KindPrimitive
}

// Schema is a parsed schema: the root message name and its top-level fields.
type Schema struct {
	Name   string
	Fields []*Node
}

// FieldNames returns the names of the top-level fields in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the top-level field with the given name, or nil.
func (s *Schema) Field(name string) *Node {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}
