// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pqschema

import (
	"iter"
	"strings"
)

// Visit describes a node reached during traversal.
type Visit struct {
	Node  *Node
	Path  []string // names from the top-level field down to Node
	Depth int      // 0 for top-level fields
}

// DottedPath returns the path joined with dots, e.g. "d.list.element".
func (v Visit) DottedPath() string {
	return strings.Join(v.Path, ".")
}

// Traverse returns a depth-first, pre-order iterator over every node of the schema.
func Traverse(s *Schema) iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		for _, f := range s.Fields {
			if !traverse(f, nil, 0, yield) {
				return
			}
		}
	}
}

func traverse(n *Node, parent []string, depth int, yield func(Visit) bool) bool {
	if n == nil {
		return true
	}
	path := make([]string, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = n.Name

	if !yield(Visit{Node: n, Path: path, Depth: depth}) {
		return false
	}
	for _, c := range n.Children {
		if !traverse(c, path, depth+1, yield) {
			return false
		}
	}
	return true
}
