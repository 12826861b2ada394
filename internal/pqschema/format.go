// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pqschema

import (
	"strings"
)

// Format renders the schema in Parquet message notation:
//
//	message schema {
//	  required int32 a;
//	  optional group c {
//	    optional binary a (UTF8);
//	  }
//	}
func Format(s *Schema) string {
	var sb strings.Builder
	name := s.Name
	if name == "" {
		name = "schema"
	}
	sb.WriteString("message " + name + " {\n")

	closing := make([]int, 0, 8) // depths of groups still open
	for v := range Traverse(s) {
		for len(closing) > 0 && closing[len(closing)-1] >= v.Depth {
			d := closing[len(closing)-1]
			closing = closing[:len(closing)-1]
			sb.WriteString(indent(d+1) + "}\n")
		}

		n := v.Node
		sb.WriteString(indent(v.Depth + 1))
		sb.WriteString(n.Repetition.String())
		if n.IsPrimitive() {
			sb.WriteString(" " + physicalKeyword(n.Physical) + " " + n.Name)
			if n.Logical != LogicalNone {
				sb.WriteString(" (" + n.Logical.String() + ")")
			}
			sb.WriteString(";\n")
			continue
		}

		sb.WriteString(" group " + n.Name)
		if n.Logical != LogicalNone {
			sb.WriteString(" (" + n.Logical.String() + ")")
		}
		sb.WriteString(" {\n")
		closing = append(closing, v.Depth)
	}
	for i := len(closing) - 1; i >= 0; i-- {
		sb.WriteString(indent(closing[i]+1) + "}\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// physicalKeyword returns the lower-case keyword used by the Parquet schema printer.
func physicalKeyword(t PhysicalType) string {
	switch t {
	case ByteArray:
		return "binary"
	case FixedLenByteArray:
		return "fixed_len_byte_array"
	default:
		return strings.ToLower(t.String())
	}
}
