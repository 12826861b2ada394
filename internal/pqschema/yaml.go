// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pqschema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawSchema is the declarative schema document. JSON documents decode through
// the same path since YAML is a superset of JSON.
//
//	name: events
//	fields:
//	  - name: id
//	    type: INT64
//	    repetition: required
//	  - name: tags
//	    logical: LIST
//	    fields:
//	      - name: list
//	        repetition: repeated
//	        fields:
//	          - name: element
//	            type: BYTE_ARRAY
//	            logical: UTF8
type rawSchema struct {
	Name   string    `yaml:"name"`
	Fields []rawNode `yaml:"fields"`
}

type rawNode struct {
	Name       string        `yaml:"name"`
	Type       *PhysicalType `yaml:"type,omitempty"`
	Logical    LogicalType   `yaml:"logical,omitempty"`
	Repetition *Repetition   `yaml:"repetition,omitempty"`
	Fields     []rawNode     `yaml:"fields,omitempty"`
}

func parseDocument(data []byte) (*Schema, error) {
	var raw rawSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Fields) == 0 {
		return nil, errors.New("schema has no fields")
	}

	s := &Schema{
		Name:   raw.Name,
		Fields: make([]*Node, 0, len(raw.Fields)),
	}
	for i := range raw.Fields {
		n, err := raw.Fields[i].toNode("")
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, n)
	}
	return s, nil
}

func (r *rawNode) toNode(parent string) (*Node, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("field under %q has no name", parent)
	}
	p := r.Name
	if parent != "" {
		p = parent + "." + r.Name
	}

	rep := Optional
	if r.Repetition != nil {
		rep = *r.Repetition
	}

	switch {
	case r.Type != nil && len(r.Fields) > 0:
		return nil, fmt.Errorf("field %q: a field has either a type or nested fields, not both", p)
	case r.Type != nil:
		return NewPrimitive(r.Name, rep, *r.Type, r.Logical), nil
	case len(r.Fields) > 0:
		children := make([]*Node, 0, len(r.Fields))
		for i := range r.Fields {
			c, err := r.Fields[i].toNode(p)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return NewGroup(r.Name, rep, r.Logical, children...), nil
	default:
		return nil, fmt.Errorf("field %q: missing type or nested fields", p)
	}
}
