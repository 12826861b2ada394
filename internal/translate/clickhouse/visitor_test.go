// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package clickhouse

import (
	"testing"

	"github.com/dacolabs/chddl/internal/pqschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf8(name string, rep pqschema.Repetition) *pqschema.Node {
	return pqschema.NewPrimitive(name, rep, pqschema.ByteArray, pqschema.LogicalUTF8)
}

func int32Field(name string, rep pqschema.Repetition) *pqschema.Node {
	return pqschema.NewPrimitive(name, rep, pqschema.Int32, pqschema.LogicalNone)
}

func int64Field(name string, rep pqschema.Repetition) *pqschema.Node {
	return pqschema.NewPrimitive(name, rep, pqschema.Int64, pqschema.LogicalNone)
}

func group(name string, children ...*pqschema.Node) *pqschema.Node {
	return pqschema.NewGroup(name, pqschema.Optional, pqschema.LogicalNone, children...)
}

// list builds the standard three-level list encoding.
func list(name string, element *pqschema.Node) *pqschema.Node {
	return pqschema.NewGroup(name, pqschema.Optional, pqschema.LogicalList,
		pqschema.NewGroup("list", pqschema.Repeated, pqschema.LogicalNone, element))
}

// mapOf builds the standard map encoding.
func mapOf(name string, key, value *pqschema.Node) *pqschema.Node {
	return pqschema.NewGroup(name, pqschema.Optional, pqschema.LogicalMap,
		pqschema.NewGroup("key_value", pqschema.Repeated, pqschema.LogicalNone, key, value))
}

func render(t *testing.T, n *pqschema.Node, pk string) string {
	t.Helper()
	f, err := dispatch(n, NewContext(pk))
	require.NoError(t, err)
	return f.String()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node *pqschema.Node
		want shape
	}{
		{"primitive", utf8("a", pqschema.Optional), shapePrimitive},
		{"list", list("l", utf8("element", pqschema.Optional)), shapeList},
		{"map", mapOf("m", utf8("key", pqschema.Required), utf8("value", pqschema.Optional)), shapeMap},
		{"map key value annotation", pqschema.NewGroup("map", pqschema.Repeated, pqschema.LogicalMapKeyValue,
			utf8("key", pqschema.Required), utf8("value", pqschema.Optional)), shapeMap},
		{"key value by name", group("key_value", utf8("key", pqschema.Required), utf8("value", pqschema.Optional)), shapeMap},
		{"struct", group("c", utf8("a", pqschema.Optional)), shapeStruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.node))
		})
	}
}

func TestVisitPrimitive(t *testing.T) {
	tests := []struct {
		name string
		node *pqschema.Node
		pk   string
		want string
	}{
		{"optional", utf8("b", pqschema.Optional), "foo", "b Nullable(String)\n"},
		{"required", int32Field("a", pqschema.Required), "foo", "a Int32\n"},
		{"primary key is never nullable", int32Field("foo", pqschema.Optional), "foo", "foo Int32\n"},
		{"date", pqschema.NewPrimitive("d", pqschema.Optional, pqschema.Int32, pqschema.LogicalDate), "foo", "d Nullable(Int32)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.node, tt.pk))
		})
	}
}

func TestVisitPrimitive_InsideMapIsAnonymous(t *testing.T) {
	c := NewContext("key").WithMarker(MarkerMap)

	f, err := visitPrimitive(utf8("key", pqschema.Optional), c)
	require.NoError(t, err)
	assert.Equal(t, "Nullable(String)\n", f.String())
}

func TestVisitStruct(t *testing.T) {
	c := group("c", utf8("a", pqschema.Optional), utf8("b", pqschema.Optional))

	want := "c Tuple(\n" +
		"        a Nullable(String)\n" +
		"        , b Nullable(String)\n" +
		"    )\n"
	assert.Equal(t, want, render(t, c, "foo"))
}

func TestVisitStruct_RequiredMembersStayNullable(t *testing.T) {
	s := group("s", int64Field("x", pqschema.Required))

	want := "s Tuple(\n" +
		"        x Nullable(Int64)\n" +
		"    )\n"
	assert.Equal(t, want, render(t, s, "foo"))

	element := group("element", int64Field("x", pqschema.Required))
	assert.Equal(t, "    x Nullable(Int64)\n", render(t, element, "foo"))
}

func TestVisitStruct_Nested(t *testing.T) {
	c := group("c", group("x", int64Field("y", pqschema.Optional)), utf8("z", pqschema.Optional))

	want := "c Tuple(\n" +
		"        x Tuple(\n" +
		"            y Nullable(Int64)\n" +
		"        )\n" +
		"        , z Nullable(String)\n" +
		"    )\n"
	assert.Equal(t, want, render(t, c, "foo"))
}

func TestVisitStruct_WrapperNamesAreTransparent(t *testing.T) {
	for _, name := range []string{"array", "list", "element", "item"} {
		t.Run(name, func(t *testing.T) {
			n := group(name, utf8("a", pqschema.Optional), utf8("b", pqschema.Optional))
			want := "    a Nullable(String)\n" +
				"    , b Nullable(String)\n"
			assert.Equal(t, want, render(t, n, "foo"))
		})
	}
}

func TestVisitList(t *testing.T) {
	tests := []struct {
		name string
		node *pqschema.Node
		want string
	}{
		{
			name: "list of single-field struct",
			node: list("d", group("element", utf8("a", pqschema.Optional))),
			want: "d Nested (\n" +
				"        a Nullable(String)\n" +
				"    )\n",
		},
		{
			name: "list of struct",
			node: list("d", group("element", utf8("a", pqschema.Optional), int64Field("b", pqschema.Required))),
			want: "d Nested (\n" +
				"        a Nullable(String)\n" +
				"        , b Nullable(Int64)\n" +
				"    )\n",
		},
		{
			name: "list of primitive",
			node: list("tags", utf8("element", pqschema.Optional)),
			want: "tags Nested (\n" +
				"        element Nullable(String)\n" +
				"    )\n",
		},
		{
			name: "two-level list of primitive",
			node: pqschema.NewGroup("scores", pqschema.Optional, pqschema.LogicalList,
				int32Field("array", pqschema.Repeated)),
			want: "scores Nested (\n" +
				"        array Nullable(Int32)\n" +
				"    )\n",
		},
		{
			name: "list of named struct",
			node: list("points", group("point", int32Field("x", pqschema.Required), int32Field("y", pqschema.Required))),
			want: "points Nested (\n" +
				"        point Tuple(\n" +
				"            x Nullable(Int32)\n" +
				"            , y Nullable(Int32)\n" +
				"        )\n" +
				"    )\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.node, "foo"))
		})
	}
}

func TestListItem(t *testing.T) {
	element := utf8("element", pqschema.Optional)
	standard := list("l", element)
	item, err := listItem(standard)
	require.NoError(t, err)
	assert.Same(t, element, item)

	repeatedPrimitive := int32Field("array", pqschema.Repeated)
	twoLevel := pqschema.NewGroup("l", pqschema.Optional, pqschema.LogicalList, repeatedPrimitive)
	item, err = listItem(twoLevel)
	require.NoError(t, err)
	assert.Same(t, repeatedPrimitive, item)

	// single-field groups named "array" or "<list>_tuple" are the element itself
	for _, wrapper := range []string{"array", "pts_tuple"} {
		w := pqschema.NewGroup(wrapper, pqschema.Repeated, pqschema.LogicalNone, int32Field("x", pqschema.Required))
		l := pqschema.NewGroup("pts", pqschema.Optional, pqschema.LogicalList, w)
		item, err = listItem(l)
		require.NoError(t, err)
		assert.Same(t, w, item, wrapper)
	}

	// multi-field repeated group is the element itself
	multi := pqschema.NewGroup("bag", pqschema.Repeated, pqschema.LogicalNone,
		int32Field("x", pqschema.Required), int32Field("y", pqschema.Required))
	item, err = listItem(pqschema.NewGroup("pts", pqschema.Optional, pqschema.LogicalList, multi))
	require.NoError(t, err)
	assert.Same(t, multi, item)
}

func TestVisitList_TupleWrapperIsNotUnwrapped(t *testing.T) {
	tuple := pqschema.NewGroup("pts", pqschema.Optional, pqschema.LogicalList,
		pqschema.NewGroup("pts_tuple", pqschema.Repeated, pqschema.LogicalNone, int32Field("x", pqschema.Required)))
	want := "pts Nested (\n" +
		"        pts_tuple Tuple(\n" +
		"            x Nullable(Int32)\n" +
		"        )\n" +
		"    )\n"
	assert.Equal(t, want, render(t, tuple, "foo"))

	bag := pqschema.NewGroup("pts", pqschema.Optional, pqschema.LogicalList,
		pqschema.NewGroup("bag", pqschema.Repeated, pqschema.LogicalNone, int32Field("x", pqschema.Required)))
	want = "pts Nested (\n" +
		"        x Nullable(Int32)\n" +
		"    )\n"
	assert.Equal(t, want, render(t, bag, "foo"))
}

func TestVisitList_Malformed(t *testing.T) {
	tests := []struct {
		name string
		node *pqschema.Node
	}{
		{
			name: "two children",
			node: pqschema.NewGroup("l", pqschema.Optional, pqschema.LogicalList,
				int32Field("a", pqschema.Repeated), int32Field("b", pqschema.Repeated)),
		},
		{
			name: "non-repeated primitive element",
			node: pqschema.NewGroup("l", pqschema.Optional, pqschema.LogicalList,
				int32Field("element", pqschema.Optional)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dispatch(tt.node, NewContext("foo"))
			require.ErrorIs(t, err, ErrMalformedList)
			assert.Contains(t, err.Error(), `"l"`)
		})
	}
}

func TestVisitList_RejectsNonList(t *testing.T) {
	n := group("l", utf8("a", pqschema.Optional))
	_, err := visitList(n, n.Children[0], NewContext("foo"))
	require.ErrorIs(t, err, ErrUnsupportedSchema)
}

func TestVisitMap(t *testing.T) {
	tests := []struct {
		name string
		node *pqschema.Node
		want string
	}{
		{
			name: "scalar key and value",
			node: mapOf("m", utf8("key", pqschema.Required), int64Field("value", pqschema.Optional)),
			want: "m Map (\n" +
				"        Nullable(String)\n" +
				"        , Nullable(Int64)\n" +
				"    )\n",
		},
		{
			name: "optional key",
			node: mapOf("m", utf8("key", pqschema.Optional), utf8("value", pqschema.Optional)),
			want: "m Map (\n" +
				"        Nullable(String)\n" +
				"        , Nullable(String)\n" +
				"    )\n",
		},
		{
			name: "struct value",
			node: mapOf("e", utf8("key", pqschema.Required),
				group("value", utf8("a", pqschema.Optional), utf8("b", pqschema.Optional))),
			want: "e Map (\n" +
				"        Nullable(String)\n" +
				"        , Tuple(\n" +
				"            a Nullable(String)\n" +
				"            , b Nullable(String)\n" +
				"        )\n" +
				"    )\n",
		},
		{
			name: "struct value with nested struct",
			node: mapOf("e", utf8("key", pqschema.Required),
				group("value", group("inner", utf8("a", pqschema.Optional)))),
			want: "e Map (\n" +
				"        Nullable(String)\n" +
				"        , Tuple(\n" +
				"            inner Tuple(\n" +
				"                a Nullable(String)\n" +
				"            )\n" +
				"        )\n" +
				"    )\n",
		},
		{
			name: "map value",
			node: mapOf("m", utf8("key", pqschema.Required),
				mapOf("value", utf8("key", pqschema.Required), int64Field("value", pqschema.Optional))),
			want: "m Map (\n" +
				"        Nullable(String)\n" +
				"        , Map (\n" +
				"            Nullable(String)\n" +
				"            , Nullable(Int64)\n" +
				"        )\n" +
				"    )\n",
		},
		{
			name: "list value",
			node: mapOf("m", utf8("key", pqschema.Required), list("value", int32Field("element", pqschema.Optional))),
			want: "m Map (\n" +
				"        Nullable(String)\n" +
				"        , Nested (\n" +
				"            element Nullable(Int32)\n" +
				"        )\n" +
				"    )\n",
		},
		{
			name: "key value group without map annotation name",
			node: pqschema.NewGroup("m", pqschema.Optional, pqschema.LogicalMap,
				pqschema.NewGroup("map", pqschema.Repeated, pqschema.LogicalMapKeyValue,
					utf8("key", pqschema.Required), int32Field("value", pqschema.Required))),
			want: "m Map (\n" +
				"        Nullable(String)\n" +
				"        , Nullable(Int32)\n" +
				"    )\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.node, "foo"))
		})
	}
}

func TestVisitList_OfMap(t *testing.T) {
	n := list("d", mapOf("element", utf8("key", pqschema.Required), int32Field("value", pqschema.Optional)))

	want := "d Nested (\n" +
		"        element Map (\n" +
		"            Nullable(String)\n" +
		"            , Nullable(Int32)\n" +
		"        )\n" +
		"    )\n"
	assert.Equal(t, want, render(t, n, "foo"))
}

func TestVisitMap_PrimaryKeyIgnoredInsideMap(t *testing.T) {
	n := mapOf("m", utf8("key", pqschema.Optional), int64Field("value", pqschema.Optional))
	out := render(t, n, "key")
	assert.Contains(t, out, "        Nullable(String)\n")
}

func TestVisitMap_Malformed(t *testing.T) {
	tests := []struct {
		name string
		node *pqschema.Node
	}{
		{
			name: "map with two children",
			node: pqschema.NewGroup("m", pqschema.Optional, pqschema.LogicalMap,
				group("key_value", utf8("key", pqschema.Required), utf8("value", pqschema.Optional)),
				utf8("extra", pqschema.Optional)),
		},
		{
			name: "map wrapping a primitive",
			node: pqschema.NewGroup("m", pqschema.Optional, pqschema.LogicalMap, utf8("key", pqschema.Repeated)),
		},
		{
			name: "key value with one field",
			node: pqschema.NewGroup("m", pqschema.Optional, pqschema.LogicalMap,
				pqschema.NewGroup("key_value", pqschema.Repeated, pqschema.LogicalNone, utf8("key", pqschema.Required))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dispatch(tt.node, NewContext("foo"))
			require.ErrorIs(t, err, ErrUnsupportedSchema)
		})
	}
}

func TestDispatch_EmptyGroup(t *testing.T) {
	_, err := dispatch(group("empty"), NewContext("foo"))
	require.ErrorIs(t, err, ErrUnsupportedSchema)
	assert.Contains(t, err.Error(), `"empty"`)
}

func TestDispatch_UnsupportedTypeNamesField(t *testing.T) {
	n := group("c", pqschema.NewPrimitive("legacy_ts", pqschema.Optional, pqschema.Int96, pqschema.LogicalNone))
	_, err := dispatch(n, NewContext("foo"))
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), `"legacy_ts"`)
}

func TestFailedPath(t *testing.T) {
	leaf := pqschema.NewPrimitive("legacy_ts", pqschema.Optional, pqschema.Int96, pqschema.LogicalNone)
	n := group("c", utf8("a", pqschema.Optional), group("inner", leaf))

	_, err := dispatch(n, NewContext("foo"))
	require.Error(t, err)
	assert.Equal(t, "c.inner.legacy_ts", failedPath(n, err))
	assert.Equal(t, "c", failedPath(n, ErrIO))
}

func TestContext_CopiesAreIndependent(t *testing.T) {
	c := NewContext("id")
	nested := c.Nested().WithMarker(MarkerMap)

	assert.Equal(t, 1, c.Indent)
	assert.Equal(t, MarkerNone, c.Marker)
	assert.Equal(t, 2, nested.Indent)
	assert.Equal(t, MarkerMap, nested.Marker)
	assert.Equal(t, "id", nested.PrimaryKey)
	assert.True(t, c.TopLevel)
	assert.False(t, nested.TopLevel)
	assert.False(t, c.Member().TopLevel)
	assert.Equal(t, c.Indent, c.Member().Indent)
	assert.Equal(t, "    ", c.Pad())
	assert.Equal(t, "        ", nested.Pad())
}
