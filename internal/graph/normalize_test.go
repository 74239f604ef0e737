package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalize(t *testing.T, payload string) *Graph {
	t.Helper()
	g, err := NewNormalizer(nil).Normalize([]byte(payload))
	require.NoError(t, err)
	return g
}

func ids(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestNestedTreeWithDerivedIds(t *testing.T) {
	g := normalize(t, `{
		"title": "Go",
		"role": "root",
		"explanation": "Learn Go",
		"children": [
			{"title": "Basics", "role": "parent", "children": [
				{"title": "Syntax", "role": "leaf", "task": "Print hello", "quiz": "What is fmt?"}
			]},
			{"title": "Concurrency"}
		]
	}`)

	assert.Equal(t, ShapeNested, g.Shape)
	require.Len(t, g.Roots, 1)
	assert.Equal(t, []string{"n0", "n0.0", "n0.0.0", "n0.1"}, ids(g.Nodes))

	root := g.Root()
	assert.Equal(t, KindRoot, root.Kind)
	assert.Equal(t, "Learn Go", root.Summary())

	basics, ok := g.Node("n0.0")
	require.True(t, ok)
	assert.Equal(t, KindModule, basics.Kind)
	assert.Equal(t, 1, basics.Depth)

	syntax, _ := g.Node("n0.0.0")
	assert.Equal(t, KindSubtopic, syntax.Kind)
	assert.Equal(t, SubtopicContent{Task: "Print hello", Quiz: "What is fmt?"}, syntax.Content)
	assert.Equal(t, 2, syntax.Depth)

	parent, ok := g.Parent("n0.0.0")
	assert.True(t, ok)
	assert.Equal(t, "n0.0", parent)
	_, ok = g.Parent("n0")
	assert.False(t, ok)

	// Untagged leaf below the root.
	conc, _ := g.Node("n0.1")
	assert.Equal(t, KindSubtopic, conc.Kind)
}

func TestProcessResponseKeepsMeta(t *testing.T) {
	g := normalize(t, `{
		"tree": {"title": "Rust", "children": []},
		"chatbot": {"message": "hi", "actions": ["go"]}
	}`)

	assert.Equal(t, 1, g.Len())
	assert.Contains(t, g.Meta, "chatbot")
	assert.NotContains(t, g.Root().Payload, "children")
}

func TestMalformedChildrenIsLeaf(t *testing.T) {
	g := normalize(t, `{"id": "r", "title": "R", "children": "nope"}`)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Root().IsLeaf())

	g = normalize(t, `{"id": "r", "title": "R", "children": [1, {"id": "a"}]}`)
	assert.Equal(t, []string{"r", "a"}, ids(g.Nodes))
	assert.Equal(t, []DroppedLink{{From: "r", Reason: ReasonMalformed}}, g.Dropped)
}

func TestNestedCycleIsDropped(t *testing.T) {
	g := normalize(t, `{"id": "root", "children": [
		{"id": "a", "children": [{"id": "root", "title": "again"}, {"id": "b"}]}
	]}`)

	assert.Equal(t, []string{"root", "a", "b"}, ids(g.Nodes))
	assert.Equal(t, []DroppedLink{{From: "a", To: "root", Reason: ReasonCycle}}, g.Dropped)
}

func TestNestedDuplicateIsRekeyed(t *testing.T) {
	g := normalize(t, `{"id": "root", "children": [
		{"id": "x"},
		{"id": "y", "children": [{"id": "x"}]}
	]}`)

	assert.Equal(t, []string{"root", "x", "y", "n0.1.0"}, ids(g.Nodes))
	y, _ := g.Node("y")
	assert.Equal(t, "n0.1.0", y.Children[0].ID)
}

func TestDerivedIdsAvoidExplicitIds(t *testing.T) {
	g := normalize(t, `{"title": "root", "children": [
		{"id": "n0", "title": "child", "children": [{"title": "grandchild"}]},
		{"title": "other"}
	]}`)

	assert.Empty(t, g.Dropped)
	assert.Equal(t, []string{"n0~1", "n0", "n0.0.0", "n0.1"}, ids(g.Nodes))
	child, ok := g.Node("n0")
	require.True(t, ok)
	assert.Equal(t, "child", child.Title)
	parent, _ := g.Parent("n0")
	assert.Equal(t, "n0~1", parent)
}

func TestFlatUnknownEdgeDropped(t *testing.T) {
	g := normalize(t, `{"nodes": [{"id": "x", "level": 1}], "edges": [{"from": "x", "to": "y"}]}`)

	assert.Equal(t, ShapeFlat, g.Shape)
	assert.Equal(t, []string{"x"}, ids(g.Nodes))
	assert.Equal(t, []string{"x"}, ids(g.Roots))
	assert.Equal(t, []DroppedLink{{From: "x", To: "y", Reason: ReasonUnknownNode}}, g.Dropped)
	x, _ := g.Node("x")
	assert.True(t, x.HasLevel)
	assert.Equal(t, 1, x.Level)
}

func TestFlatBuildsTree(t *testing.T) {
	g := normalize(t, `{
		"domain": "ml",
		"nodes": [
			{"id": "a", "level": 1, "title": "Algebra"},
			{"id": "b", "level": 2},
			{"id": "c", "level": 2},
			{"id": "d", "level": 3}
		],
		"edges": [
			{"from": "a", "to": "b"},
			{"from": "a", "to": "c"},
			{"from": "b", "to": "d"},
			{"from": "c", "to": "d"},
			{"from": "d", "to": "a"},
			{"from": "b", "to": "b"}
		]
	}`)

	assert.Equal(t, []string{"a"}, ids(g.Roots))
	a, _ := g.Node("a")
	assert.Equal(t, []string{"b", "c"}, ids(a.Children))
	assert.Equal(t, KindRoot, a.Kind)

	d, _ := g.Node("d")
	assert.Equal(t, 2, d.Depth)
	p, _ := g.Parent("d")
	assert.Equal(t, "b", p)

	assert.Equal(t, []DroppedLink{
		{From: "c", To: "d", Reason: ReasonSecondParent},
		{From: "d", To: "a", Reason: ReasonCycle},
		{From: "b", To: "b", Reason: ReasonCycle},
	}, g.Dropped)
	assert.Equal(t, "ml", g.Meta["domain"])
}

func TestFlatNumericIds(t *testing.T) {
	g := normalize(t, `{"nodes": [{"id": 1}, {"id": 2}, {"title": "no id"}], "edges": [{"from": 1, "to": 2}]}`)
	assert.Equal(t, []string{"1", "2"}, ids(g.Nodes))
	assert.Equal(t, []string{"1"}, ids(g.Roots))
}

func TestSuggestionKind(t *testing.T) {
	g := normalize(t, `{"id": "r", "children": [{"id": "s", "type": "suggestion", "description": "Try Rust"}]}`)
	s, _ := g.Node("s")
	assert.Equal(t, KindSuggestion, s.Kind)
	assert.Equal(t, "Try Rust", s.Summary())
}

func TestNormalizeErrors(t *testing.T) {
	n := NewNormalizer(nil)

	_, err := n.Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)
	_, err = n.Normalize([]byte("null"))
	assert.ErrorIs(t, err, ErrEmptyPayload)
	_, err = n.Normalize([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrUnknownShape)
	_, err = n.Normalize([]byte(`{"foo": 1}`))
	assert.ErrorIs(t, err, ErrUnknownShape)
	_, err = n.Normalize([]byte(`{`))
	assert.Error(t, err)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Intro to Go", plainText("  Intro to Go "))
	assert.Equal(t, "Intro to Go", plainText("<b>Intro</b> to <i>Go</i>"))
	assert.Equal(t, "a & b", plainText("a &amp; b"))
	assert.Equal(t, "x", plainText("<script>alert(1)</script>x"))
}
