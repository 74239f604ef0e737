package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/learnpath/internal/graph"
	"github.com/psidex/learnpath/internal/layout"
	"github.com/psidex/learnpath/internal/scene"
)

const chain = `{"id":"root","title":"root","children":[
	{"id":"A","title":"A","children":[
		{"id":"B","title":"B","children":[{"id":"leaf","title":"leaf"}]},
		{"id":"B2","title":"B2"}
	]},
	{"id":"C","title":"C","children":[{"id":"C0","title":"C0"}]}
]}`

func store(t *testing.T) (*scene.Store, *graph.Graph) {
	t.Helper()
	g, err := graph.NewNormalizer(nil).Normalize([]byte(chain))
	require.NoError(t, err)
	s := scene.NewStore(scene.DefaultStyle(), 0)
	_, err = s.Insert(layout.Radial(g.Root(), layout.DefaultOptions()), g)
	require.NoError(t, err)
	return s, g
}

func TestLeafLineage(t *testing.T) {
	s, _ := store(t)
	sel := Compute(s.Edges(), "leaf")
	assert.Equal(t, []string{"B", "A", "root"}, sel.Lineage)
	assert.Empty(t, sel.Children)
	assert.Equal(t, []string{"leaf", "B", "A", "root"}, sel.Active())
}

func TestLineageLengthIsDepth(t *testing.T) {
	s, g := store(t)
	for _, n := range g.Nodes {
		lineage := Lineage(s.Edges(), n.ID)
		assert.Len(t, lineage, n.Depth, n.ID)
		if n.Depth > 0 {
			assert.Equal(t, "root", lineage[len(lineage)-1])
		}
	}
}

func TestChildrenAreDirectOnly(t *testing.T) {
	s, g := store(t)
	for _, n := range g.Nodes {
		var want []string
		for _, c := range n.Children {
			want = append(want, c.ID)
		}
		assert.Equal(t, want, Children(s.Edges(), n.ID), n.ID)
	}
}

func TestLineageStopsOnCycle(t *testing.T) {
	edges := []*scene.Edge{
		{SourceID: "a", TargetID: "b"},
		{SourceID: "b", TargetID: "c"},
		{SourceID: "c", TargetID: "a"},
	}
	assert.Equal(t, []string{"b", "a"}, Lineage(edges, "c"))
}

func TestOpacityPartition(t *testing.T) {
	s, _ := store(t)
	style := DefaultStyle()
	sel := Compute(s.Edges(), "A")
	Apply(s, sel, style)

	active := map[string]bool{"A": true, "root": true, "B": true, "B2": true}
	for _, n := range s.Nodes() {
		if active[n.ID] {
			assert.Equal(t, Active, sel.Classify(n.ID), n.ID)
			assert.Equal(t, 1.0, n.Opacity, n.ID)
			assert.Equal(t, 0.2, n.DecorationOpacity, n.ID)
		} else {
			assert.Equal(t, Dimmed, sel.Classify(n.ID), n.ID)
			assert.Equal(t, 0.2, n.Opacity, n.ID)
			assert.Equal(t, 0.05, n.DecorationOpacity, n.ID)
		}
	}
	for _, e := range s.Edges() {
		if active[e.SourceID] && active[e.TargetID] {
			assert.Equal(t, 0.9, e.Opacity, e.Key())
			assert.Equal(t, uint32(0x6366F1), e.Color, e.Key())
		} else {
			assert.Equal(t, 0.3, e.Opacity, e.Key())
			assert.Equal(t, uint32(0x94A3B8), e.Color, e.Key())
		}
	}
}

func TestClearedSelectionIsAllActive(t *testing.T) {
	s, _ := store(t)
	style := DefaultStyle()
	Apply(s, Compute(s.Edges(), "leaf"), style)
	Apply(s, Compute(s.Edges(), ""), style)

	sel := Selection{}
	assert.Nil(t, sel.Active())
	for _, n := range s.Nodes() {
		assert.Equal(t, Active, sel.Classify(n.ID))
		assert.Equal(t, 1.0, n.Opacity)
		assert.Equal(t, 0.2, n.DecorationOpacity)
	}
	for _, e := range s.Edges() {
		assert.Equal(t, Active, sel.ClassifyEdge(e))
		assert.Equal(t, 0.4, e.Opacity)
		assert.Equal(t, uint32(0x94A3B8), e.Color)
	}
}
