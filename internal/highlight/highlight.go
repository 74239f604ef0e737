// Package highlight derives a selection's lineage and children from the scene edges and
// applies the resulting opacities.
package highlight

import "github.com/psidex/learnpath/internal/scene"

type Class int

const (
	Active Class = iota
	Dimmed
)

func (c Class) String() string {
	if c == Dimmed {
		return "dimmed"
	}
	return "active"
}

type Style struct {
	ActiveNode       float64
	DimmedNode       float64
	ActiveDecoration float64
	DimmedDecoration float64

	ActiveEdge  float64
	MutedEdge   float64
	DefaultEdge float64

	AccentColor  uint32
	NeutralColor uint32
}

func DefaultStyle() Style {
	return Style{
		ActiveNode:       1,
		DimmedNode:       0.2,
		ActiveDecoration: 0.2,
		DimmedDecoration: 0.05,
		ActiveEdge:       0.9,
		MutedEdge:        0.3,
		DefaultEdge:      0.4,
		AccentColor:      0x6366F1,
		NeutralColor:     0x94A3B8,
	}
}

// Selection is the derived state of one selected node. The zero value is "nothing
// selected", in which every entity is active.
type Selection struct {
	SelectedID string
	// Lineage runs from the parent up to the root.
	Lineage  []string
	Children []string

	active map[string]struct{}
}

func (s Selection) IsEmpty() bool { return s.SelectedID == "" }

// Active returns the active ids, selected first, then lineage, then children. It is
// nil for an empty selection.
func (s Selection) Active() []string {
	if s.IsEmpty() {
		return nil
	}
	out := make([]string, 0, 1+len(s.Lineage)+len(s.Children))
	out = append(out, s.SelectedID)
	out = append(out, s.Lineage...)
	return append(out, s.Children...)
}

func (s Selection) Classify(id string) Class {
	if s.IsEmpty() {
		return Active
	}
	if _, ok := s.active[id]; ok {
		return Active
	}
	return Dimmed
}

// ClassifyEdge is Active only when both endpoints are.
func (s Selection) ClassifyEdge(e *scene.Edge) Class {
	if s.Classify(e.SourceID) == Active && s.Classify(e.TargetID) == Active {
		return Active
	}
	return Dimmed
}

// Lineage walks edges backward from id until it reaches a node with no incoming edge.
// The walk stops early if an id repeats.
func Lineage(edges []*scene.Edge, id string) []string {
	parent := make(map[string]string, len(edges))
	for _, e := range edges {
		if _, ok := parent[e.TargetID]; !ok {
			parent[e.TargetID] = e.SourceID
		}
	}

	var out []string
	seen := map[string]bool{id: true}
	for cur := id; ; {
		p, ok := parent[cur]
		if !ok || seen[p] {
			return out
		}
		seen[p] = true
		out = append(out, p)
		cur = p
	}
}

// Children returns the direct children of id in edge order.
func Children(edges []*scene.Edge, id string) []string {
	var out []string
	for _, e := range edges {
		if e.SourceID == id {
			out = append(out, e.TargetID)
		}
	}
	return out
}

// Compute builds the full selection for id. An empty id gives the empty selection.
func Compute(edges []*scene.Edge, id string) Selection {
	if id == "" {
		return Selection{}
	}
	s := Selection{
		SelectedID: id,
		Lineage:    Lineage(edges, id),
		Children:   Children(edges, id),
		active:     map[string]struct{}{id: {}},
	}
	for _, a := range s.Lineage {
		s.active[a] = struct{}{}
	}
	for _, c := range s.Children {
		s.active[c] = struct{}{}
	}
	return s
}

// Apply writes the opacities and edge colours for sel into store.
func Apply(store *scene.Store, sel Selection, style Style) {
	for _, n := range store.Nodes() {
		if sel.Classify(n.ID) == Active {
			n.Opacity, n.DecorationOpacity = style.ActiveNode, style.ActiveDecoration
		} else {
			n.Opacity, n.DecorationOpacity = style.DimmedNode, style.DimmedDecoration
		}
	}
	for _, e := range store.Edges() {
		switch {
		case sel.IsEmpty():
			e.Opacity, e.Color = style.DefaultEdge, style.NeutralColor
		case sel.ClassifyEdge(e) == Active:
			e.Opacity, e.Color = style.ActiveEdge, style.AccentColor
		default:
			e.Opacity, e.Color = style.MutedEdge, style.NeutralColor
		}
	}
}
