package layout

import (
	"math"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graph"
)

// Anchor describes the node being expanded as it currently sits in the scene.
type Anchor struct {
	ID       string
	Depth    int
	Position geom.Vec3
	// From is where the parent's incoming edge starts (the grandparent), if any.
	From    geom.Vec3
	HasFrom bool
}

// Expand fans children out over a half turn facing away from the anchor's incoming
// edge, ExpandRadius away from the anchor's current position.
func Expand(a Anchor, children []*graph.Node, opts Options) []Placement {
	k := len(children)
	if k == 0 {
		return nil
	}

	dir := 0.0
	switch {
	case a.HasFrom && a.Position.Sub(a.From).Len() > 0:
		dir = a.Position.Sub(a.From).Angle2D()
	case a.Position.Len() > 0:
		dir = a.Position.Angle2D()
	}

	start := dir - math.Pi/2
	step := math.Pi / float64(k)
	out := make([]Placement, 0, k)
	for i, c := range children {
		r := Range{Start: start + step*float64(i), End: start + step*float64(i+1)}
		pos := a.Position.Add(geom.Polar(opts.ExpandRadius, r.Mid()))
		pos.Z = a.Position.Z
		out = append(out, Placement{
			ID:       c.ID,
			ParentID: a.ID,
			Depth:    a.Depth + 1,
			Position: pos,
			Range:    r,
			HasRange: true,
			Pending:  len(c.Children) > 0,
		})
	}
	return out
}
