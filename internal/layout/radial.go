package layout

import (
	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graph"
)

// Radial places root at the origin and every descendant at depth*RingSpacing from it,
// at the midpoint of an angular slice that is split evenly between siblings.
func Radial(root *graph.Node, opts Options) []Placement {
	if root == nil {
		return nil
	}
	var out []Placement
	place(root, "", 0, 0, 0, opts, &out)
	return out
}

func place(n *graph.Node, parentID string, depth int, angleStart, angleEnd float64, opts Options, out *[]Placement) {
	radius := float64(depth) * opts.RingSpacing
	angle := (angleStart + angleEnd) / 2

	// A zero-width slice (the root is called with 0, 0) means the whole circle.
	slice := angleEnd - angleStart
	if slice == 0 {
		slice = fullTurn
		angleEnd = angleStart + fullTurn
	}

	p := Placement{
		ID:       n.ID,
		ParentID: parentID,
		Depth:    depth,
		Position: geom.Polar(radius, angle),
		Range:    Range{Start: angleStart, End: angleEnd},
		HasRange: true,
	}

	k := len(n.Children)
	if k > 0 && opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		p.Pending = true
	}
	*out = append(*out, p)
	if k == 0 || p.Pending {
		return
	}

	step := slice / float64(k)
	for i, child := range n.Children {
		place(child, n.ID, depth+1,
			angleStart+step*float64(i),
			angleStart+step*float64(i+1),
			opts, out)
	}
}
