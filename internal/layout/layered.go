package layout

import (
	"math"
	"sort"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graph"
)

// Layered stacks nodes in rows by level, top row first, and spreads each row evenly
// around x=0. Nodes without an explicit level use their tree depth.
func Layered(g *graph.Graph, opts Options) []Placement {
	if g == nil || g.Len() == 0 {
		return nil
	}

	rows := map[int][]*graph.Node{}
	for _, n := range g.Nodes {
		lvl := n.Depth
		if n.HasLevel {
			lvl = n.Level
		}
		rows[lvl] = append(rows[lvl], n)
	}
	levels := make([]int, 0, len(rows))
	for lvl := range rows {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	totalHeight := float64(len(levels)-1) * opts.LevelStep
	positions := make(map[string]geom.Vec3, g.Len())
	for idx, lvl := range levels {
		row := rows[lvl]
		y := totalHeight/2 - float64(idx)*opts.LevelStep
		width := math.Min(float64(len(row)-1)*opts.NodeSpacing, opts.MaxRowWidth)
		for i, n := range row {
			x := 0.0
			if len(row) > 1 {
				x = -width/2 + width*float64(i)/float64(len(row)-1)
			}
			positions[n.ID] = geom.V(x, y, 0)
		}
	}

	out := make([]Placement, 0, g.Len())
	for _, n := range g.Nodes {
		parentID, _ := g.Parent(n.ID)
		out = append(out, Placement{
			ID:       n.ID,
			ParentID: parentID,
			Depth:    n.Depth,
			Position: positions[n.ID],
		})
	}
	return out
}
