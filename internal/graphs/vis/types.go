package vis

import (
	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graphs"
	"github.com/psidex/learnpath/internal/scene"
)

// step is one replayed addition, Type is "node" or "edge".
type step struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type nodeData struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Fixed bool    `json:"fixed"`
}

type edgeData struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Color string `json:"color"`
}

func nodeStep(n scene.Node, world geom.Vec3) step {
	return step{Type: "node", Data: nodeData{
		ID:    n.ID,
		Label: n.Title,
		// vis.js y grows downwards.
		X:     world.X,
		Y:     -world.Y,
		Size:  n.Radius(),
		Color: graphs.HexColor(n.Color),
		Fixed: true,
	}}
}

func edgeStep(e scene.Edge) step {
	return step{Type: "edge", Data: edgeData{
		From:  e.SourceID,
		To:    e.TargetID,
		Color: graphs.HexColor(e.Color),
	}}
}
