package graphology

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graphs"
	"github.com/psidex/learnpath/internal/scene"
)

// Projector maps a world position to drawing coordinates. scale is how many drawing
// units one world unit covers there, ok is false when the point cannot be drawn.
type Projector func(world geom.Vec3) (x, y, scale float64, ok bool)

// Plane draws the layout plane as it is, y up.
func Plane(world geom.Vec3) (x, y, scale float64, ok bool) {
	return world.X, world.Y, 1, true
}

// Serialize converts a frame into Graphology's serialized graph format.
func Serialize(f scene.Frame, project Projector) SerializedGraph {
	g := SerializedGraph{
		Nodes: make([]Node, 0, len(f.Nodes)),
		Edges: make([]Edge, 0, len(f.Edges)),
	}

	for _, n := range f.Nodes {
		x, y, scale, ok := project(f.World(n.Position))
		g.Nodes = append(g.Nodes, Node{
			Key: n.ID,
			Attributes: NodeAttributes{
				X:                 x,
				Y:                 y,
				Size:              n.Radius() * scale,
				Label:             n.Title,
				Color:             graphs.HexColor(n.Color),
				Kind:              n.Kind.String(),
				Depth:             n.Depth,
				Opacity:           n.Opacity,
				GlowSize:          n.GlowSize * n.Scale * scale,
				DecorationOpacity: n.DecorationOpacity,
				Ring:              n.Ring,
				Hidden:            !ok,
			},
		})
	}

	for _, e := range f.Edges {
		points := make([][2]float64, 0, len(e.Samples))
		for _, s := range e.Samples {
			x, y, _, ok := project(f.World(s))
			if !ok {
				continue
			}
			points = append(points, [2]float64{x, y})
		}
		g.Edges = append(g.Edges, Edge{
			Key:    e.Key(),
			Source: e.SourceID,
			Target: e.TargetID,
			Attributes: EdgeAttributes{
				Size:    2,
				Color:   graphs.HexColor(e.Color),
				Opacity: e.Opacity,
				Flow:    e.Flow,
				Points:  points,
			},
		})
	}

	return g
}

// Graphology defines a CliRenderer that renders Graphology data to a JSON file.
type Graphology struct {
	mu    *sync.Mutex
	frame scene.Frame
}

var _ graphs.CliRenderer = (*Graphology)(nil)

func NewGraphology() *Graphology {
	return &Graphology{mu: &sync.Mutex{}}
}

func (g *Graphology) Render(frame scene.Frame) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frame = frame
	return nil
}

func (g *Graphology) RenderToFile(filename string) error {
	filename = filename + ".json"

	g.mu.Lock()
	defer g.mu.Unlock()

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	marshalled, err := json.Marshal(Serialize(g.frame, Plane))
	if err != nil {
		return err
	}

	_, err = file.Write(marshalled)
	if err != nil {
		return err
	}

	return nil
}
