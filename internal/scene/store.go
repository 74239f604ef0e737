package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graph"
	"github.com/psidex/learnpath/internal/layout"
	"github.com/psidex/learnpath/internal/lib"
)

var ErrUnknownNode = errors.New("unknown scene node")

// Store owns every entity of one generation. It is not safe for concurrent use, the
// session loop is its only user.
type Store struct {
	style  Style
	hasher *lib.StrHasher

	nodes []*Node
	index map[string]*Node
	edges []*Edge
	byKey map[string]*Edge

	// RootOffset is the ambient offset applied to the whole graph.
	RootOffset geom.Vec3
	// Rotation is the scene rotation about the z axis, LabelRotation undoes it for text.
	Rotation      float64
	LabelRotation float64
}

// NewStore returns an empty store. seed feeds the per-node pulse and per-edge jitter
// hashes, so two stores with the same seed decorate a graph identically.
func NewStore(style Style, seed uint64) *Store {
	return &Store{
		style:  style,
		hasher: lib.NewStrHasher(seed),
		index:  map[string]*Node{},
		byKey:  map[string]*Edge{},
	}
}

func (s *Store) Style() Style { return s.style }

// Insert materializes placements for nodes of g. Placements whose id is already in the
// store are skipped. Once every node is in, an edge is added for each new node whose
// parent is present, so placements may list a child before its parent.
func (s *Store) Insert(placements []layout.Placement, g *graph.Graph) ([]*Node, error) {
	added := make([]*Node, 0, len(placements))
	for _, p := range placements {
		if _, exists := s.index[p.ID]; exists {
			continue
		}
		gn, ok := g.Node(p.ID)
		if !ok {
			s.link(added)
			return added, fmt.Errorf("placement %q: %w", p.ID, ErrUnknownNode)
		}
		n := s.newNode(p, gn)
		s.nodes = append(s.nodes, n)
		s.index[n.ID] = n
		added = append(added, n)
	}
	s.link(added)
	return added, nil
}

func (s *Store) link(nodes []*Node) {
	for _, n := range nodes {
		if n.ParentID == "" {
			continue
		}
		if _, ok := s.index[n.ParentID]; ok {
			s.addEdge(n.ParentID, n.ID)
		}
	}
}

func (s *Store) newNode(p layout.Placement, gn *graph.Node) *Node {
	tier := p.Depth
	if gn.HasLevel {
		tier = gn.Level - 1
	}
	size := s.style.sizeFor(p.Depth)
	return &Node{
		ID:                p.ID,
		ParentID:          p.ParentID,
		Title:             gn.Title,
		Kind:              gn.Kind,
		Depth:             p.Depth,
		Position:          p.Position,
		Home:              p.Position,
		Range:             p.Range,
		HasRange:          p.HasRange,
		Size:              size,
		GlowSize:          size * s.style.GlowScale,
		Color:             s.style.colorFor(tier),
		Opacity:           s.style.NodeOpacity,
		DecorationOpacity: s.style.DecorationOpacity,
		Ring:              gn.Status == "completed",
		PulseSpeed:        s.style.PulseSpeedMin + s.hasher.Unit(p.ID+"#speed")*(s.style.PulseSpeedMax-s.style.PulseSpeedMin),
		PulsePhase:        s.hasher.Unit(p.ID+"#phase") * 2 * math.Pi,
		Scale:             1,
	}
}

func (s *Store) addEdge(source, target string) {
	key := edgeKey(source, target)
	if _, ok := s.byKey[key]; ok {
		return
	}
	e := &Edge{
		SourceID: source,
		TargetID: target,
		Opacity:  s.style.EdgeOpacity,
		Color:    s.style.NeutralColor,
		jitter:   s.hasher.Unit(key)*2 - 1,
	}
	s.curve(e)
	s.edges = append(s.edges, e)
	s.byKey[key] = e
}

// curve recomputes an edge's control point and samples from its endpoints.
func (s *Store) curve(e *Edge) {
	a := s.index[e.SourceID].Position
	b := s.index[e.TargetID].Position
	mid := a.Lerp(b, 0.5)
	d := b.Sub(a)
	side := geom.V(-d.Y, d.X, 0).Normalize()
	bend := s.style.CurveBend * s.style.CurveJitter * e.jitter * d.Len()
	e.Control = mid.Add(side.Scale(bend))

	n := max(s.style.CurveSamples, 2)
	if cap(e.Samples) < n {
		e.Samples = make([]geom.Vec3, n)
	}
	e.Samples = e.Samples[:n]
	for i := range n {
		t := float64(i) / float64(n-1)
		e.Samples[i] = quadratic(a, e.Control, b, t)
	}
}

func quadratic(a, c, b geom.Vec3, t float64) geom.Vec3 {
	u := 1 - t
	return a.Scale(u * u).Add(c.Scale(2 * u * t)).Add(b.Scale(t * t))
}

func (s *Store) Node(id string) (*Node, bool) {
	n, ok := s.index[id]
	return n, ok
}

// Nodes returns the nodes in insertion order. The slice is shared, do not modify it.
func (s *Store) Nodes() []*Node { return s.nodes }

// Edges returns the edges in insertion order. The slice is shared, do not modify it.
func (s *Store) Edges() []*Edge { return s.edges }

func (s *Store) Edge(source, target string) (*Edge, bool) {
	e, ok := s.byKey[edgeKey(source, target)]
	return e, ok
}

func (s *Store) Len() int { return len(s.nodes) }

// MoveNode sets a node's position and recomputes the edges touching it.
func (s *Store) MoveNode(id string, pos geom.Vec3) error {
	n, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownNode)
	}
	n.Position = pos
	s.RefreshEdges(id)
	return nil
}

// RefreshEdges recomputes the curves of every edge touching id.
func (s *Store) RefreshEdges(id string) {
	for _, e := range s.edges {
		if e.Touches(id) {
			s.curve(e)
		}
	}
}

// World maps a node-local position into world space, applying rotation then offset.
func (s *Store) World(local geom.Vec3) geom.Vec3 {
	return local.RotateZ(s.Rotation).Add(s.RootOffset)
}

// Local is the inverse of World.
func (s *Store) Local(world geom.Vec3) geom.Vec3 {
	return world.Sub(s.RootOffset).RotateZ(-s.Rotation)
}

// Reset drops every entity and transform.
func (s *Store) Reset() {
	s.nodes = nil
	s.edges = nil
	clear(s.index)
	clear(s.byKey)
	s.RootOffset = geom.Vec3{}
	s.Rotation = 0
	s.LabelRotation = 0
}
