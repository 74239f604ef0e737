// Package scene holds the positioned entities of one generation: a node per graph node
// and an edge per parent->child relation.
package scene

import (
	"github.com/psidex/learnpath/internal/geom"
	"github.com/psidex/learnpath/internal/graph"
	"github.com/psidex/learnpath/internal/layout"
)

// Node is a positioned graph node. Position moves when the node is dragged, Home keeps where the
// layout put it.
type Node struct {
	ID       string       `json:"id"`
	ParentID string       `json:"parent_id,omitempty"`
	Title    string       `json:"title"`
	Kind     graph.Kind   `json:"kind"`
	Depth    int          `json:"depth"`
	Position geom.Vec3    `json:"position"`
	Home     geom.Vec3    `json:"home"`
	Range    layout.Range `json:"range"`
	HasRange bool         `json:"-"`

	Size              float64 `json:"size"`
	GlowSize          float64 `json:"glow_size"`
	Color             uint32  `json:"color"`
	Opacity           float64 `json:"opacity"`
	DecorationOpacity float64 `json:"decoration_opacity"`
	Ring              bool    `json:"ring,omitempty"`

	PulseSpeed float64 `json:"-"`
	PulsePhase float64 `json:"-"`
	Scale      float64 `json:"scale"`
}

// Radius is the node's picking radius at its current scale.
func (n *Node) Radius() float64 {
	return n.Size * n.Scale
}

type Edge struct {
	SourceID string      `json:"source"`
	TargetID string      `json:"target"`
	Control  geom.Vec3   `json:"control"`
	Samples  []geom.Vec3 `json:"samples"`
	Flow     float64     `json:"flow"`
	Opacity  float64     `json:"opacity"`
	Color    uint32      `json:"color"`

	// jitter only bends the drawn curve, positions never depend on it.
	jitter float64
}

func edgeKey(source, target string) string {
	return source + "->" + target
}

func (e *Edge) Key() string { return edgeKey(e.SourceID, e.TargetID) }

// Touches reports whether id is either endpoint.
func (e *Edge) Touches(id string) bool {
	return e.SourceID == id || e.TargetID == id
}
