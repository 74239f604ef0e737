package scene

import "github.com/psidex/learnpath/internal/geom"

// Frame is a detached copy of a store plus the view state a renderer needs. Renderers
// may keep a Frame after Render returns.
type Frame struct {
	Seq  uint64  `json:"seq"`
	Time float64 `json:"time"`

	Zoom  float64 `json:"zoom"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`

	RootOffset    geom.Vec3 `json:"root_offset"`
	Rotation      float64   `json:"rotation"`
	LabelRotation float64   `json:"label_rotation"`

	SelectedID string `json:"selected,omitempty"`

	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// World returns where the frame draws a node-local position.
func (f *Frame) World(local geom.Vec3) geom.Vec3 {
	return local.RotateZ(f.Rotation).Add(f.RootOffset)
}

// Snapshot copies the store into a Frame. View fields are left zero for the caller.
func (s *Store) Snapshot() Frame {
	f := Frame{
		RootOffset:    s.RootOffset,
		Rotation:      s.Rotation,
		LabelRotation: s.LabelRotation,
		Nodes:         make([]Node, len(s.nodes)),
		Edges:         make([]Edge, len(s.edges)),
	}
	for i, n := range s.nodes {
		f.Nodes[i] = *n
	}
	for i, e := range s.edges {
		f.Edges[i] = *e
		f.Edges[i].Samples = append([]geom.Vec3(nil), e.Samples...)
	}
	return f
}
