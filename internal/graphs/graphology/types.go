package graphology

type NodeAttributes struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Label string  `json:"label"`
	Color string  `json:"color"`

	Kind              string  `json:"kind"`
	Depth             int     `json:"depth"`
	Opacity           float64 `json:"opacity"`
	GlowSize          float64 `json:"glowSize"`
	DecorationOpacity float64 `json:"decorationOpacity"`
	Ring              bool    `json:"ring,omitempty"`
	Hidden            bool    `json:"hidden,omitempty"`
}

type Node struct {
	Key        string         `json:"key"`
	Attributes NodeAttributes `json:"attributes"`
}

type EdgeAttributes struct {
	Size    float64      `json:"size"`
	Color   string       `json:"color"`
	Opacity float64      `json:"opacity"`
	Flow    float64      `json:"flow"`
	Points  [][2]float64 `json:"points"`
}

type Edge struct {
	Key        string         `json:"key"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Attributes EdgeAttributes `json:"attributes"`
}

type SerializedGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
