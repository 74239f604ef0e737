// Package layout computes positions for a normalized graph. Every function here is pure:
// it returns Placement records and never touches a scene, so the same graph always gives
// bit-identical output.
package layout

import (
	"math"

	"github.com/psidex/learnpath/internal/geom"
)

const fullTurn = 2 * math.Pi

// Range is an angular slice in radians.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (r Range) Width() float64 { return r.End - r.Start }
func (r Range) Mid() float64   { return (r.Start + r.End) / 2 }

// Placement is one positioned node.
type Placement struct {
	ID       string
	ParentID string
	Depth    int
	Position geom.Vec3
	Range    Range
	HasRange bool
	// Pending is set on nodes whose children were not materialized.
	Pending bool
}

type Options struct {
	// RingSpacing is the radial distance between depth rings.
	RingSpacing float64
	// MaxDepth stops radial materialization at this depth, 0 means unlimited.
	MaxDepth int

	LevelStep   float64
	NodeSpacing float64
	MaxRowWidth float64

	// ExpandRadius is the distance of lazily expanded children from their parent.
	ExpandRadius float64
}

func DefaultOptions() Options {
	return Options{
		RingSpacing:  150,
		LevelStep:    120,
		NodeSpacing:  140,
		MaxRowWidth:  900,
		ExpandRadius: 120,
	}
}
