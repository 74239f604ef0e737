package scene

import "math"

// Style holds the visual constants applied when entities are created.
type Style struct {
	// Palette is indexed by tier (depth, or level-1 for levelled nodes); the last colour
	// repeats for deeper tiers.
	Palette []uint32

	BaseSize  float64
	SizeStep  float64
	MinSize   float64
	GlowScale float64

	PulseSpeedMin float64
	PulseSpeedMax float64

	// CurveBend is the control point's sideways offset as a fraction of edge length.
	CurveBend float64
	// CurveJitter scales the seeded per-edge bend variation, 0 draws straight edges.
	CurveJitter  float64
	CurveSamples int

	NeutralColor uint32
	AccentColor  uint32

	NodeOpacity       float64
	DecorationOpacity float64
	EdgeOpacity       float64
}

func DefaultStyle() Style {
	return Style{
		Palette:           []uint32{0x312E81, 0x3B82F6, 0x10B981, 0xF59E0B, 0xF97316, 0xD1D5DB},
		BaseSize:          20,
		SizeStep:          2,
		MinSize:           8,
		GlowScale:         1.2,
		PulseSpeedMin:     0.5,
		PulseSpeedMax:     1.5,
		CurveBend:         0.15,
		CurveJitter:       0.5,
		CurveSamples:      16,
		NeutralColor:      0x94A3B8,
		AccentColor:       0x6366F1,
		NodeOpacity:       1,
		DecorationOpacity: 0.2,
		EdgeOpacity:       0.4,
	}
}

func (s Style) colorFor(tier int) uint32 {
	if len(s.Palette) == 0 {
		return s.NeutralColor
	}
	if tier < 0 {
		tier = 0
	}
	if tier >= len(s.Palette) {
		tier = len(s.Palette) - 1
	}
	return s.Palette[tier]
}

func (s Style) sizeFor(depth int) float64 {
	return math.Max(s.BaseSize-s.SizeStep*float64(depth), s.MinSize)
}
