package picking

import "github.com/psidex/learnpath/internal/geom"

// Volume is a bounding sphere around one pickable entity.
type Volume struct {
	ID     string
	Center geom.Vec3
	Radius float64
}

// Hit is one intersected volume. Index is the volume's position in the slice given to
// the caster.
type Hit struct {
	ID       string
	Index    int
	Distance float64
}

// Pointer is a pixel position inside a Viewport.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Caster returns the volumes hit by the ray under a pointer, in any order.
type Caster interface {
	Cast(cam Camera, p Pointer, vp Viewport, volumes []Volume) []Hit
}

// SphereCaster intersects the pointer ray with each volume's sphere.
type SphereCaster struct{}

func (SphereCaster) Cast(cam Camera, p Pointer, vp Viewport, volumes []Volume) []Hit {
	ray := cam.Ray(NDC(p.X, p.Y, vp))
	var hits []Hit
	for i, v := range volumes {
		if t, ok := ray.IntersectSphere(v.Center, v.Radius); ok {
			hits = append(hits, Hit{ID: v.ID, Index: i, Distance: t})
		}
	}
	return hits
}

// Pick returns the nearest hit. Equal distances go to the volume that comes first in
// volumes. ok is false when nothing is under the pointer.
func Pick(c Caster, cam Camera, p Pointer, vp Viewport, volumes []Volume) (Hit, bool) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Hit{}, false
	}
	var best Hit
	found := false
	for _, h := range c.Cast(cam, p, vp, volumes) {
		if !found || h.Distance < best.Distance || (h.Distance == best.Distance && h.Index < best.Index) {
			best, found = h, true
		}
	}
	return best, found
}
