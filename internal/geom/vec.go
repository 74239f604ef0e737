// Package geom holds the small amount of 3D vector math the layout, picking and scene
// packages share.
package geom

import "math"

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Polar returns the point at radius r and angle a (radians) in the z=0 plane.
func Polar(r, a float64) Vec3 {
	return Vec3{X: r * math.Cos(a), Y: r * math.Sin(a)}
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector, or the zero vector unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// RotateZ rotates v about the z axis by a radians.
func (v Vec3) RotateZ(a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

// Angle2D is the angle of v projected onto the z=0 plane.
func (v Vec3) Angle2D() float64 { return math.Atan2(v.Y, v.X) }

type Ray struct {
	Origin Vec3
	Dir    Vec3
}

func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// IntersectPlane returns the ray parameter where the ray meets the plane through point
// with the given normal. ok is false for parallel rays and hits behind the origin.
func (r Ray) IntersectPlane(point, normal Vec3) (t float64, ok bool) {
	denom := normal.Dot(r.Dir)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t = point.Sub(r.Origin).Dot(normal) / denom
	return t, t >= 0
}

// IntersectSphere returns the nearest non-negative ray parameter where the ray enters
// (or, from inside, leaves) the sphere. Dir need not be normalized.
func (r Ray) IntersectSphere(center Vec3, radius float64) (t float64, ok bool) {
	oc := r.Origin.Sub(center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t0 := (-b - sq) / (2 * a); t0 >= 0 {
		return t0, true
	}
	if t1 := (-b + sq) / (2 * a); t1 >= 0 {
		return t1, true
	}
	return 0, false
}
