// Package picking turns pointer positions into rays and rays into hit nodes.
package picking

import (
	"math"

	"github.com/psidex/learnpath/internal/geom"
)

// Camera is a perspective camera. Zoom narrows the field of view instead of moving the
// eye, so the depth plane of every node stays put while zooming.
type Camera struct {
	Eye    geom.Vec3
	Target geom.Vec3
	Up     geom.Vec3
	// FOV is the vertical field of view in degrees at zoom 1.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64
	Zoom   float64
}

func DefaultCamera(width, height float64) Camera {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = width / height
	}
	return Camera{
		Eye:    geom.V(0, 0, 800),
		Up:     geom.V(0, 1, 0),
		FOV:    45,
		Aspect: aspect,
		Near:   0.1,
		Far:    5000,
		Zoom:   1,
	}
}

// ViewCamera is the default camera for vp at the given zoom, orbited by yaw and pitch.
func ViewCamera(vp Viewport, zoom, yaw, pitch float64) Camera {
	cam := DefaultCamera(vp.Width, vp.Height)
	cam.Zoom = zoom
	return cam.Orbit(yaw, pitch)
}

// EffectiveFOV returns the vertical field of view in radians after zoom.
func (c Camera) EffectiveFOV() float64 {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	half := c.FOV * math.Pi / 360
	return 2 * math.Atan(math.Tan(half)/zoom)
}

// Orbit returns a copy of c with the eye swung around the target by yaw (about the up
// axis) and pitch, keeping its distance.
func (c Camera) Orbit(yaw, pitch float64) Camera {
	dist := c.Eye.Sub(c.Target).Len()
	c.Eye = c.Target.Add(geom.V(
		dist*math.Sin(yaw)*math.Cos(pitch),
		dist*math.Sin(pitch),
		dist*math.Cos(yaw)*math.Cos(pitch),
	))
	return c
}

func (c Camera) basis() (forward, right, up geom.Vec3) {
	forward = c.Target.Sub(c.Eye).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Ray returns the world ray through a point in normalized device coordinates.
func (c Camera) Ray(ndcX, ndcY float64) geom.Ray {
	forward, right, up := c.basis()
	tanH := math.Tan(c.EffectiveFOV() / 2)
	dir := forward.
		Add(right.Scale(ndcX * tanH * c.Aspect)).
		Add(up.Scale(ndcY * tanH))
	return geom.Ray{Origin: c.Eye, Dir: dir.Normalize()}
}

// Project maps a world point to normalized device coordinates. ok is false for points
// behind the near plane.
func (c Camera) Project(world geom.Vec3) (ndcX, ndcY float64, ok bool) {
	forward, right, up := c.basis()
	v := world.Sub(c.Eye)
	z := v.Dot(forward)
	if z <= c.Near {
		return 0, 0, false
	}
	tanH := math.Tan(c.EffectiveFOV() / 2)
	return v.Dot(right) / (z * tanH * c.Aspect), v.Dot(up) / (z * tanH), true
}

// PixelsPerUnit is the on-screen size of one world unit at world, for a viewport height.
func (c Camera) PixelsPerUnit(world geom.Vec3, height float64) float64 {
	forward, _, _ := c.basis()
	z := world.Sub(c.Eye).Dot(forward)
	if z <= c.Near {
		return 0
	}
	return height / (2 * z * math.Tan(c.EffectiveFOV()/2))
}

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NDC converts a pixel position (origin top left, y down) to normalized device
// coordinates (origin centre, y up).
func NDC(px, py float64, vp Viewport) (x, y float64) {
	return px/vp.Width*2 - 1, -(py/vp.Height*2 - 1)
}

// Pixel is the inverse of NDC.
func Pixel(ndcX, ndcY float64, vp Viewport) (px, py float64) {
	return (ndcX + 1) / 2 * vp.Width, (1 - ndcY) / 2 * vp.Height
}
