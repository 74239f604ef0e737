package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestRotateZ(t *testing.T) {
	v := V(1, 0, 5).RotateZ(math.Pi / 2)
	assert.InDelta(t, 0, v.X, eps)
	assert.InDelta(t, 1, v.Y, eps)
	assert.Equal(t, 5.0, v.Z)

	back := v.RotateZ(-math.Pi / 2)
	assert.InDelta(t, 1, back.X, eps)
	assert.InDelta(t, 0, back.Y, eps)
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: V(0, 0, 10), Dir: V(0, 0, -1)}

	tt, ok := r.IntersectSphere(V(0, 0, 0), 2)
	assert.True(t, ok)
	assert.InDelta(t, 8, tt, eps)

	_, ok = r.IntersectSphere(V(5, 0, 0), 2)
	assert.False(t, ok)

	// Sphere behind the origin.
	_, ok = r.IntersectSphere(V(0, 0, 20), 2)
	assert.False(t, ok)
}

func TestIntersectPlane(t *testing.T) {
	r := Ray{Origin: V(3, 4, 10), Dir: V(0, 0, -2)}
	tt, ok := r.IntersectPlane(V(0, 0, 0), V(0, 0, 1))
	assert.True(t, ok)
	assert.Equal(t, V(3, 4, 0), r.At(tt))

	_, ok = r.IntersectPlane(V(0, 0, 0), V(1, 0, 0))
	assert.False(t, ok)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, V(3, 4, 0).Normalize().Len(), eps)
}
