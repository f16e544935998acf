// Package picking provides ray casting and object picking utilities.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB represents an axis-aligned bounding box. A zero-thickness axis is
// allowed and turns the box into a rectangle.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB creates an AABB from two corners, handling negative scales.
func NewAABB(a, b mgl32.Vec3) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top-left,
// viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1.0, 1.0})

	dir := farWorld.Sub(nearWorld)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	return Ray{Origin: nearWorld, Direction: dir}
}

// unproject maps a clip-space point back to world space with perspective divide.
func unproject(invViewProj mgl32.Mat4, clip mgl32.Vec4) mgl32.Vec3 {
	world := invViewProj.Mul4x1(clip)
	if world.W() != 0 {
		return world.Vec3().Mul(1 / world.W())
	}
	return world.Vec3()
}

// IntersectSlab tests ray intersection with a box using the slab method on the
// reciprocal direction. A zero direction component yields an infinite
// reciprocal, which leaves that axis unconstrained when the origin is inside
// the slab and rejects the ray otherwise.
//
// Returns the entry distance clamped to zero, so a ray starting inside or on
// the box reports distance 0.
func (r Ray) IntersectSlab(box AABB) (t float32, hit bool) {
	tEnter := float32(math.Inf(-1))
	tExit := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		inv := 1 / r.Direction[i]
		t1 := (box.Min[i] - r.Origin[i]) * inv
		t2 := (box.Max[i] - r.Origin[i]) * inv

		// 0 * Inf: origin sits exactly on a slab boundary of an axis the ray never moves along.
		if isNaN(t1) || isNaN(t2) {
			continue
		}

		tEnter = max(tEnter, min(t1, t2))
		tExit = min(tExit, max(t1, t2))
	}

	if tEnter > tExit || tExit < 0 {
		return 0, false
	}
	return max(tEnter, 0), true
}

func isNaN(f float32) bool {
	return f != f
}
