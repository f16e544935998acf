// Package camera provides the editor's orbit camera and viewport ray casting.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terraform/internal/engine/picking"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY   float32 // radians
	Near   float32
	Far    float32
	Width  int // viewport size in pixels
	Height int
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera(width, height int) *OrbitCamera {
	return &OrbitCamera{
		Distance:        14.0,
		RotationX:       0.9,
		RotationY:       0.785,
		MinDistance:     2.0,
		MaxDistance:     200.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            mgl32.DegToRad(45),
		Near:            0.1,
		Far:             500,
		Width:           width,
		Height:          height,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the current viewport.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = float32(c.Width) / float32(c.Height)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// ViewportToWorld casts a ray from the camera through a cursor position given
// in window pixels. ok is false when the cursor lies outside the viewport or
// the view-projection is degenerate.
func (c *OrbitCamera) ViewportToWorld(cursor mgl32.Vec2) (ray picking.Ray, ok bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return picking.Ray{}, false
	}
	if cursor.X() < 0 || cursor.Y() < 0 || cursor.X() > float32(c.Width) || cursor.Y() > float32(c.Height) {
		return picking.Ray{}, false
	}

	vp := c.ViewProjection()
	if vp.Det() == 0 {
		return picking.Ray{}, false
	}

	ray = picking.ScreenToRay(cursor.X(), cursor.Y(), float32(c.Width), float32(c.Height), vp.Inv())
	if ray.Direction.Len() == 0 {
		return picking.Ray{}, false
	}
	return ray, true
}

// Resize updates the viewport size used for projection and ray casting.
func (c *OrbitCamera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds adjusts camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(box picking.AABB) {
	c.Center = box.Min.Add(box.Max).Mul(0.5)

	size := box.Max.Sub(box.Min)
	c.Distance = mgl32.Clamp(max(size.X(), size.Z())*1.2, c.MinDistance, c.MaxDistance)
}
