package editor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terraform/internal/engine/picking"
	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
)

// SurfaceID identifies a registered surface. Vertex records refer to their
// surface by ID only.
type SurfaceID uint32

// Surface is a finite rectangular ground plane under edit. It lies in its
// local XZ plane; Width spans X and Depth spans Z before scaling.
type Surface struct {
	ID     SurfaceID
	Entity scene.Entity
	Width  float32
	Depth  float32
	Mesh   terrain.Handle
}

// NewSurface validates the dimensions and returns a surface descriptor.
func NewSurface(id SurfaceID, entity scene.Entity, width, depth float32, mesh terrain.Handle) (*Surface, error) {
	if !(width > 0) || !(depth > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, width, depth)
	}
	return &Surface{
		ID:     id,
		Entity: entity,
		Width:  width,
		Depth:  depth,
		Mesh:   mesh,
	}, nil
}

// Bounds returns the world-space rectangle covered by the surface as a box
// with zero height, centered on translation.
func (s *Surface) Bounds(translation, scale mgl32.Vec3) picking.AABB {
	halfX := s.Width * 0.5 * scale.X()
	halfZ := s.Depth * 0.5 * scale.Z()
	return picking.NewAABB(
		mgl32.Vec3{translation.X() - halfX, translation.Y(), translation.Z() - halfZ},
		mgl32.Vec3{translation.X() + halfX, translation.Y(), translation.Z() + halfZ},
	)
}

// RayIntersection returns the distance along the ray to the surface, clamped
// to zero when the origin is already on or past the entry point.
func (s *Surface) RayIntersection(translation, scale, origin, direction mgl32.Vec3) (float32, bool) {
	ray := picking.Ray{Origin: origin, Direction: direction}
	return ray.IntersectSlab(s.Bounds(translation, scale))
}
