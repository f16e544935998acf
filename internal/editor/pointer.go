package editor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PointerState is what the editor knows about the pointer for one frame.
// It is rebuilt from nothing every frame.
type PointerState struct {
	Cursor    mgl32.Vec2
	HasCursor bool

	World    mgl32.Vec3
	HasWorld bool
	Surface  SurfaceID // surface under the pointer, valid when HasWorld
	Distance float32   // distance along the camera ray, valid when HasWorld
}

// WorldHit returns the world-space hit point, if any.
func (p PointerState) WorldHit() (mgl32.Vec3, bool) {
	return p.World, p.HasWorld
}

// Project casts the cursor into the scene and picks the nearest surface hit.
// Every failure (no cursor, pointer over UI, no ray, no surface) narrows the
// result instead of returning an error.
func Project(in FrameInput, cam RayCaster, sc Scene, surfaces []*Surface) PointerState {
	var state PointerState

	if !in.HasCursor {
		return state
	}
	state.Cursor = in.Cursor
	state.HasCursor = true

	if in.OverUI || cam == nil {
		return state
	}

	ray, ok := cam.ViewportToWorld(in.Cursor)
	if !ok {
		return state
	}

	for _, s := range surfaces {
		tr, ok := sc.Transform(s.Entity)
		if !ok {
			continue
		}
		dist, hit := s.RayIntersection(tr.Translation, tr.Scale, ray.Origin, ray.Direction)
		if !hit || dist <= 0 {
			continue
		}
		if !state.HasWorld || dist < state.Distance {
			state.HasWorld = true
			state.Distance = dist
			state.Surface = s.ID
		}
	}

	if state.HasWorld {
		state.World = ray.At(state.Distance)
	}
	return state
}
