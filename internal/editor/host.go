package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terraform/internal/engine/picking"
	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
)

// Scene is the entity store the editor spawns into. *scene.World implements it.
type Scene interface {
	Spawn(spec scene.Spec) scene.Entity
	Despawn(e scene.Entity)
	Transform(e scene.Entity) (scene.Transform, bool)
	Translation(e scene.Entity) (mgl32.Vec3, bool)
	SetTranslation(e scene.Entity, t mgl32.Vec3)
	WorldTranslation(e scene.Entity) (mgl32.Vec3, bool)
	SetMaterial(e scene.Entity, m scene.MaterialHandle)
	AddShape(s scene.Shape) scene.ShapeHandle
	AddMaterial(m scene.Material) scene.MaterialHandle
}

// MeshStore resolves mesh handles. *terrain.Assets implements it.
type MeshStore interface {
	Get(h terrain.Handle) (*terrain.Mesh, bool)
	GetMut(h terrain.Handle) (*terrain.Mesh, bool)
}

// RayCaster turns a cursor position into a world ray. ok is false when no ray
// can be cast, for example outside the viewport. *camera.OrbitCamera
// implements it.
type RayCaster interface {
	ViewportToWorld(cursor mgl32.Vec2) (ray picking.Ray, ok bool)
}
