// Package scene provides the editor's entity store: a transform hierarchy with
// shared shapes and materials, standing in for the host engine's world.
package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity identifies a spawned node. The zero Entity means "none".
type Entity uint32

// ShapeHandle identifies a shared shape.
type ShapeHandle uint32

// MaterialHandle identifies a shared material.
type MaterialHandle uint32

// ShapeKind enumerates the primitive shapes the editor spawns.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeSphere
	ShapeDisc
)

// Shape describes a primitive mesh.
type Shape struct {
	Kind   ShapeKind
	Radius float32
}

// Material describes a flat surface color.
type Material struct {
	Color [4]float32 // RGBA, alpha < 1 is translucent
}

// Spec describes an entity to spawn.
type Spec struct {
	Name           string
	Transform      Transform
	Parent         Entity
	Shape          ShapeHandle
	Material       MaterialHandle
	CastShadows    bool
	ReceiveShadows bool
	Pickable       bool
}

type node struct {
	spec     Spec
	children []Entity
}

// World stores entities and shared resources. It is not safe for concurrent use.
type World struct {
	nodes     map[Entity]*node
	next      Entity
	shapes    []Shape
	materials []Material
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		nodes: make(map[Entity]*node),
	}
}

// AddShape registers a shape and returns its handle.
func (w *World) AddShape(s Shape) ShapeHandle {
	w.shapes = append(w.shapes, s)
	return ShapeHandle(len(w.shapes))
}

// AddMaterial registers a material and returns its handle.
func (w *World) AddMaterial(m Material) MaterialHandle {
	w.materials = append(w.materials, m)
	return MaterialHandle(len(w.materials))
}

// ShapeCount returns how many shapes have been registered.
func (w *World) ShapeCount() int { return len(w.shapes) }

// MaterialCount returns how many materials have been registered.
func (w *World) MaterialCount() int { return len(w.materials) }

// MaterialColor returns the color of a registered material.
func (w *World) MaterialColor(h MaterialHandle) ([4]float32, bool) {
	if h == 0 || int(h) > len(w.materials) {
		return [4]float32{}, false
	}
	return w.materials[h-1].Color, true
}

// Shape returns a registered shape.
func (w *World) Shape(h ShapeHandle) (Shape, bool) {
	if h == 0 || int(h) > len(w.shapes) {
		return Shape{}, false
	}
	return w.shapes[h-1], true
}

// Spawn creates an entity. A zero Transform is treated as an unrotated,
// unscaled placement at its translation. A parent that does not exist is
// ignored and the entity becomes a root.
func (w *World) Spawn(spec Spec) Entity {
	if spec.Transform.Scale == (mgl32.Vec3{}) && spec.Transform.Rotation == (mgl32.Quat{}) {
		spec.Transform = FromTranslation(spec.Transform.Translation)
	}

	w.next++
	e := w.next
	if parent, ok := w.nodes[spec.Parent]; ok {
		parent.children = append(parent.children, e)
	} else {
		spec.Parent = 0
	}
	w.nodes[e] = &node{spec: spec}
	return e
}

// Despawn removes an entity and all of its descendants.
func (w *World) Despawn(e Entity) {
	n, ok := w.nodes[e]
	if !ok {
		return
	}
	for _, child := range append([]Entity(nil), n.children...) {
		w.Despawn(child)
	}
	if parent, ok := w.nodes[n.spec.Parent]; ok {
		for i, c := range parent.children {
			if c == e {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}
	delete(w.nodes, e)
}

// Alive reports whether the entity exists.
func (w *World) Alive(e Entity) bool {
	_, ok := w.nodes[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.nodes)
}

// Spec returns the current description of an entity.
func (w *World) Spec(e Entity) (Spec, bool) {
	n, ok := w.nodes[e]
	if !ok {
		return Spec{}, false
	}
	return n.spec, true
}

// Children returns the direct children of an entity.
func (w *World) Children(e Entity) []Entity {
	n, ok := w.nodes[e]
	if !ok {
		return nil
	}
	return append([]Entity(nil), n.children...)
}

// Transform returns the local transform of an entity.
func (w *World) Transform(e Entity) (Transform, bool) {
	n, ok := w.nodes[e]
	if !ok {
		return Transform{}, false
	}
	return n.spec.Transform, true
}

// SetTransform replaces the local transform of an entity.
func (w *World) SetTransform(e Entity, t Transform) {
	if n, ok := w.nodes[e]; ok {
		n.spec.Transform = t
	}
}

// Translation returns the local translation of an entity.
func (w *World) Translation(e Entity) (mgl32.Vec3, bool) {
	n, ok := w.nodes[e]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return n.spec.Transform.Translation, true
}

// SetTranslation moves an entity within its parent's space.
func (w *World) SetTranslation(e Entity, t mgl32.Vec3) {
	if n, ok := w.nodes[e]; ok {
		n.spec.Transform.Translation = t
	}
}

// WorldMatrix returns the entity's transform composed with all ancestors.
func (w *World) WorldMatrix(e Entity) (mgl32.Mat4, bool) {
	n, ok := w.nodes[e]
	if !ok {
		return mgl32.Ident4(), false
	}
	m := n.spec.Transform.Matrix()
	for p, ok := w.nodes[n.spec.Parent]; ok; p, ok = w.nodes[p.spec.Parent] {
		m = p.spec.Transform.Matrix().Mul4(m)
	}
	return m, true
}

// WorldTranslation returns the entity's origin in world space.
func (w *World) WorldTranslation(e Entity) (mgl32.Vec3, bool) {
	m, ok := w.WorldMatrix(e)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return m.Col(3).Vec3(), true
}

// SetMaterial swaps the material of an entity.
func (w *World) SetMaterial(e Entity, m MaterialHandle) {
	if n, ok := w.nodes[e]; ok {
		n.spec.Material = m
	}
}

// Material returns the material of an entity.
func (w *World) Material(e Entity) (MaterialHandle, bool) {
	n, ok := w.nodes[e]
	if !ok {
		return 0, false
	}
	return n.spec.Material, true
}

// Drawable is an entity with a shape, resolved for rendering.
type Drawable struct {
	Entity Entity
	Shape  Shape
	Color  [4]float32
	Matrix mgl32.Mat4
}

// Drawables resolves every entity that carries a shape, in spawn order.
// Entities whose shape or material does not resolve are skipped.
func (w *World) Drawables() []Drawable {
	entities := make([]Entity, 0, len(w.nodes))
	for e, n := range w.nodes {
		if n.spec.Shape != 0 {
			entities = append(entities, e)
		}
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })

	out := make([]Drawable, 0, len(entities))
	for _, e := range entities {
		spec := w.nodes[e].spec
		shape, ok := w.Shape(spec.Shape)
		if !ok {
			continue
		}
		color, ok := w.MaterialColor(spec.Material)
		if !ok {
			continue
		}
		m, _ := w.WorldMatrix(e)
		out = append(out, Drawable{Entity: e, Shape: shape, Color: color, Matrix: m})
	}
	return out
}
