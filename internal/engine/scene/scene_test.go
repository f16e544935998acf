package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpawnDefaultsTransform(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(Spec{Transform: Transform{Translation: mgl32.Vec3{1, 2, 3}}})

	tr, ok := w.Transform(e)
	if !ok {
		t.Fatal("spawned entity not found")
	}
	if tr.Scale != (mgl32.Vec3{1, 1, 1}) || tr.Rotation != mgl32.QuatIdent() {
		t.Errorf("zero transform not normalized: %+v", tr)
	}
	if tr.Translation != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Translation = %v, want {1 2 3}", tr.Translation)
	}
}

func TestWorldTranslationFollowsParent(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn(Spec{Transform: FromTranslation(mgl32.Vec3{10, 0, 0}).WithScale(2)})
	child := w.Spawn(Spec{Parent: parent, Transform: FromTranslation(mgl32.Vec3{1, 1, 0})})

	got, ok := w.WorldTranslation(child)
	if !ok {
		t.Fatal("child not found")
	}
	want := mgl32.Vec3{12, 2, 0}
	if !got.ApproxEqual(want) {
		t.Errorf("WorldTranslation() = %v, want %v", got, want)
	}

	w.SetTranslation(child, mgl32.Vec3{0, 3, 0})
	got, _ = w.WorldTranslation(child)
	if !got.ApproxEqual(mgl32.Vec3{10, 6, 0}) {
		t.Errorf("after SetTranslation, WorldTranslation() = %v, want {10 6 0}", got)
	}
}

func TestDespawnCascades(t *testing.T) {
	w := NewWorld()
	root := w.Spawn(Spec{})
	var kids []Entity
	for i := 0; i < 5; i++ {
		kids = append(kids, w.Spawn(Spec{Parent: root}))
	}
	other := w.Spawn(Spec{})

	w.Despawn(root)

	if w.Alive(root) {
		t.Error("root still alive")
	}
	for _, k := range kids {
		if w.Alive(k) {
			t.Errorf("child %d survived its parent", k)
		}
	}
	if !w.Alive(other) || w.Len() != 1 {
		t.Errorf("unrelated entity affected, Len() = %d", w.Len())
	}
}

func TestDespawnChildDetachesFromParent(t *testing.T) {
	w := NewWorld()
	root := w.Spawn(Spec{})
	a := w.Spawn(Spec{Parent: root})
	b := w.Spawn(Spec{Parent: root})

	w.Despawn(a)

	children := w.Children(root)
	if len(children) != 1 || children[0] != b {
		t.Errorf("Children() = %v, want [%d]", children, b)
	}
}

func TestSharedResources(t *testing.T) {
	w := NewWorld()
	sphere := w.AddShape(Shape{Kind: ShapeSphere, Radius: 0.5})
	black := w.AddMaterial(Material{Color: [4]float32{0, 0, 0, 0.85}})
	red := w.AddMaterial(Material{Color: [4]float32{1, 0.27, 0, 0.85}})

	e := w.Spawn(Spec{Shape: sphere, Material: black})
	w.SetMaterial(e, red)

	if m, _ := w.Material(e); m != red {
		t.Errorf("Material() = %d, want %d", m, red)
	}
	if c, ok := w.MaterialColor(red); !ok || c[0] != 1 {
		t.Errorf("MaterialColor() = %v, %v", c, ok)
	}
	if _, ok := w.MaterialColor(0); ok {
		t.Error("zero material handle should not resolve")
	}
	if w.ShapeCount() != 1 || w.MaterialCount() != 2 {
		t.Errorf("got %d shapes, %d materials", w.ShapeCount(), w.MaterialCount())
	}
}

func TestDrawables(t *testing.T) {
	w := NewWorld()
	sphere := w.AddShape(Shape{Kind: ShapeSphere, Radius: 0.1})
	red := w.AddMaterial(Material{Color: [4]float32{1, 0, 0, 1}})

	root := w.Spawn(Spec{Name: "surface", Transform: FromTranslation(mgl32.Vec3{0, 2, 0})})
	a := w.Spawn(Spec{Parent: root, Shape: sphere, Material: red, Transform: FromTranslation(mgl32.Vec3{1, 0, 0})})
	w.Spawn(Spec{Shape: sphere}) // no material
	b := w.Spawn(Spec{Shape: sphere, Material: red})

	got := w.Drawables()
	if len(got) != 2 {
		t.Fatalf("Drawables() = %d entries, want 2", len(got))
	}
	if got[0].Entity != a || got[1].Entity != b {
		t.Errorf("Drawables() order = %d,%d, want %d,%d", got[0].Entity, got[1].Entity, a, b)
	}
	if pos := got[0].Matrix.Col(3).Vec3(); pos != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("drawable position = %v, want parent applied", pos)
	}
	if got[0].Shape.Kind != ShapeSphere || got[0].Color != [4]float32{1, 0, 0, 1} {
		t.Errorf("drawable = %+v", got[0])
	}
}
