package editor

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
)

func newTestRegistry(t *testing.T) (*Registry, *scene.World, *Surface) {
	t.Helper()
	world := scene.NewWorld()
	reg := NewRegistry(world, 1, 0.1)
	entity := world.Spawn(scene.Spec{Name: "surface"})
	s, err := NewSurface(1, entity, 4, 4, 1)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	if _, err := reg.RegisterSurface(s, positions, nil); err != nil {
		t.Fatalf("RegisterSurface() error = %v", err)
	}
	return reg, world, s
}

func TestRegisterSurface(t *testing.T) {
	reg, world, s := newTestRegistry(t)

	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
	for i, rec := range reg.Records(s.ID) {
		if rec.Index != i || rec.Surface != s.ID {
			t.Errorf("record %d = %+v", i, rec)
		}
		if rec.Clr != terrain.White {
			t.Errorf("record %d color = %v, want white", i, rec.Clr)
		}
		if rec.Radius != 1 {
			t.Errorf("record %d radius = %v, want 1", i, rec.Radius)
		}
		if spec, _ := world.Spec(rec.Entity); spec.Parent != s.Entity {
			t.Errorf("record %d entity parent = %d, want %d", i, spec.Parent, s.Entity)
		}
	}

	if _, err := reg.RegisterSurface(s, nil, nil); !errors.Is(err, ErrSurfaceRegistered) {
		t.Errorf("second RegisterSurface() error = %v, want ErrSurfaceRegistered", err)
	}
}

func TestRegisterSurfaceColorMismatch(t *testing.T) {
	world := scene.NewWorld()
	reg := NewRegistry(world, 1, 0.1)
	s, _ := NewSurface(1, 0, 4, 4, 1)

	_, err := reg.RegisterSurface(s, [][3]float32{{0, 0, 0}}, [][4]float32{})
	if !errors.Is(err, ErrAttributeMismatch) {
		t.Errorf("RegisterSurface() error = %v, want ErrAttributeMismatch", err)
	}
	if world.Len() != 0 {
		t.Errorf("failed registration spawned %d entities", world.Len())
	}
}

func TestSelectSwapsMaterial(t *testing.T) {
	reg, world, s := newTestRegistry(t)
	id := VertexID{Surface: s.ID, Index: 1}
	rec, _ := reg.Record(id)
	app := reg.Appearance()

	if !reg.Select(id) {
		t.Fatal("Select() = false on an unselected vertex")
	}
	if reg.Select(id) {
		t.Error("Select() = true on an already selected vertex")
	}
	if mat, _ := world.Material(rec.Entity); mat != app.Selected {
		t.Errorf("material = %d, want selected %d", mat, app.Selected)
	}
	if reg.Select(VertexID{Surface: s.ID, Index: 99}) {
		t.Error("Select() = true on a missing vertex")
	}

	reg.Select(VertexID{Surface: s.ID, Index: 0})
	got := reg.Selected()
	if len(got) != 2 || got[0].Index != 0 || got[1].Index != 1 {
		t.Errorf("Selected() = %v, want indices 0,1 in order", got)
	}

	if n := reg.DeselectAll(); n != 2 {
		t.Errorf("DeselectAll() = %d, want 2", n)
	}
	if mat, _ := world.Material(rec.Entity); mat != app.Unselected {
		t.Errorf("material = %d, want unselected %d", mat, app.Unselected)
	}
}

func TestTranslateQueuesWrite(t *testing.T) {
	reg, world, s := newTestRegistry(t)
	id := VertexID{Surface: s.ID, Index: 2}
	rec, _ := reg.Record(id)

	reg.Translate(id, mgl32.Vec3{0, 0.5, 0})
	reg.Translate(id, mgl32.Vec3{0, 0.5, 0})
	reg.SetColor(VertexID{Surface: s.ID, Index: 0}, [4]float32{1, 0, 0, 1})

	if pos, _ := world.Translation(rec.Entity); pos != (mgl32.Vec3{2, 1, 0}) {
		t.Errorf("entity translation = %v, want (2,1,0)", pos)
	}
	// The record only follows the entity once synced.
	if rec.Loc != [3]float32{2, 0, 0} {
		t.Errorf("record loc = %v before sync", rec.Loc)
	}

	dirty := reg.Dirty()[s.ID]
	if len(dirty) != 2 || dirty[0].Index != 0 || dirty[1].Index != 2 {
		t.Fatalf("Dirty() = %v, want indices 0,2", dirty)
	}
}

func TestMeshSyncRun(t *testing.T) {
	reg, _, s := newTestRegistry(t)
	assets := terrain.NewAssets()
	mesh := &terrain.Mesh{Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}
	s.Mesh = assets.Add(mesh)

	sync := NewMeshSync(reg, assets, func(id SurfaceID) (*Surface, bool) {
		return s, id == s.ID
	})

	if n := sync.Run(); n != 0 {
		t.Errorf("Run() with nothing pending = %d, want 0", n)
	}
	rev := mesh.Revision()

	reg.Translate(VertexID{Surface: s.ID, Index: 1}, mgl32.Vec3{0, 2, 0})
	reg.SetColor(VertexID{Surface: s.ID, Index: 2}, [4]float32{0, 1, 0, 1})

	if n := sync.Run(); n != 2 {
		t.Errorf("Run() = %d, want 2", n)
	}
	if mesh.Positions[1] != [3]float32{1, 2, 0} {
		t.Errorf("position 1 = %v", mesh.Positions[1])
	}
	if mesh.Colors[2] != [4]float32{0, 1, 0, 1} {
		t.Errorf("color 2 = %v", mesh.Colors[2])
	}
	if mesh.Colors[0] != terrain.White {
		t.Errorf("color 0 = %v, want white fill", mesh.Colors[0])
	}
	if mesh.Revision() == rev {
		t.Error("sync should bump the mesh revision")
	}
	if len(reg.Dirty()) != 0 {
		t.Error("pending writes should be cleared")
	}
}

func TestMeshSyncDropsOutOfRange(t *testing.T) {
	reg, _, s := newTestRegistry(t)
	assets := terrain.NewAssets()
	mesh := &terrain.Mesh{Positions: [][3]float32{{0, 0, 0}}}
	s.Mesh = assets.Add(mesh)
	sync := NewMeshSync(reg, assets, func(SurfaceID) (*Surface, bool) { return s, true })

	reg.Translate(VertexID{Surface: s.ID, Index: 2}, mgl32.Vec3{0, 1, 0})
	if n := sync.Run(); n != 0 {
		t.Errorf("Run() = %d, want 0", n)
	}
	if len(reg.Dirty()) != 0 {
		t.Error("out-of-range write should be dropped")
	}
}

func TestBrushType(t *testing.T) {
	tests := []struct {
		name    string
		want    BrushType
		wantErr bool
	}{
		{"heights", BrushHeights, false},
		{"", BrushHeights, false},
		{"smooth", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBrushType(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBrushType(%q) error = %v", tt.name, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBrushType(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
	if BrushHeights.String() != "heights" {
		t.Errorf("String() = %q", BrushHeights.String())
	}
}

func TestEventKindString(t *testing.T) {
	if EventDragCancel.String() != "drag_cancel" {
		t.Errorf("String() = %q", EventDragCancel.String())
	}
	if EventKind(0).String() != "unknown" {
		t.Errorf("zero kind String() = %q", EventKind(0).String())
	}
}

func TestBrushRadiusClamped(t *testing.T) {
	s := newBrushStroke(BrushSettings{Radius: -3}, mgl32.Vec3{})
	if s.Radius != 0 {
		t.Errorf("Radius = %v, want 0", s.Radius)
	}
}
