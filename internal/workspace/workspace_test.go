package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terraform/internal/config"
	"github.com/Faultbox/midgard-terraform/internal/editor"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
)

func TestNewGeneratesPlane(t *testing.T) {
	cfg := config.Default()
	cfg.Surface.Subdivisions = 2

	ws, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, mesh, ok := ws.SurfaceMesh()
	if !ok {
		t.Fatal("surface mesh not found")
	}
	if mesh.VertexCount() != 16 {
		t.Errorf("vertices = %d, want 16", mesh.VertexCount())
	}
	if ws.Editor.Registry().Len() != 16 {
		t.Errorf("records = %d, want 16", ws.Editor.Registry().Len())
	}
	if ws.Surface.Width != 10 || ws.Surface.Depth != 10 {
		t.Errorf("surface = %vx%v, want 10x10", ws.Surface.Width, ws.Surface.Depth)
	}
	if !mgl32.FloatEqual(ws.Camera.FovY, mgl32.DegToRad(45)) {
		t.Errorf("FovY = %v, want 45 degrees", ws.Camera.FovY)
	}
}

func TestNewLoadsSavedMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.yaml")
	saved := terrain.NewPlane(20, 6, 0)
	saved.Positions[0][1] = 3
	if err := terrain.Save(path, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg := config.Default()
	cfg.Data.MeshPath = path
	cfg.Data.LoadMesh = true

	ws, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, mesh, _ := ws.SurfaceMesh()
	if mesh.Positions[0][1] != 3 {
		t.Errorf("loaded height = %v, want 3", mesh.Positions[0][1])
	}
	if ws.Surface.Width != 20 || ws.Surface.Depth != 6 {
		t.Errorf("surface = %vx%v, want 20x6 from mesh bounds", ws.Surface.Width, ws.Surface.Depth)
	}
	if !mgl32.FloatEqual(ws.Camera.Distance, 24) {
		t.Errorf("camera distance = %v, want fitted 24", ws.Camera.Distance)
	}
}

func TestNewMissingMeshFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Data.MeshPath = filepath.Join(t.TempDir(), "absent.yaml")
	cfg.Data.LoadMesh = true
	cfg.Surface.Subdivisions = 0

	ws, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ws.Editor.Registry().Len() != 4 {
		t.Errorf("records = %d, want 4", ws.Editor.Registry().Len())
	}
}

func TestNewErrors(t *testing.T) {
	corrupt := filepath.Join(t.TempDir(), "corrupt.yaml")
	if err := os.WriteFile(corrupt, []byte("version: 1\nmesh:\n  positions: []\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown brush", func(c *config.Config) { c.Brush.Type = "smooth" }},
		{"corrupt mesh", func(c *config.Config) {
			c.Data.MeshPath = corrupt
			c.Data.LoadMesh = true
		}},
		{"flat surface", func(c *config.Config) { c.Surface.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestSessionRaisesTerrain(t *testing.T) {
	cfg := config.Default()
	cfg.Surface.Subdivisions = 3 // vertex at the center
	ws, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	in := editor.FrameInput{
		Cursor:    mgl32.Vec2{float32(cfg.Window.Width) / 2, float32(cfg.Window.Height) / 2},
		HasCursor: true,
		Events:    []editor.Event{{Kind: editor.EventDragStart}},
	}
	if err := ws.Editor.Step(in); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	_, mesh, _ := ws.SurfaceMesh()
	raised := 0
	for _, p := range mesh.Positions {
		if p[1] > 0 {
			raised++
		}
	}
	if raised == 0 {
		t.Error("a drag at the screen center should raise terrain")
	}
}

func TestNewCentersOffsetMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.yaml")
	saved := terrain.NewPlane(4, 4, 0)
	saved.Translate(mgl32.Vec3{10, 0, -6})
	want := make([]mgl32.Vec3, len(saved.Positions))
	for i, p := range saved.Positions {
		want[i] = p
	}
	if err := terrain.Save(path, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg := config.Default()
	cfg.Data.MeshPath = path
	cfg.Data.LoadMesh = true

	ws, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tr, ok := ws.World.Transform(ws.Surface.Entity)
	if !ok || tr.Translation != (mgl32.Vec3{10, 0, -6}) {
		t.Fatalf("surface translation = %v, want mesh center (10, 0, -6)", tr.Translation)
	}

	down := mgl32.Vec3{0, -1, 0}
	if _, hit := ws.Surface.RayIntersection(tr.Translation, tr.Scale, mgl32.Vec3{11.5, 5, -7.5}, down); !hit {
		t.Error("ray over the mesh should hit the surface")
	}
	if _, hit := ws.Surface.RayIntersection(tr.Translation, tr.Scale, mgl32.Vec3{0, 5, 0}, down); hit {
		t.Error("ray at the world origin should miss the offset surface")
	}

	for i, rec := range ws.Editor.Registry().Records(ws.Surface.ID) {
		got, ok := ws.Editor.Registry().WorldPosition(rec)
		if !ok || !got.ApproxEqual(want[i]) {
			t.Errorf("vertex %d world position = %v, want %v", i, got, want[i])
		}
	}
}
