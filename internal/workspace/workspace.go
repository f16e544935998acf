// Package workspace assembles an editing session from configuration: the
// scene, the mesh store, the orbit camera and the editor with its surface.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terraform/internal/config"
	"github.com/Faultbox/midgard-terraform/internal/editor"
	"github.com/Faultbox/midgard-terraform/internal/engine/camera"
	"github.com/Faultbox/midgard-terraform/internal/engine/picking"
	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
	"github.com/Faultbox/midgard-terraform/internal/logger"
)

// Workspace is one editing session.
type Workspace struct {
	World   *scene.World
	Meshes  *terrain.Assets
	Camera  *camera.OrbitCamera
	Editor  *editor.Editor
	Surface *editor.Surface
}

// New builds a session. The surface mesh is read from cfg.Data.MeshPath when
// loading is enabled and the file exists; otherwise a flat plane is generated.
func New(cfg *config.Config) (*Workspace, error) {
	brushType, err := editor.ParseBrushType(cfg.Brush.Type)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		World:  scene.NewWorld(),
		Meshes: terrain.NewAssets(),
		Camera: newCamera(cfg),
	}

	ws.Editor = editor.New(ws.World, ws.Meshes, ws.Camera, editor.Options{
		Brush: editor.BrushSettings{
			Type:          brushType,
			Radius:        cfg.Brush.Radius,
			RaiseStep:     cfg.Brush.RaiseStep,
			IndicatorLift: cfg.Brush.IndicatorLift,
		},
		VertexRadius: cfg.Vertex.Radius,
		MarkerRadius: cfg.Vertex.MarkerRadius,
		MeshPath:     cfg.Data.MeshPath,
	})

	mesh, loaded, err := loadOrGenerate(cfg)
	if err != nil {
		return nil, err
	}

	width, depth := cfg.Surface.Width, cfg.Surface.Depth
	placement := scene.IdentityTransform()
	var bounds terrain.Bounds
	if loaded {
		bounds = mesh.Bounds()
		if w, d := bounds.Max.X()-bounds.Min.X(), bounds.Max.Z()-bounds.Min.Z(); w > 0 && d > 0 {
			width, depth = w, d
		}
		// The pick rectangle is centered on the surface origin, so move the
		// mesh's XZ center there and carry the offset in the transform.
		center := bounds.Min.Add(bounds.Max).Mul(0.5)
		center[1] = 0
		mesh.Translate(center.Mul(-1))
		placement.Translation = center
	}

	h := ws.Meshes.Add(mesh)
	ws.Surface, err = ws.Editor.AddSurface(width, depth, placement, h)
	if err != nil {
		return nil, fmt.Errorf("adding surface: %w", err)
	}

	if loaded {
		ws.Camera.FitToBounds(picking.NewAABB(bounds.Min, bounds.Max))
	}

	logger.Info("workspace ready",
		zap.Bool("loaded", loaded),
		zap.Float32("width", width),
		zap.Float32("depth", depth),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Stringer("brush", brushType),
	)
	return ws, nil
}

func newCamera(cfg *config.Config) *camera.OrbitCamera {
	c := camera.NewOrbitCamera(cfg.Window.Width, cfg.Window.Height)
	c.Distance = mgl32.Clamp(cfg.Camera.Distance, c.MinDistance, c.MaxDistance)
	c.RotationX = mgl32.Clamp(cfg.Camera.Pitch, c.MinPitch, c.MaxPitch)
	c.RotationY = cfg.Camera.Yaw
	c.FovY = mgl32.DegToRad(cfg.Camera.FovY)
	c.Near = cfg.Camera.Near
	c.Far = cfg.Camera.Far
	return c
}

// loadOrGenerate returns the starting mesh and whether it came from disk.
func loadOrGenerate(cfg *config.Config) (*terrain.Mesh, bool, error) {
	if cfg.Data.LoadMesh && cfg.Data.MeshPath != "" {
		m, err := terrain.Load(cfg.Data.MeshPath)
		switch {
		case err == nil:
			logger.Info("mesh loaded", zap.String("path", cfg.Data.MeshPath))
			return m, true, nil
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn("mesh file not found, generating plane", zap.String("path", cfg.Data.MeshPath))
		default:
			return nil, false, fmt.Errorf("loading mesh: %w", err)
		}
	}
	return terrain.NewPlane(cfg.Surface.Width, cfg.Surface.Depth, cfg.Surface.Subdivisions), false, nil
}

// Resize updates the viewport used for ray casting.
func (ws *Workspace) Resize(width, height int) {
	ws.Camera.Resize(width, height)
}

// SurfaceMesh returns the mesh of the session's surface.
func (ws *Workspace) SurfaceMesh() (terrain.Handle, *terrain.Mesh, bool) {
	m, ok := ws.Meshes.Get(ws.Surface.Mesh)
	return ws.Surface.Mesh, m, ok
}

// SurfaceMatrix returns the world matrix of the session's surface.
func (ws *Workspace) SurfaceMatrix() mgl32.Mat4 {
	m, _ := ws.World.WorldMatrix(ws.Surface.Entity)
	return m
}
