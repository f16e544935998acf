// Package editor implements in-scene terrain editing: pointer projection onto
// surfaces, brush strokes that select and deform vertices, and the sync of
// vertex edits back into mesh buffers.
//
// The editor is driven one frame at a time by Step, which runs four phases in
// a fixed order: pointer projection, selection (input events), deformation and
// mesh sync. Output actions such as serialization run after sync so they
// always see complete buffers.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
	"github.com/Faultbox/midgard-terraform/internal/logger"
)

// brushColor is the translucent fill of the brush footprint.
var brushColor = [4]float32{0.23, 0.51, 0.96, 0.4}

// Options configures an Editor.
type Options struct {
	Brush        BrushSettings
	VertexRadius float32
	MarkerRadius float32
	MeshPath     string // target of EventSerialize
}

// DefaultOptions returns the stock brush and vertex settings.
func DefaultOptions() Options {
	return Options{
		Brush:        DefaultBrushSettings(),
		VertexRadius: DefaultVertexRadius,
		MarkerRadius: 0.1,
		MeshPath:     "assets/meshes/mesh_serialized.yaml",
	}
}

// Editor owns the surfaces under edit, the vertex registry and the live brush.
// It is single-threaded: call Step once per frame from the frame loop.
type Editor struct {
	scene  Scene
	meshes MeshStore
	camera RayCaster

	surfaces    []*Surface
	nextSurface SurfaceID

	registry *Registry
	sync     *MeshSync

	brush      BrushSettings
	brushShape scene.ShapeHandle
	discs      map[float32]scene.ShapeHandle // indicator shape per radius
	brushMat   scene.MaterialHandle
	stroke     *BrushStroke
	pointer    PointerState
	meshPath   string
	frame      uint64

	log *zap.Logger
}

// New creates an editor on top of the host's scene, mesh store and camera.
func New(sc Scene, meshes MeshStore, cam RayCaster, opts Options) *Editor {
	e := &Editor{
		scene:    sc,
		meshes:   meshes,
		camera:   cam,
		brush:    opts.Brush,
		meshPath: opts.MeshPath,
		discs:    make(map[float32]scene.ShapeHandle),
		log:      logger.Named("editor"),
	}
	e.registry = NewRegistry(sc, opts.VertexRadius, opts.MarkerRadius)
	e.sync = NewMeshSync(e.registry, meshes, e.Surface)
	e.brushMat = sc.AddMaterial(scene.Material{Color: brushColor})
	e.brushShape = e.discShape(e.brush.Radius)
	return e
}

// discShape returns the indicator shape for radius, registering it on first use.
func (e *Editor) discShape(radius float32) scene.ShapeHandle {
	if h, ok := e.discs[radius]; ok {
		return h
	}
	h := e.scene.AddShape(scene.Shape{Kind: scene.ShapeDisc, Radius: radius})
	e.discs[radius] = h
	return h
}

// AddSurface spawns a surface entity with the given transform and registers
// one vertex record per vertex of its mesh.
func (e *Editor) AddSurface(width, depth float32, t scene.Transform, mesh terrain.Handle) (*Surface, error) {
	m, ok := e.meshes.Get(mesh)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMesh, mesh)
	}

	s, err := NewSurface(e.nextSurface+1, 0, width, depth, mesh)
	if err != nil {
		return nil, err
	}
	s.Entity = e.scene.Spawn(scene.Spec{
		Name:           "surface",
		Transform:      t,
		ReceiveShadows: true,
		CastShadows:    true,
		Pickable:       true,
	})

	var colors [][4]float32
	if len(m.Colors) > 0 {
		colors = m.Colors
	}
	if _, err := e.registry.RegisterSurface(s, m.Positions, colors); err != nil {
		e.scene.Despawn(s.Entity)
		return nil, fmt.Errorf("registering surface: %w", err)
	}

	e.nextSurface = s.ID
	e.surfaces = append(e.surfaces, s)

	e.log.Info("surface added",
		zap.Uint32("surface", uint32(s.ID)),
		zap.Float32("width", width),
		zap.Float32("depth", depth),
		zap.Int("vertices", len(m.Positions)),
	)
	return s, nil
}

// RemoveSurface destroys a surface, its entity and all its vertex records.
func (e *Editor) RemoveSurface(id SurfaceID) error {
	for i, s := range e.surfaces {
		if s.ID != id {
			continue
		}
		e.registry.RemoveSurface(id)
		e.scene.Despawn(s.Entity)
		e.surfaces = append(e.surfaces[:i], e.surfaces[i+1:]...)
		e.log.Info("surface removed", zap.Uint32("surface", uint32(id)))
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownSurface, id)
}

// Surface looks up a surface by ID.
func (e *Editor) Surface(id SurfaceID) (*Surface, bool) {
	for _, s := range e.surfaces {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Surfaces returns the registered surfaces in registration order.
func (e *Editor) Surfaces() []*Surface {
	return append([]*Surface(nil), e.surfaces...)
}

// Registry returns the vertex registry.
func (e *Editor) Registry() *Registry {
	return e.registry
}

// Pointer returns the pointer state computed by the last Step.
func (e *Editor) Pointer() PointerState {
	return e.pointer
}

// Stroke returns the live brush stroke, or nil when idle.
func (e *Editor) Stroke() *BrushStroke {
	return e.stroke
}

// Brush returns the settings used for the next stroke.
func (e *Editor) Brush() BrushSettings {
	return e.brush
}

// SetBrush changes the settings used for the next stroke. A live stroke keeps
// the settings it started with.
func (e *Editor) SetBrush(b BrushSettings) {
	e.brushShape = e.discShape(b.Radius)
	e.brush = b
}

// Step runs one frame. The returned error only reports failed output actions;
// editing itself never fails.
func (e *Editor) Step(in FrameInput) error {
	e.frame++

	// 1. Pointer projection
	e.pointer = Project(in, e.camera, e.scene, e.surfaces)

	// 2. Selection
	for _, ev := range in.Events {
		if h, ok := selectionHandlers[ev.Kind]; ok {
			h(e, ev, e.pointer)
		}
	}

	// 3. Deformation
	if e.stroke != nil {
		if n := e.stroke.Apply(e.registry); n > 0 {
			e.log.Debug("brush applied",
				zap.Stringer("brush", e.stroke.Type),
				zap.Int("vertices", n),
				zap.Uint64("frame", e.frame),
			)
		}
	}

	// 4. Mesh sync
	e.sync.Run()

	// Output actions see synced buffers
	var errs []error
	for _, ev := range in.Events {
		if h, ok := outputHandlers[ev.Kind]; ok {
			if err := h(e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (e *Editor) onDragStart(ev Event, ptr PointerState) {
	if !ev.isPrimaryMouse() {
		return
	}

	// At most one stroke: a leftover one is torn down first.
	if e.stroke != nil {
		e.log.Warn("drag started with a live stroke, discarding it")
		e.endStroke()
	}

	hit, ok := ptr.WorldHit()
	if !ok {
		e.log.Debug("drag started off-surface, no stroke")
		return
	}

	e.stroke = newBrushStroke(e.brush, hit)
	e.stroke.indicator = e.scene.Spawn(scene.Spec{
		Name:           "brush",
		Transform:      scene.FromTranslation(e.stroke.indicatorPosition(hit)),
		Shape:          e.brushShape,
		Material:       e.brushMat,
		CastShadows:    false,
		ReceiveShadows: false,
		Pickable:       false,
	})
	added := e.stroke.Paint(hit, e.registry)

	e.log.Debug("stroke started",
		zap.Stringer("brush", e.stroke.Type),
		zap.Float32("radius", e.stroke.Radius),
		zap.Int("selected", added),
	)
}

func (e *Editor) onDrag(ev Event, ptr PointerState) {
	if !ev.isPrimaryMouse() || e.stroke == nil {
		return
	}

	// A transient miss keeps the stroke alive without scanning.
	hit, ok := ptr.WorldHit()
	if !ok {
		return
	}

	e.scene.SetTranslation(e.stroke.indicator, e.stroke.indicatorPosition(hit))
	e.stroke.Paint(hit, e.registry)
}

func (e *Editor) onDragEnd(ev Event, _ PointerState) {
	if !ev.isPrimaryMouse() || e.stroke == nil {
		return
	}
	e.endStroke()
}

func (e *Editor) onDragCancel(ev Event, _ PointerState) {
	if !ev.isPrimaryMouse() || e.stroke == nil {
		return
	}
	e.log.Debug("drag lost focus, ending stroke")
	e.endStroke()
}

func (e *Editor) onDeselectAll(_ Event, _ PointerState) {
	n := e.registry.DeselectAll()
	e.log.Debug("deselected all vertices", zap.Int("count", n))
}

// endStroke destroys the live stroke and clears every selection mark.
func (e *Editor) endStroke() {
	e.scene.Despawn(e.stroke.indicator)
	cleared := e.registry.DeselectAll()
	e.log.Debug("stroke ended", zap.Int("cleared", cleared))
	e.stroke = nil
}

// serialize writes every surface mesh to disk.
func (e *Editor) serialize() error {
	var errs []error
	for _, s := range e.surfaces {
		m, ok := e.meshes.Get(s.Mesh)
		if !ok {
			errs = append(errs, fmt.Errorf("surface %d: %w: %d", s.ID, ErrUnknownMesh, s.Mesh))
			continue
		}
		path := e.surfacePath(s.ID)
		if err := terrain.Save(path, m); err != nil {
			e.log.Error("failed to save mesh", zap.String("path", path), zap.Error(err))
			errs = append(errs, fmt.Errorf("saving surface %d: %w", s.ID, err))
			continue
		}
		e.log.Info("mesh saved", zap.String("path", path), zap.Int("vertices", m.VertexCount()))
	}
	return errors.Join(errs...)
}

// surfacePath is where EventSerialize writes a surface's mesh. With more than
// one surface the ID is appended to the file name.
func (e *Editor) surfacePath(id SurfaceID) string {
	if len(e.surfaces) <= 1 {
		return e.meshPath
	}
	ext := filepath.Ext(e.meshPath)
	base := strings.TrimSuffix(e.meshPath, ext)
	return fmt.Sprintf("%s_%d%s", base, id, ext)
}
