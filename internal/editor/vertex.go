package editor

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
	"github.com/Faultbox/midgard-terraform/internal/logger"
)

// DefaultVertexRadius is the selection reach of a vertex when none is configured.
const DefaultVertexRadius = 1.0

// Marker colors for vertex spheres.
var (
	unselectedColor = [4]float32{0, 0, 0, 0.85}
	selectedColor   = [4]float32{1, 0.27, 0, 0.85} // orange red
)

// VertexID addresses one vertex across all surfaces.
type VertexID struct {
	Surface SurfaceID
	Index   int
}

// VertexRecord mirrors one slot of a surface's mesh buffers. Index never
// changes after registration; Loc and Clr are written by the Registry only.
type VertexRecord struct {
	Index   int
	Loc     [3]float32
	Clr     [4]float32
	Radius  float32
	Surface SurfaceID
	Entity  scene.Entity
}

// ID returns the record's global address.
func (r *VertexRecord) ID() VertexID {
	return VertexID{Surface: r.Surface, Index: r.Index}
}

// Appearance holds the shared marker resources. Every vertex entity points at
// these handles; they are created once per registry.
type Appearance struct {
	Shape      scene.ShapeHandle
	Unselected scene.MaterialHandle
	Selected   scene.MaterialHandle
}

// Registry owns the vertex records of every registered surface, their
// selection marks and their pending mesh writes.
type Registry struct {
	scene      Scene
	appearance Appearance
	radius     float32

	records  map[SurfaceID][]*VertexRecord
	order    []SurfaceID
	selected map[VertexID]struct{}
	dirty    map[VertexID]struct{}

	log *zap.Logger
}

// NewRegistry creates a registry whose vertices reach radius beyond the
// brush and show as spheres of markerRadius.
func NewRegistry(sc Scene, radius, markerRadius float32) *Registry {
	return &Registry{
		scene: sc,
		appearance: Appearance{
			Shape:      sc.AddShape(scene.Shape{Kind: scene.ShapeSphere, Radius: markerRadius}),
			Unselected: sc.AddMaterial(scene.Material{Color: unselectedColor}),
			Selected:   sc.AddMaterial(scene.Material{Color: selectedColor}),
		},
		radius:   radius,
		records:  make(map[SurfaceID][]*VertexRecord),
		selected: make(map[VertexID]struct{}),
		dirty:    make(map[VertexID]struct{}),
		log:      logger.Named("vertex"),
	}
}

// Appearance returns the shared marker handles.
func (r *Registry) Appearance() Appearance {
	return r.appearance
}

// RegisterSurface creates one record and one marker entity per vertex. A nil
// colors slice means the mesh has no color attribute and every vertex starts
// opaque white; any other length must match positions.
func (r *Registry) RegisterSurface(s *Surface, positions [][3]float32, colors [][4]float32) ([]*VertexRecord, error) {
	if _, ok := r.records[s.ID]; ok {
		return nil, fmt.Errorf("%w: %d", ErrSurfaceRegistered, s.ID)
	}
	if colors == nil {
		colors = make([][4]float32, len(positions))
		for i := range colors {
			colors[i] = terrain.White
		}
	}
	if len(colors) != len(positions) {
		return nil, fmt.Errorf("%w: %d positions, %d colors", ErrAttributeMismatch, len(positions), len(colors))
	}

	records := make([]*VertexRecord, len(positions))
	for i, pos := range positions {
		entity := r.scene.Spawn(scene.Spec{
			Name:      "vertex",
			Transform: scene.FromTranslation(pos),
			Parent:    s.Entity,
			Shape:     r.appearance.Shape,
			Material:  r.appearance.Unselected,
			Pickable:  true,
		})
		records[i] = &VertexRecord{
			Index:   i,
			Loc:     pos,
			Clr:     colors[i],
			Radius:  r.radius,
			Surface: s.ID,
			Entity:  entity,
		}
	}

	r.records[s.ID] = records
	r.order = append(r.order, s.ID)

	r.log.Debug("surface registered",
		zap.Uint32("surface", uint32(s.ID)),
		zap.Int("vertices", len(records)),
	)
	return records, nil
}

// RemoveSurface despawns every vertex entity of a surface and drops its
// records, marks and pending writes.
func (r *Registry) RemoveSurface(id SurfaceID) {
	records, ok := r.records[id]
	if !ok {
		return
	}
	for _, rec := range records {
		r.scene.Despawn(rec.Entity)
		delete(r.selected, rec.ID())
		delete(r.dirty, rec.ID())
	}
	delete(r.records, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Records returns the records of a surface ordered by index.
func (r *Registry) Records(id SurfaceID) []*VertexRecord {
	return r.records[id]
}

// Record looks up a single record.
func (r *Registry) Record(id VertexID) (*VertexRecord, bool) {
	records := r.records[id.Surface]
	if id.Index < 0 || id.Index >= len(records) {
		return nil, false
	}
	return records[id.Index], true
}

// Each calls fn for every record, surface by surface in registration order.
func (r *Registry) Each(fn func(*VertexRecord)) {
	for _, sid := range r.order {
		for _, rec := range r.records[sid] {
			fn(rec)
		}
	}
}

// Len returns the total number of records.
func (r *Registry) Len() int {
	n := 0
	for _, records := range r.records {
		n += len(records)
	}
	return n
}

// WorldPosition returns the vertex entity's current world-space position.
func (r *Registry) WorldPosition(rec *VertexRecord) (mgl32.Vec3, bool) {
	return r.scene.WorldTranslation(rec.Entity)
}

// Select marks a vertex as under brush influence. It returns false if the
// vertex was already selected or does not exist.
func (r *Registry) Select(id VertexID) bool {
	rec, ok := r.Record(id)
	if !ok {
		return false
	}
	if _, ok := r.selected[id]; ok {
		return false
	}
	r.selected[id] = struct{}{}
	r.scene.SetMaterial(rec.Entity, r.appearance.Selected)
	return true
}

// Deselect removes a vertex's selection mark.
func (r *Registry) Deselect(id VertexID) {
	if _, ok := r.selected[id]; !ok {
		return
	}
	delete(r.selected, id)
	if rec, ok := r.Record(id); ok {
		r.scene.SetMaterial(rec.Entity, r.appearance.Unselected)
	}
}

// DeselectAll clears every selection mark and returns how many were cleared.
func (r *Registry) DeselectAll() int {
	n := len(r.selected)
	for id := range r.selected {
		r.Deselect(id)
	}
	return n
}

// IsSelected reports whether a vertex carries a selection mark.
func (r *Registry) IsSelected(id VertexID) bool {
	_, ok := r.selected[id]
	return ok
}

// Selected returns the selected vertices in surface, then index order.
func (r *Registry) Selected() []VertexID {
	ids := make([]VertexID, 0, len(r.selected))
	for id := range r.selected {
		ids = append(ids, id)
	}
	sortVertexIDs(ids)
	return ids
}

// SelectedCount returns the number of selected vertices.
func (r *Registry) SelectedCount() int {
	return len(r.selected)
}

// Translate moves a vertex entity by delta in its surface's space and queues
// the mesh write.
func (r *Registry) Translate(id VertexID, delta mgl32.Vec3) {
	rec, ok := r.Record(id)
	if !ok {
		return
	}
	pos, ok := r.scene.Translation(rec.Entity)
	if !ok {
		return
	}
	r.scene.SetTranslation(rec.Entity, pos.Add(delta))
	r.dirty[id] = struct{}{}
}

// SetColor changes a vertex color and queues the mesh write.
func (r *Registry) SetColor(id VertexID, clr [4]float32) {
	rec, ok := r.Record(id)
	if !ok {
		return
	}
	rec.Clr = clr
	r.dirty[id] = struct{}{}
}

// Dirty returns the records with pending mesh writes, grouped by surface.
func (r *Registry) Dirty() map[SurfaceID][]*VertexRecord {
	out := make(map[SurfaceID][]*VertexRecord)
	for id := range r.dirty {
		if rec, ok := r.Record(id); ok {
			out[id.Surface] = append(out[id.Surface], rec)
		}
	}
	for _, records := range out {
		sort.Slice(records, func(i, j int) bool { return records[i].Index < records[j].Index })
	}
	return out
}

// refresh copies the entity's translation into the record.
func (r *Registry) refresh(rec *VertexRecord) {
	if pos, ok := r.scene.Translation(rec.Entity); ok {
		rec.Loc = pos
	}
}

// clean drops a pending write once it reached the mesh.
func (r *Registry) clean(id VertexID) {
	delete(r.dirty, id)
}

func sortVertexIDs(ids []VertexID) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Surface != ids[j].Surface {
			return ids[i].Surface < ids[j].Surface
		}
		return ids[i].Index < ids[j].Index
	})
}
