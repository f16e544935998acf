package editor

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terraform/internal/logger"
)

// MeshSync writes pending vertex edits into the surfaces' mesh buffers. It is
// the only writer of those buffers after registration.
type MeshSync struct {
	registry *Registry
	meshes   MeshStore
	surface  func(SurfaceID) (*Surface, bool)
	log      *zap.Logger
}

// NewMeshSync creates a sync step over the given registry and mesh store.
// surface resolves a record's owning surface.
func NewMeshSync(reg *Registry, meshes MeshStore, surface func(SurfaceID) (*Surface, bool)) *MeshSync {
	return &MeshSync{
		registry: reg,
		meshes:   meshes,
		surface:  surface,
		log:      logger.Named("sync"),
	}
}

// Run applies every pending write and returns the number of buffer slots
// written. A surface whose mesh does not resolve keeps its pending writes for
// the next frame.
func (m *MeshSync) Run() int {
	written := 0
	for sid, records := range m.registry.Dirty() {
		s, ok := m.surface(sid)
		if !ok {
			// Surface gone; its records are gone with it.
			for _, rec := range records {
				m.registry.clean(rec.ID())
			}
			continue
		}

		mesh, ok := m.meshes.GetMut(s.Mesh)
		if !ok {
			m.log.Debug("mesh not resolvable, retrying next frame",
				zap.Uint32("surface", uint32(sid)),
				zap.Int("pending", len(records)),
			)
			continue
		}
		mesh.EnsureColors()

		for _, rec := range records {
			if rec.Index >= len(mesh.Positions) {
				m.log.Warn("vertex index outside mesh buffer",
					zap.Uint32("surface", uint32(sid)),
					zap.Int("index", rec.Index),
					zap.Int("vertices", len(mesh.Positions)),
				)
				m.registry.clean(rec.ID())
				continue
			}
			m.registry.refresh(rec)
			mesh.Positions[rec.Index] = rec.Loc
			mesh.Colors[rec.Index] = rec.Clr
			m.registry.clean(rec.ID())
			written++
		}
		mesh.Touch()
	}
	return written
}
