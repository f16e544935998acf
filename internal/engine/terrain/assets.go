package terrain

import "sort"

// Assets stores meshes by handle. It is not safe for concurrent use; the
// editor drives it from the frame loop only.
type Assets struct {
	meshes map[Handle]*Mesh
	next   Handle
}

// NewAssets creates an empty store.
func NewAssets() *Assets {
	return &Assets{
		meshes: make(map[Handle]*Mesh),
	}
}

// Add stores a mesh and returns its handle.
func (a *Assets) Add(m *Mesh) Handle {
	a.next++
	a.meshes[a.next] = m
	return a.next
}

// Get returns the mesh for read access.
func (a *Assets) Get(h Handle) (*Mesh, bool) {
	m, ok := a.meshes[h]
	return m, ok
}

// GetMut returns the mesh for in-place modification. Callers must Touch the
// mesh after writing so mirrors pick up the change.
func (a *Assets) GetMut(h Handle) (*Mesh, bool) {
	m, ok := a.meshes[h]
	return m, ok
}

// Remove drops a mesh from the store.
func (a *Assets) Remove(h Handle) {
	delete(a.meshes, h)
}

// Handles returns all stored handles in ascending order.
func (a *Assets) Handles() []Handle {
	handles := make([]Handle, 0, len(a.meshes))
	for h := range a.meshes {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}
