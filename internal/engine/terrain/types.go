// Package terrain provides editable terrain meshes, their asset store and
// their on-disk form.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// Handle identifies a mesh in an Assets store. The zero Handle is never issued.
type Handle uint32

// Mesh holds the vertex attribute buffers of an editable terrain surface.
// Positions and Colors are index-aligned: slot i of each describes vertex i.
type Mesh struct {
	Positions [][3]float32 `yaml:"positions"`
	Colors    [][4]float32 `yaml:"colors,omitempty"`
	Indices   []uint32     `yaml:"indices,omitempty"`

	revision uint64
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// White is the vertex color used when a mesh carries no color attribute.
var White = [4]float32{1, 1, 1, 1}

// VertexCount returns the number of vertices in the position buffer.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// HasColors reports whether the color attribute covers every vertex.
func (m *Mesh) HasColors() bool {
	return len(m.Colors) == len(m.Positions) && len(m.Colors) > 0
}

// EnsureColors allocates an opaque white color buffer when the mesh has none
// or when it does not match the position buffer.
func (m *Mesh) EnsureColors() {
	if m.HasColors() {
		return
	}
	colors := make([][4]float32, len(m.Positions))
	copy(colors, m.Colors)
	for i := len(m.Colors); i < len(colors); i++ {
		colors[i] = White
	}
	m.Colors = colors
}

// Revision is bumped every time the buffers are written through Touch.
// Consumers that mirror the buffers (GPU uploads) compare it to skip work.
func (m *Mesh) Revision() uint64 {
	return m.revision
}

// Touch marks the buffers as modified.
func (m *Mesh) Touch() {
	m.revision++
}

// Clone returns a deep copy of the buffers.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: append([][3]float32(nil), m.Positions...),
		Colors:    append([][4]float32(nil), m.Colors...),
		Indices:   append([]uint32(nil), m.Indices...),
		revision:  m.revision,
	}
}

// Bounds computes the bounding box of the position buffer.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}

// Translate shifts every position by d.
func (m *Mesh) Translate(d mgl32.Vec3) {
	for i := range m.Positions {
		m.Positions[i] = mgl32.Vec3(m.Positions[i]).Add(d)
	}
	m.Touch()
}

// Stride is the number of floats per vertex in Interleaved output.
const Stride = 7

// Interleaved packs positions and colors as x,y,z,r,g,b,a per vertex. Missing
// colors are white.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*Stride)
	for i, p := range m.Positions {
		c := White
		if i < len(m.Colors) {
			c = m.Colors[i]
		}
		out = append(out, p[0], p[1], p[2], c[0], c[1], c[2], c[3])
	}
	return out
}
