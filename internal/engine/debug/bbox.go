// Package debug provides editor overlays and frame capture.
package debug

import (
	"github.com/Faultbox/midgard-terraform/internal/engine/picking"
	"github.com/Faultbox/midgard-terraform/internal/engine/terrain"
)

// Vertex counts of Wireframe output.
const (
	BoxWireframeVertexCount  = 24 // 12 edges
	FlatWireframeVertexCount = 8  // 4 edges
)

// Wireframe returns the edges of box as a line list in the interleaved
// position + color layout of terrain.Interleaved. padding grows the box on
// every side that has extent; a box with zero height stays flat and yields
// only its rectangle outline.
func Wireframe(box picking.AABB, color [4]float32, padding float32) []float32 {
	minX, minY, minZ := box.Min.X()-padding, box.Min.Y(), box.Min.Z()-padding
	maxX, maxY, maxZ := box.Max.X()+padding, box.Max.Y(), box.Max.Z()+padding
	flat := minY == maxY
	if !flat {
		minY -= padding
		maxY += padding
	}

	corners := [][3]float32{
		// Bottom face
		{minX, minY, minZ}, {maxX, minY, minZ},
		{maxX, minY, minZ}, {maxX, minY, maxZ},
		{maxX, minY, maxZ}, {minX, minY, maxZ},
		{minX, minY, maxZ}, {minX, minY, minZ},
	}
	if !flat {
		corners = append(corners,
			// Top face
			[3]float32{minX, maxY, minZ}, [3]float32{maxX, maxY, minZ},
			[3]float32{maxX, maxY, minZ}, [3]float32{maxX, maxY, maxZ},
			[3]float32{maxX, maxY, maxZ}, [3]float32{minX, maxY, maxZ},
			[3]float32{minX, maxY, maxZ}, [3]float32{minX, maxY, minZ},
			// Vertical edges
			[3]float32{minX, minY, minZ}, [3]float32{minX, maxY, minZ},
			[3]float32{maxX, minY, minZ}, [3]float32{maxX, maxY, minZ},
			[3]float32{maxX, minY, maxZ}, [3]float32{maxX, maxY, maxZ},
			[3]float32{minX, minY, maxZ}, [3]float32{minX, maxY, maxZ},
		)
	}

	out := make([]float32, 0, len(corners)*terrain.Stride)
	for _, c := range corners {
		out = append(out, c[0], c[1], c[2], color[0], color[1], color[2], color[3])
	}
	return out
}
