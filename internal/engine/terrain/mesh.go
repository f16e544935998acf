package terrain

// NewPlane builds a flat plane in the XZ plane centered at the origin, facing
// +Y. subdivisions is the number of extra vertex rows and columns inside the
// plane, so each side carries subdivisions+2 vertices. The mesh has no color
// attribute.
func NewPlane(width, depth float32, subdivisions uint32) *Mesh {
	countX := int(subdivisions) + 2
	countZ := int(subdivisions) + 2

	positions := make([][3]float32, 0, countX*countZ)
	for z := 0; z < countZ; z++ {
		tz := float32(z) / float32(countZ-1)
		for x := 0; x < countX; x++ {
			tx := float32(x) / float32(countX-1)
			positions = append(positions, [3]float32{
				(tx - 0.5) * width,
				0,
				(tz - 0.5) * depth,
			})
		}
	}

	indices := make([]uint32, 0, (countX-1)*(countZ-1)*6)
	for z := 0; z < countZ-1; z++ {
		for x := 0; x < countX-1; x++ {
			quad := uint32(z*countX + x)
			row := uint32(countX)
			// Two counter-clockwise triangles seen from above
			indices = append(indices,
				quad+row+1, quad+1, quad+row,
				quad, quad+row, quad+1,
			)
		}
	}

	return &Mesh{
		Positions: positions,
		Indices:   indices,
	}
}
