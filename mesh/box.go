package mesh

import "github.com/go-gl/mathgl/mgl64"

// Box builds an axis-aligned box between min and max, 8 vertices and 12 triangles
// wound counter-clockwise seen from outside.
func Box(name string, min, max mgl64.Vec3, fixed bool) *Mesh {
	vertices := []mgl64.Vec3{
		{min.X(), min.Y(), min.Z()},
		{max.X(), min.Y(), min.Z()},
		{max.X(), max.Y(), min.Z()},
		{min.X(), max.Y(), min.Z()},
		{min.X(), min.Y(), max.Z()},
		{max.X(), min.Y(), max.Z()},
		{max.X(), max.Y(), max.Z()},
		{min.X(), max.Y(), max.Z()},
	}
	triangles := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // -Z
		{4, 5, 6}, {4, 6, 7}, // +Z
		{0, 1, 5}, {0, 5, 4}, // -Y
		{3, 7, 6}, {3, 6, 2}, // +Y
		{0, 4, 7}, {0, 7, 3}, // -X
		{1, 2, 6}, {1, 6, 5}, // +X
	}

	m, err := New(name, vertices, triangles, fixed)
	if err != nil {
		// indices above are constant and valid
		panic(err)
	}
	return m
}
