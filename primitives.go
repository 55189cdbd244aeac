package halfedge3d

import "github.com/go-gl/mathgl/mgl32"

// SingleTriangle is one triangle in the XY plane facing +Z.
func SingleTriangle() MeshData {
	up := mgl32.Vec3{0, 0, 1}
	return MeshData{
		Vertices: []VertexData{
			{Position: mgl32.Vec3{0, 0, 0}, Normal: up},
			{Position: mgl32.Vec3{1, 0, 0}, Normal: up},
			{Position: mgl32.Vec3{0, 1, 0}, Normal: up},
		},
		Faces: []Triangle{{0, 1, 2}},
	}
}

// Quad is the 2x2 ground square at y=0 facing +Y, split along the 0-2
// diagonal.
func Quad() MeshData {
	up := mgl32.Vec3{0, 1, 0}
	return MeshData{
		Vertices: []VertexData{
			{Position: mgl32.Vec3{-1, 0, -1}, Normal: up},
			{Position: mgl32.Vec3{-1, 0, 1}, Normal: up},
			{Position: mgl32.Vec3{1, 0, 1}, Normal: up},
			{Position: mgl32.Vec3{1, 0, -1}, Normal: up},
		},
		Faces: []Triangle{{0, 1, 2}, {0, 2, 3}},
	}
}

// Cube is a closed unit-half-extent cube with outward counter-clockwise
// faces and smooth corner normals.
func Cube() MeshData {
	corners := []mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, // z- (0-3)
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, // z+ (4-7)
	}
	vertices := make([]VertexData, len(corners))
	for i, c := range corners {
		vertices[i] = VertexData{Position: c, Normal: c.Normalize()}
	}
	return MeshData{
		Vertices: vertices,
		Faces: []Triangle{
			{4, 5, 6}, {4, 6, 7}, // z+
			{1, 0, 3}, {1, 3, 2}, // z-
			{5, 1, 2}, {5, 2, 6}, // x+
			{0, 4, 7}, {0, 7, 3}, // x-
			{7, 6, 2}, {7, 2, 3}, // y+
			{0, 1, 5}, {0, 5, 4}, // y-
		},
	}
}
