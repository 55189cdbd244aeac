package halfedge3d

import "github.com/go-gl/mathgl/mgl32"

// welder merges corners with identical positions into shared vertices, so
// formats that repeat coordinates per face still produce twin edges.
type welder struct {
	positions []mgl32.Vec3
	index     map[mgl32.Vec3]int
}

func newWelder() *welder {
	return &welder{index: make(map[mgl32.Vec3]int)}
}

// add returns the vertex index for p, creating a vertex the first time a
// position is seen.
func (w *welder) add(p mgl32.Vec3) int {
	if i, found := w.index[p]; found {
		return i
	}
	w.positions = append(w.positions, p)
	i := len(w.positions) - 1
	w.index[p] = i
	return i
}

// meshData pairs the welded positions with faces and smooth normals.
func (w *welder) meshData(faces []Triangle) MeshData {
	normals := SmoothNormals(w.positions, faces)
	vertices := make([]VertexData, len(w.positions))
	for i, p := range w.positions {
		vertices[i] = VertexData{Position: p, Normal: normals[i]}
	}
	return MeshData{Vertices: vertices, Faces: faces}
}
