package halfedge3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Interleaved vertex layout, in float32 units.
const (
	PositionOffset = 0
	NormalOffset   = 3
	EdgeOffset     = 6
	VertexStride   = 7
)

// maxPackedEdges is the largest edge count whose indices a float32 holds
// exactly (2^24).
var maxPackedEdges = 1 << 24

// MeshBuffers is a mesh packed the way a GPU upload wants it: one
// interleaved vertex buffer and two index buffers, one for plain triangles
// and one for triangles with adjacency.
type MeshBuffers struct {
	Vertices  []float32
	Triangles []uint32
	Adjacency []uint32
}

// PackBuffers packs m and its adjacency sequence. The representative edge
// index is stored as a float; -1 means the vertex has no edge. Meshes with
// more than 2^24 half-edges fail with ErrTooManyEdges.
func PackBuffers(m *Mesh, adjacency []int) (*MeshBuffers, error) {
	if m.EdgeCount() > maxPackedEdges {
		return nil, fmt.Errorf("%w: %d half-edges, limit %d", ErrTooManyEdges, m.EdgeCount(), maxPackedEdges)
	}
	b := &MeshBuffers{
		Vertices:  make([]float32, 0, m.VertexCount()*VertexStride),
		Triangles: make([]uint32, m.EdgeCount()),
		Adjacency: make([]uint32, len(adjacency)),
	}
	for _, v := range m.vertices {
		b.Vertices = append(b.Vertices,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			float32(v.Edge))
	}
	for i, idx := range TriangleIndices(m) {
		b.Triangles[i] = uint32(idx)
	}
	for i, idx := range adjacency {
		b.Adjacency[i] = uint32(idx)
	}
	return b, nil
}

// VertexCount is the number of packed vertices.
func (b *MeshBuffers) VertexCount() int {
	return len(b.Vertices) / VertexStride
}

func (b *MeshBuffers) position(i int) mgl32.Vec3 {
	o := i*VertexStride + PositionOffset
	return mgl32.Vec3{b.Vertices[o], b.Vertices[o+1], b.Vertices[o+2]}
}

func (b *MeshBuffers) normal(i int) mgl32.Vec3 {
	o := i*VertexStride + NormalOffset
	return mgl32.Vec3{b.Vertices[o], b.Vertices[o+1], b.Vertices[o+2]}
}
