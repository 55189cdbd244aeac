package halfedge3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothNormals(t *testing.T) {
	data := Quad()
	positions := make([]mgl32.Vec3, len(data.Vertices))
	for i, v := range data.Vertices {
		positions[i] = v.Position
	}
	positions = append(positions, mgl32.Vec3{9, 9, 9})

	normals := SmoothNormals(positions, data.Faces)
	require.Len(t, normals, 5)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1, normals[i].Y(), 1e-6, "vertex %d", i)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, normals[4])
}

func TestWelderSharesPositions(t *testing.T) {
	w := newWelder()
	a := w.add(mgl32.Vec3{0, 0, 0})
	b := w.add(mgl32.Vec3{1, 0, 0})
	again := w.add(mgl32.Vec3{0, 0, 0})

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, a, again)

	data := w.meshData(nil)
	assert.Len(t, data.Vertices, 2)
}

func TestGenerateTerrain(t *testing.T) {
	params := TerrainParams{Size: 8, Resolution: 4, Amplitude: 1.5, Frequency: 0.4, Seed: 42}
	data := GenerateTerrain(params)

	assert.Len(t, data.Vertices, 25)
	assert.Len(t, data.Faces, 32)
	for _, v := range data.Vertices {
		assert.GreaterOrEqual(t, v.Position.X(), float32(-4))
		assert.LessOrEqual(t, v.Position.X(), float32(4))
		assert.LessOrEqual(t, abs32(v.Position.Y()), float32(1.5*2))
	}

	assert.Equal(t, data, GenerateTerrain(params), "same seed, same terrain")

	m := mustBuild(t, data, BuildOptions{})
	assert.Len(t, m.BoundaryEdges(), 4*params.Resolution)
}

func TestGenerateTerrainFlatFacesUp(t *testing.T) {
	data := GenerateTerrain(TerrainParams{Size: 2, Resolution: 2})
	for _, v := range data.Vertices {
		assert.Zero(t, v.Position.Y())
		assert.InDelta(t, 1, v.Normal.Y(), 1e-6)
	}
}

func TestPrimitivesBuild(t *testing.T) {
	cases := []struct {
		name     string
		data     MeshData
		faces    int
		boundary int
	}{
		{"triangle", SingleTriangle(), 1, 3},
		{"quad", Quad(), 2, 4},
		{"cube", Cube(), 12, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := mustBuild(t, tc.data, BuildOptions{})
			assert.Equal(t, tc.faces, m.FaceCount())
			assert.Len(t, m.BoundaryEdges(), tc.boundary)
		})
	}
}

func TestCubeFacesOutward(t *testing.T) {
	data := Cube()
	for f, tri := range data.Faces {
		p1, p2, p3 := data.Vertices[tri[0]].Position, data.Vertices[tri[1]].Position, data.Vertices[tri[2]].Position
		centre := p1.Add(p2).Add(p3).Mul(1.0 / 3)
		assert.Greater(t, faceNormal(p1, p2, p3).Dot(centre), float32(0), "face %d", f)
	}
}

func TestPackBuffers(t *testing.T) {
	data := Quad()
	data.Vertices = append(data.Vertices, VertexData{Position: mgl32.Vec3{7, 8, 9}})
	m := mustBuild(t, data, BuildOptions{})
	adjacency := DeriveAdjacency(m)

	b, err := PackBuffers(m, adjacency)
	require.NoError(t, err)

	require.Len(t, b.Vertices, 5*VertexStride)
	assert.Equal(t, 5, b.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, b.Triangles)
	assert.Equal(t, []uint32{0, 0, 1, 1, 2, 3, 0, 1, 2, 2, 3, 3}, b.Adjacency)

	v3 := b.Vertices[3*VertexStride : 4*VertexStride]
	assert.Equal(t, []float32{1, 0, -1}, v3[PositionOffset:PositionOffset+3])
	assert.Equal(t, []float32{0, 1, 0}, v3[NormalOffset:NormalOffset+3])
	assert.Equal(t, float32(5), v3[EdgeOffset])

	unused := b.Vertices[4*VertexStride:]
	assert.Equal(t, float32(NoEdge), unused[EdgeOffset])
	assert.Equal(t, mgl32.Vec3{7, 8, 9}, b.position(4))
}

func TestPackBuffersEdgeLimit(t *testing.T) {
	old := maxPackedEdges
	maxPackedEdges = 5
	t.Cleanup(func() { maxPackedEdges = old })

	m := mustBuild(t, Quad(), BuildOptions{})
	_, err := PackBuffers(m, DeriveAdjacency(m))
	assert.ErrorIs(t, err, ErrTooManyEdges)

	_, err = NewModel("ground", Quad(), BuildOptions{})
	assert.ErrorIs(t, err, ErrTooManyEdges)

	maxPackedEdges = 6
	_, err = PackBuffers(m, DeriveAdjacency(m))
	assert.NoError(t, err)
}

func TestModelBoundsAndCentre(t *testing.T) {
	data := Cube()
	for i := range data.Vertices {
		data.Vertices[i].Position = data.Vertices[i].Position.Add(mgl32.Vec3{3, 0, 0})
	}
	CentreMeshData(&data)

	m, err := NewModel("cube", data, BuildOptions{})
	require.NoError(t, err)

	min, max := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, min)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, max)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, m.Size())
	assert.Equal(t, ShadingLit, m.Shading)
	assert.Equal(t, DeriveAdjacency(m.Mesh), m.Adjacency)
}

func TestNewModelWrapsBuildErrors(t *testing.T) {
	data := SingleTriangle()
	data.Faces = append(data.Faces, Triangle{0, 1, 5})

	_, err := NewModel("broken", data, BuildOptions{})
	assert.ErrorIs(t, err, ErrInvalidFaceReference)
	assert.ErrorContains(t, err, "broken")
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
