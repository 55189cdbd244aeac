package halfedge3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Model is a built mesh ready to draw: its half-edge structure, the packed
// buffers derived from it, and how and where to draw it.
type Model struct {
	Name      string
	Mesh      *Mesh
	Adjacency []int
	Buffers   *MeshBuffers
	Material  *Material
	Transform *Transform
	Shading   Shading

	CastsShadow    bool
	ReceivesShadow bool
	Outline        bool
	Bob            bool
}

// NewModel builds the half-edge mesh for data, derives its adjacency and
// packs the buffers. The model starts at the origin with the default
// material, lit, and with every draw flag off.
func NewModel(name string, data MeshData, opts BuildOptions) (*Model, error) {
	mesh, err := Build(data, opts)
	if err != nil {
		return nil, fmt.Errorf("could not build model %s: %w", name, err)
	}
	adjacency := DeriveAdjacency(mesh)
	buffers, err := PackBuffers(mesh, adjacency)
	if err != nil {
		return nil, fmt.Errorf("could not build model %s: %w", name, err)
	}

	Logger().Debug("model built",
		"model", name,
		"vertices", mesh.VertexCount(),
		"faces", mesh.FaceCount(),
		"boundary", len(mesh.BoundaryEdges()))

	return &Model{
		Name:      name,
		Mesh:      mesh,
		Adjacency: adjacency,
		Buffers:   buffers,
		Material:  DefaultMaterial(),
		Transform: NewTransform(),
		Shading:   ShadingLit,
	}, nil
}

// Bounds returns the axis-aligned box around the model's vertices in
// local space. An empty mesh has a zero box.
func (m *Model) Bounds() (min, max mgl32.Vec3) {
	return boundsOf(m.Mesh.vertices, func(v Vertex) mgl32.Vec3 { return v.Position })
}

// Size returns the extent of Bounds along each axis.
func (m *Model) Size() mgl32.Vec3 {
	min, max := m.Bounds()
	return max.Sub(min)
}

// CentreMeshData moves every vertex so the centre of the bounding box is
// at the origin.
func CentreMeshData(data *MeshData) {
	if len(data.Vertices) == 0 {
		return
	}
	min, max := boundsOf(data.Vertices, func(v VertexData) mgl32.Vec3 { return v.Position })
	centre := min.Add(max).Mul(0.5)
	for i := range data.Vertices {
		data.Vertices[i].Position = data.Vertices[i].Position.Sub(centre)
	}
}

func boundsOf[T any](items []T, pos func(T) mgl32.Vec3) (min, max mgl32.Vec3) {
	if len(items) == 0 {
		return
	}
	min, max = pos(items[0]), pos(items[0])
	for _, it := range items[1:] {
		p := pos(it)
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}
	return min, max
}
