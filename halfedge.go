package halfedge3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NoEdge marks a missing half-edge: the twin of a boundary edge, or the
// representative edge of a vertex no face uses.
const NoEdge = -1

// Vertex is a mesh vertex. Edge is one half-edge that starts at it.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Edge     int
}

// HalfEdge is a directed edge owned by exactly one face.
type HalfEdge struct {
	Origin int
	Next   int
	Twin   int
	Face   int
}

// Face holds the root half-edge of a triangle.
type Face struct {
	Edge int
}

// VertexData is the per-vertex input to Build.
type VertexData struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Triangle is a face given as three vertex indices, 0-based.
type Triangle [3]int

// MeshData is everything Build needs: ordered vertices and ordered faces.
// Faces are expected to share one winding order.
type MeshData struct {
	Vertices []VertexData
	Faces    []Triangle
}

type TwinLookup int

const (
	// LookupScan searches the edges leaving the destination vertex.
	LookupScan TwinLookup = iota
	// LookupMap indexes edges by their directed vertex pair.
	LookupMap
)

func (l TwinLookup) String() string {
	switch l {
	case LookupScan:
		return "scan"
	case LookupMap:
		return "map"
	}
	return "unknown"
}

type BuildOptions struct {
	Lookup TwinLookup

	// AllowNonManifold leaves an edge as a boundary when every candidate
	// twin is already paired, instead of failing the build.
	AllowNonManifold bool
}

// Mesh is an immutable half-edge triangle mesh. Elements are addressed by
// index; indices stay valid for the life of the mesh.
type Mesh struct {
	vertices []Vertex
	edges    []HalfEdge
	faces    []Face
}

// Build creates a fully linked half-edge mesh from data. No mesh is
// returned if a face references a missing vertex or the result fails
// Validate.
func Build(data MeshData, opts BuildOptions) (*Mesh, error) {
	vertexCount := len(data.Vertices)
	for f, tri := range data.Faces {
		for c, idx := range tri {
			if idx < 0 || idx >= vertexCount {
				return nil, &FaceReferenceError{Face: f, Corner: c, Index: idx, VertexCount: vertexCount}
			}
		}
	}

	m := &Mesh{
		vertices: make([]Vertex, vertexCount),
		edges:    make([]HalfEdge, 0, len(data.Faces)*3),
		faces:    make([]Face, len(data.Faces)),
	}

	// edges leaving each vertex, in creation order
	outgoing := make([][]int, vertexCount)

	for f, tri := range data.Faces {
		start := len(m.edges)
		for c := 0; c < 3; c++ {
			e := start + c
			m.edges = append(m.edges, HalfEdge{
				Origin: tri[c],
				Next:   start + (c+1)%3,
				Twin:   NoEdge,
				Face:   f,
			})
			outgoing[tri[c]] = append(outgoing[tri[c]], e)
		}
		m.faces[f] = Face{Edge: start}
	}

	var err error
	switch opts.Lookup {
	case LookupMap:
		err = m.resolveTwinsByMap(opts.AllowNonManifold)
	default:
		err = m.resolveTwinsByScan(outgoing, opts.AllowNonManifold)
	}
	if err != nil {
		return nil, err
	}

	for v, vd := range data.Vertices {
		edge := NoEdge
		if len(outgoing[v]) > 0 {
			edge = outgoing[v][0]
		}
		m.vertices[v] = Vertex{Position: vd.Position, Normal: vd.Normal, Edge: edge}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	Logger().Debug("built half-edge mesh",
		"vertices", len(m.vertices),
		"edges", len(m.edges),
		"faces", len(m.faces))
	return m, nil
}

func (m *Mesh) resolveTwinsByScan(outgoing [][]int, allowNonManifold bool) error {
	for e := range m.edges {
		if m.edges[e].Twin != NoEdge {
			continue
		}
		a := m.edges[e].Origin
		b := m.Dest(e)

		twin, seen := NoEdge, false
		for _, c := range outgoing[b] {
			if m.Dest(c) != a {
				continue
			}
			seen = true
			if m.edges[c].Twin == NoEdge {
				twin = c
				break
			}
		}
		if err := m.link(e, twin, seen, allowNonManifold); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) resolveTwinsByMap(allowNonManifold bool) error {
	byPair := make(map[[2]int][]int, len(m.edges))
	for e := range m.edges {
		key := [2]int{m.edges[e].Origin, m.Dest(e)}
		byPair[key] = append(byPair[key], e)
	}

	for e := range m.edges {
		if m.edges[e].Twin != NoEdge {
			continue
		}
		candidates := byPair[[2]int{m.Dest(e), m.edges[e].Origin}]

		twin := NoEdge
		for _, c := range candidates {
			if m.edges[c].Twin == NoEdge {
				twin = c
				break
			}
		}
		if err := m.link(e, twin, len(candidates) > 0, allowNonManifold); err != nil {
			return err
		}
	}
	return nil
}

// link pairs e with twin. seen reports whether any reverse edge existed,
// which tells a genuine boundary apart from an over-shared edge.
func (m *Mesh) link(e, twin int, seen, allowNonManifold bool) error {
	if twin == NoEdge {
		if seen && !allowNonManifold {
			return &TopologyError{Fault: FaultNonManifoldEdge, Element: e}
		}
		return nil
	}
	m.edges[e].Twin = twin
	m.edges[twin].Twin = e
	return nil
}

func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) EdgeCount() int   { return len(m.edges) }
func (m *Mesh) FaceCount() int   { return len(m.faces) }

func (m *Mesh) Vertex(i int) Vertex   { return m.vertices[i] }
func (m *Mesh) Edge(i int) HalfEdge   { return m.edges[i] }
func (m *Mesh) Face(i int) Face       { return m.faces[i] }
func (m *Mesh) IsBoundary(e int) bool { return m.edges[e].Twin == NoEdge }

// Dest returns the vertex edge e points at.
func (m *Mesh) Dest(e int) int {
	return m.edges[m.edges[e].Next].Origin
}

// FaceEdges returns the three half-edges of face f starting at its root.
func (m *Mesh) FaceEdges(f int) [3]int {
	e0 := m.faces[f].Edge
	e1 := m.edges[e0].Next
	return [3]int{e0, e1, m.edges[e1].Next}
}

// FaceVertices returns the corners of face f in winding order.
func (m *Mesh) FaceVertices(f int) [3]int {
	es := m.FaceEdges(f)
	return [3]int{m.edges[es[0]].Origin, m.edges[es[1]].Origin, m.edges[es[2]].Origin}
}

// BoundaryEdges lists the half-edges without a twin.
func (m *Mesh) BoundaryEdges() []int {
	var out []int
	for e := range m.edges {
		if m.edges[e].Twin == NoEdge {
			out = append(out, e)
		}
	}
	return out
}
