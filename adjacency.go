package halfedge3d

// Outlier returns the vertex of the triangle across edge e that e's own
// face does not share. A boundary edge has no neighbour, so its own origin
// is returned and the adjacent triangle collapses to a line.
func (m *Mesh) Outlier(e int) int {
	t := m.edges[e].Twin
	if t == NoEdge {
		return m.edges[e].Origin
	}
	return m.edges[m.edges[m.edges[t].Next].Next].Origin
}

// DeriveAdjacency returns two indices per half-edge, in edge order: the
// edge's origin followed by its outlying vertex. Read six at a time it is
// a triangles-with-adjacency index list.
func DeriveAdjacency(m *Mesh) []int {
	out := make([]int, 0, 2*len(m.edges))
	boundary := 0
	for e, he := range m.edges {
		if he.Twin == NoEdge {
			boundary++
		}
		out = append(out, he.Origin, m.Outlier(e))
	}
	if boundary > 0 {
		Logger().Debug("degenerate adjacency on boundary edges", "boundary", boundary, "edges", len(m.edges))
	}
	return out
}

// TriangleIndices returns the plain triangle list: the origin of every
// half-edge in storage order.
func TriangleIndices(m *Mesh) []int {
	out := make([]int, len(m.edges))
	for e, he := range m.edges {
		out[e] = he.Origin
	}
	return out
}
