package halfedge3d

// Validate runs the mesh integrity checks and returns a *TopologyError for
// the first violation found.
func (m *Mesh) Validate() error {
	nv, ne := len(m.vertices), len(m.edges)
	inRange := func(i, n int) bool { return i >= 0 && i < n }

	for e, he := range m.edges {
		if !inRange(he.Origin, nv) || !inRange(he.Next, ne) || !inRange(he.Face, len(m.faces)) ||
			(he.Twin != NoEdge && !inRange(he.Twin, ne)) {
			return &TopologyError{Fault: FaultDanglingIndex, Element: e}
		}
	}

	for f, face := range m.faces {
		if !inRange(face.Edge, ne) {
			return &TopologyError{Fault: FaultDanglingIndex, Element: f}
		}
		e0 := face.Edge
		e1 := m.edges[e0].Next
		e2 := m.edges[e1].Next
		if m.edges[e2].Next != e0 || e0 == e1 || e1 == e2 || e0 == e2 {
			return &TopologyError{Fault: FaultBrokenCycle, Element: f}
		}
		for _, e := range [3]int{e0, e1, e2} {
			if m.edges[e].Face != f {
				return &TopologyError{Fault: FaultBrokenCycle, Element: f}
			}
		}
	}

	for e, he := range m.edges {
		t := he.Twin
		if t == NoEdge {
			continue
		}
		if t == e {
			return &TopologyError{Fault: FaultSelfTwin, Element: e}
		}
		if m.edges[t].Twin != e {
			return &TopologyError{Fault: FaultAsymmetricTwin, Element: e}
		}
		if m.edges[t].Face == he.Face {
			return &TopologyError{Fault: FaultSameFaceTwin, Element: e}
		}
		if m.Dest(e) != m.edges[t].Origin || he.Origin != m.Dest(t) {
			return &TopologyError{Fault: FaultMismatchedTwin, Element: e}
		}
		own := m.FaceVertices(he.Face)
		if out := m.Outlier(e); out == own[0] || out == own[1] || out == own[2] {
			return &TopologyError{Fault: FaultOutlierInFace, Element: e}
		}
	}

	for v, vert := range m.vertices {
		if vert.Edge == NoEdge {
			continue
		}
		if !inRange(vert.Edge, ne) || m.edges[vert.Edge].Origin != v {
			return &TopologyError{Fault: FaultBadVertexEdge, Element: v}
		}
	}
	return nil
}
