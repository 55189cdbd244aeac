package halfedge3d

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFaceReference is returned by Build when a face points at a
	// vertex that does not exist.
	ErrInvalidFaceReference = errors.New("invalid face reference")

	// ErrMalformedTopology is returned when a built mesh fails its
	// integrity checks.
	ErrMalformedTopology = errors.New("malformed topology")

	// ErrUnsupportedPolygon is returned by the model parsers for faces that
	// are not triangles.
	ErrUnsupportedPolygon = errors.New("only triangular faces are supported")

	// ErrTooManyEdges is returned by PackBuffers when an edge index would
	// not survive the trip through a float32 vertex attribute.
	ErrTooManyEdges = errors.New("too many edges to pack")
)

// FaceReferenceError describes the offending corner of a face.
type FaceReferenceError struct {
	Face        int
	Corner      int
	Index       int
	VertexCount int
}

func (e *FaceReferenceError) Error() string {
	return fmt.Sprintf("%v: face %d corner %d references vertex %d (vertex count %d)",
		ErrInvalidFaceReference, e.Face, e.Corner, e.Index, e.VertexCount)
}

func (e *FaceReferenceError) Unwrap() error {
	return ErrInvalidFaceReference
}

type TopologyFault int

const (
	FaultBrokenCycle TopologyFault = iota
	FaultSelfTwin
	FaultSameFaceTwin
	FaultAsymmetricTwin
	FaultMismatchedTwin
	FaultNonManifoldEdge
	FaultBadVertexEdge
	FaultOutlierInFace
	FaultDanglingIndex
)

func (f TopologyFault) String() string {
	switch f {
	case FaultBrokenCycle:
		return "face cycle broken"
	case FaultSelfTwin:
		return "edge is its own twin"
	case FaultSameFaceTwin:
		return "twin lies in the same face"
	case FaultAsymmetricTwin:
		return "twin linkage is not symmetric"
	case FaultMismatchedTwin:
		return "twin does not reverse the vertex pair"
	case FaultNonManifoldEdge:
		return "edge shared by more than two faces"
	case FaultBadVertexEdge:
		return "vertex edge does not originate at the vertex"
	case FaultOutlierInFace:
		return "outlying vertex belongs to the edge's own face"
	case FaultDanglingIndex:
		return "index out of range"
	}
	return fmt.Sprintf("TopologyFault(%d)", int(f))
}

// TopologyError reports the first integrity violation found in a mesh.
// Element is a face, edge or vertex index depending on the fault.
type TopologyError struct {
	Fault   TopologyFault
	Element int
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("%v: %s (element %d)", ErrMalformedTopology, e.Fault, e.Element)
}

func (e *TopologyError) Unwrap() error {
	return ErrMalformedTopology
}
