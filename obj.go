package halfedge3d

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ObjFile is the triangle mesh read from a Wavefront OBJ source together
// with the material references it made.
type ObjFile struct {
	Mesh        MeshData
	MaterialLib string
	Material    string
}

type objCorner struct {
	vertex int
	normal int // -1 when the corner has no normal
}

func LoadOBJFile(fileName string) (*ObjFile, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	obj, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	return obj, nil
}

// ParseOBJ reads positions, normals and triangular faces. Indices in the
// file are 1-based (or negative, relative to the end); the result is
// 0-based. Vertex indices are not range checked here; Build reports them.
func ParseOBJ(reader io.Reader) (*ObjFile, error) {
	obj := &ObjFile{}
	var positions, normals []mgl32.Vec3
	var corners [][3]objCorner

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}

		switch parts[0] {
		case "v":
			p, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(parts) != 4 {
				return nil, fmt.Errorf("line %d: face with %d corners: %w", lineNo, len(parts)-1, ErrUnsupportedPolygon)
			}
			var face [3]objCorner
			for i := 0; i < 3; i++ {
				c, err := parseObjCorner(parts[i+1], len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face[i] = c
			}
			corners = append(corners, face)
		case "mtllib":
			obj.MaterialLib = strings.Join(parts[1:], " ")
		case "usemtl":
			if obj.Material == "" {
				obj.Material = strings.Join(parts[1:], " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from OBJ source: %w", err)
	}

	obj.Mesh.Vertices = make([]VertexData, len(positions))
	for i, p := range positions {
		obj.Mesh.Vertices[i].Position = p
	}
	missing := make([]bool, len(positions))
	for i := range missing {
		missing[i] = true
	}

	obj.Mesh.Faces = make([]Triangle, len(corners))
	for f, face := range corners {
		for i, c := range face {
			obj.Mesh.Faces[f][i] = c.vertex
			if c.normal < 0 || c.vertex < 0 || c.vertex >= len(positions) || !missing[c.vertex] {
				continue
			}
			obj.Mesh.Vertices[c.vertex].Normal = normals[c.normal]
			missing[c.vertex] = false
		}
	}
	fillMissingNormals(&obj.Mesh, missing)

	return obj, nil
}

// parseObjCorner reads one of v, v/t, v/t/n or v//n.
func parseObjCorner(token string, positionCount, normalCount int) (objCorner, error) {
	fields := strings.Split(token, "/")
	c := objCorner{normal: -1}

	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return c, fmt.Errorf("could not parse vertex index %q: %w", token, err)
	}
	c.vertex, err = resolveObjIndex(v, positionCount)
	if err != nil {
		return c, err
	}

	if len(fields) > 2 && fields[2] != "" {
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return c, fmt.Errorf("could not parse normal index %q: %w", token, err)
		}
		c.normal, err = resolveObjIndex(n, normalCount)
		if err != nil {
			return c, err
		}
		if c.normal < 0 || c.normal >= normalCount {
			return c, fmt.Errorf("normal index %d out of range (%d normals)", n, normalCount)
		}
	}
	return c, nil
}

func resolveObjIndex(raw, count int) (int, error) {
	switch {
	case raw > 0:
		return raw - 1, nil
	case raw < 0:
		return count + raw, nil
	}
	return 0, fmt.Errorf("index 0 is not valid in OBJ")
}
