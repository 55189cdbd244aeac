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

func LoadPLYFile(fileName string) (MeshData, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return MeshData{}, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return MeshData{}, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return data, nil
}

// ParsePLY reads an ASCII PLY source. Vertex properties are located by
// name, so x/y/z and the optional nx/ny/nz may appear in any order next to
// properties that are ignored (colours, texture coordinates). Faces must be
// triangles.
func ParsePLY(reader io.Reader) (MeshData, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var currentElement string
	vertexProps := make(map[string]int)
	numVertexProps := 0

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return MeshData{}, fmt.Errorf("missing ply magic")
	}

	headerDone := false
	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return MeshData{}, fmt.Errorf("unsupported PLY format %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return MeshData{}, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			currentElement = parts[1]
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return MeshData{}, fmt.Errorf("could not parse %s count: %w", parts[1], err)
			}
			switch parts[1] {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			if currentElement == "vertex" && len(parts) >= 3 {
				vertexProps[parts[len(parts)-1]] = numVertexProps
				numVertexProps++
			}
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		return MeshData{}, fmt.Errorf("unexpected end of file while reading header")
	}

	px, okx := vertexProps["x"]
	py, oky := vertexProps["y"]
	pz, okz := vertexProps["z"]
	if !okx || !oky || !okz {
		return MeshData{}, fmt.Errorf("vertex element lacks x, y or z")
	}
	nx, hasNX := vertexProps["nx"]
	ny, hasNY := vertexProps["ny"]
	nz, hasNZ := vertexProps["nz"]
	hasNormals := hasNX && hasNY && hasNZ

	data := MeshData{
		Vertices: make([]VertexData, 0, vertexCount),
		Faces:    make([]Triangle, 0, faceCount),
	}
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return MeshData{}, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < numVertexProps {
			return MeshData{}, fmt.Errorf("invalid vertex data on line %d", i)
		}
		pos, err := pickVec3(parts, px, py, pz)
		if err != nil {
			return MeshData{}, fmt.Errorf("vertex %d: %w", i, err)
		}
		vd := VertexData{Position: pos}
		if hasNormals {
			if vd.Normal, err = pickVec3(parts, nx, ny, nz); err != nil {
				return MeshData{}, fmt.Errorf("vertex %d normal: %w", i, err)
			}
		}
		data.Vertices = append(data.Vertices, vd)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return MeshData{}, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return MeshData{}, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil {
			return MeshData{}, fmt.Errorf("face %d: could not parse corner count: %w", i, err)
		}
		if numFaceVerts != 3 {
			return MeshData{}, fmt.Errorf("face %d has %d corners: %w", i, numFaceVerts, ErrUnsupportedPolygon)
		}
		if len(parts) < 4 {
			return MeshData{}, fmt.Errorf("invalid face data on line %d", i)
		}
		var tri Triangle
		for j := 0; j < 3; j++ {
			if tri[j], err = strconv.Atoi(parts[j+1]); err != nil {
				return MeshData{}, fmt.Errorf("face %d: could not parse index %q: %w", i, parts[j+1], err)
			}
		}
		data.Faces = append(data.Faces, tri)
	}

	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("error reading from PLY source: %w", err)
	}

	if !hasNormals {
		missing := make([]bool, len(data.Vertices))
		for i := range missing {
			missing[i] = true
		}
		fillMissingNormals(&data, missing)
	}
	return data, nil
}

func pickVec3(parts []string, i, j, k int) (mgl32.Vec3, error) {
	return parseVec3([]string{parts[i], parts[j], parts[k]})
}
