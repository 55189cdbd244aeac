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

func LoadDXFFile(fileName string, reverse bool) (MeshData, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return MeshData{}, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	data, err := ParseDXF(file, reverse)
	if err != nil {
		return MeshData{}, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return data, nil
}

// ParseDXF collects the 3DFACE entities of a DXF source. Corners are welded
// by exact position so neighbouring faces share vertices. A face whose
// fourth corner differs from its third is split into two triangles;
// reverse flips the winding of every triangle.
func ParseDXF(reader io.Reader, reverse bool) (MeshData, error) {
	scanner := bufio.NewScanner(reader)
	w := newWelder()
	var faces []Triangle

	var corners [4]mgl32.Vec3
	var set [4]bool
	inFace := false

	finish := func() error {
		if !inFace {
			return nil
		}
		inFace = false
		if !set[0] || !set[1] || !set[2] {
			return fmt.Errorf("3DFACE with fewer than three corners")
		}
		if !set[3] {
			corners[3] = corners[2]
		}
		idx := [4]int{w.add(corners[0]), w.add(corners[1]), w.add(corners[2]), w.add(corners[3])}
		tris := []Triangle{{idx[0], idx[1], idx[2]}}
		if idx[3] != idx[2] {
			tris = append(tris, Triangle{idx[0], idx[2], idx[3]})
		}
		for _, t := range tris {
			if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
				continue
			}
			if reverse {
				t[1], t[2] = t[2], t[1]
			}
			faces = append(faces, t)
		}
		return nil
	}

	pair := 0
	for scanner.Scan() {
		pair++
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return MeshData{}, fmt.Errorf("group %d: could not parse group code %q: %w", pair, scanner.Text(), err)
		}
		if !scanner.Scan() {
			return MeshData{}, fmt.Errorf("group %d: unexpected end of file after group code %d", pair, code)
		}
		value := strings.TrimSpace(scanner.Text())

		if code == 0 {
			if err := finish(); err != nil {
				return MeshData{}, fmt.Errorf("group %d: %w", pair, err)
			}
			if value == "3DFACE" {
				inFace = true
				corners, set = [4]mgl32.Vec3{}, [4]bool{}
			}
			continue
		}
		if !inFace || code < 10 || code > 33 || code%10 > 3 {
			continue
		}

		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return MeshData{}, fmt.Errorf("group %d: could not parse float value '%s': %w", pair, value, err)
		}
		corner, axis := code%10, code/10-1
		corners[corner][axis] = float32(f)
		if axis == 2 {
			set[corner] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if err := finish(); err != nil {
		return MeshData{}, err
	}

	return w.meshData(faces), nil
}
