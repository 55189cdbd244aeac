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

// Material carries the colours a lit pass needs. The mesh builder never
// looks at it.
type Material struct {
	Name             string
	Ambient          mgl32.Vec3
	Diffuse          mgl32.Vec3
	Specular         mgl32.Vec3
	SpecularExponent float32
}

func DefaultMaterial() *Material {
	return &Material{
		Name:             "default",
		Ambient:          mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:          mgl32.Vec3{0.8, 0.8, 0.8},
		Specular:         mgl32.Vec3{0, 0, 0},
		SpecularExponent: 0,
	}
}

// LoadMaterialFile reads an MTL file and returns the material called name,
// or the first one in the file when name is empty.
func LoadMaterialFile(fileName, name string) (*Material, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open MTL file %s: %w", fileName, err)
	}
	defer file.Close()

	materials, err := ParseMaterials(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing MTL file %s: %w", fileName, err)
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("MTL file %s defines no materials", fileName)
	}
	if name == "" {
		return materials[0], nil
	}
	for _, m := range materials {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("material %q not found in %s", name, fileName)
}

// ParseMaterials reads the newmtl blocks of an MTL source. Statements
// other than Ka, Kd, Ks and Ns are ignored.
func ParseMaterials(reader io.Reader) ([]*Material, error) {
	var materials []*Material
	var current *Material

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}

		if parts[0] == "newmtl" {
			current = &Material{Name: strings.Join(parts[1:], " ")}
			materials = append(materials, current)
			continue
		}

		switch parts[0] {
		case "Ka", "Kd", "Ks", "Ns":
			if current == nil {
				return nil, fmt.Errorf("line %d: %s before newmtl", lineNo, parts[0])
			}
		default:
			continue
		}

		if parts[0] == "Ns" {
			if len(parts) < 2 {
				return nil, fmt.Errorf("line %d: Ns needs a value", lineNo)
			}
			ns, err := strconv.ParseFloat(parts[1], 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: could not parse Ns %q: %w", lineNo, parts[1], err)
			}
			current.SpecularExponent = float32(ns)
			continue
		}

		col, err := parseVec3(parts[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, parts[0], err)
		}
		switch parts[0] {
		case "Ka":
			current.Ambient = col
		case "Kd":
			current.Diffuse = col
		case "Ks":
			current.Specular = col
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from MTL source: %w", err)
	}
	return materials, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
