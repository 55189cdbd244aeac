package halfedge3d

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// TerrainParams configures a Perlin heightfield.
type TerrainParams struct {
	// Size is the edge length of the square patch, centred on the origin.
	Size float64 `toml:"size"`
	// Resolution is the number of cells along each side.
	Resolution int `toml:"resolution"`
	// Amplitude scales the noise into world-space height.
	Amplitude float64 `toml:"amplitude"`
	// Frequency scales world coordinates before sampling the noise.
	Frequency float64 `toml:"frequency"`
	Seed      int64   `toml:"seed"`
}

const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
)

// GenerateTerrain builds an open grid mesh in the XZ plane whose heights
// come from Perlin noise. Triangles face +Y.
func GenerateTerrain(p TerrainParams) MeshData {
	res := p.Resolution
	if res < 1 {
		res = 1
	}
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, p.Seed)

	row := res + 1
	positions := make([]mgl32.Vec3, 0, row*row)
	step := p.Size / float64(res)
	half := p.Size / 2
	for j := 0; j <= res; j++ {
		z := -half + float64(j)*step
		for i := 0; i <= res; i++ {
			x := -half + float64(i)*step
			y := p.Amplitude * noise.Noise2D(x*p.Frequency, z*p.Frequency)
			positions = append(positions, mgl32.Vec3{float32(x), float32(y), float32(z)})
		}
	}

	idx := func(i, j int) int { return j*row + i }
	faces := make([]Triangle, 0, res*res*2)
	for j := 0; j < res; j++ {
		for i := 0; i < res; i++ {
			a, b, c, d := idx(i, j), idx(i, j+1), idx(i+1, j+1), idx(i+1, j)
			faces = append(faces, Triangle{a, b, c}, Triangle{a, c, d})
		}
	}

	normals := SmoothNormals(positions, faces)
	vertices := make([]VertexData, len(positions))
	for i := range positions {
		vertices[i] = VertexData{Position: positions[i], Normal: normals[i]}
	}
	return MeshData{Vertices: vertices, Faces: faces}
}
